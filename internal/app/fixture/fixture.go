// Package fixture loads catalog records from YAML files, for seeding a
// database or replaying a saved scrape without going through the queue.
package fixture

import (
	"context"
	"contest_catalog/internal/domain/model"
	"contest_catalog/internal/domain/repository"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type Fixture struct {
	Contests    []model.Contest    `yaml:"contests"`
	Problems    []model.Problem    `yaml:"problems"`
	Submissions []model.Submission `yaml:"submissions"`
}

// Summary counts rows written per kind; rows ignored on conflict are not
// counted.
type Summary struct {
	Contests    int64
	Problems    int64
	Submissions int64
}

func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("fixture.Parse: %w", err)
	}
	return &f, nil
}

func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture.LoadFile: %w", err)
	}
	return Parse(data)
}

// Apply writes contests, then problems, then submissions. It stops at the
// first failing kind; kinds written before it stay written.
func (f *Fixture) Apply(ctx context.Context, store repository.Store) (Summary, error) {
	var s Summary

	affected, err := store.InsertContests(ctx, f.Contests)
	if err != nil {
		return s, fmt.Errorf("contests: %w", err)
	}
	s.Contests = sum(affected)

	affected, err = store.InsertProblems(ctx, f.Problems)
	if err != nil {
		return s, fmt.Errorf("problems: %w", err)
	}
	s.Problems = sum(affected)

	affected, err = store.InsertSubmissions(ctx, f.Submissions)
	if err != nil {
		return s, fmt.Errorf("submissions: %w", err)
	}
	s.Submissions = sum(affected)

	return s, nil
}

func sum(xs []int64) int64 {
	var total int64
	for _, x := range xs {
		total += x
	}
	return total
}
