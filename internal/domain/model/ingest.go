package model

import (
	"contest_catalog/internal/common"
	"fmt"
)

const (
	IngestKindContests    = "contests"
	IngestKindProblems    = "problems"
	IngestKindSubmissions = "submissions"
)

// IngestBatch is the envelope a scraper pushes onto the ingest queue.
// Exactly one of the record slices matching Kind is used.
type IngestBatch struct {
	ID          string       `json:"id"`
	Kind        string       `json:"kind"`
	Contests    []Contest    `json:"contests,omitempty"`
	Problems    []Problem    `json:"problems,omitempty"`
	Submissions []Submission `json:"submissions,omitempty"`
	Attempts    int          `json:"attempts"`
}

func (b *IngestBatch) Validate() error {
	switch b.Kind {
	case IngestKindContests:
		if len(b.Problems) > 0 || len(b.Submissions) > 0 {
			return fmt.Errorf("contests batch carries other records: %w", common.ErrValidation)
		}
	case IngestKindProblems:
		if len(b.Contests) > 0 || len(b.Submissions) > 0 {
			return fmt.Errorf("problems batch carries other records: %w", common.ErrValidation)
		}
	case IngestKindSubmissions:
		if len(b.Contests) > 0 || len(b.Problems) > 0 {
			return fmt.Errorf("submissions batch carries other records: %w", common.ErrValidation)
		}
	default:
		return fmt.Errorf("unknown kind %q: %w", b.Kind, common.ErrValidation)
	}
	return nil
}

// Len is the number of records in the batch for its kind.
func (b *IngestBatch) Len() int {
	switch b.Kind {
	case IngestKindContests:
		return len(b.Contests)
	case IngestKindProblems:
		return len(b.Problems)
	case IngestKindSubmissions:
		return len(b.Submissions)
	}
	return 0
}
