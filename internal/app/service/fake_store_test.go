package service

import (
	"context"
	"contest_catalog/internal/domain/model"
)

type fakeStore struct {
	contests    []model.Contest
	problems    []model.Problem
	submissions []model.Submission
	err         error
}

func ones(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

func (f *fakeStore) InsertSubmissions(_ context.Context, subs []model.Submission) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.submissions = append(f.submissions, subs...)
	return ones(len(subs)), nil
}

func (f *fakeStore) InsertContests(_ context.Context, contests []model.Contest) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.contests = append(f.contests, contests...)
	return ones(len(contests)), nil
}

func (f *fakeStore) InsertProblems(_ context.Context, problems []model.Problem) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.problems = append(f.problems, problems...)
	return ones(len(problems)), nil
}

func (f *fakeStore) GetProblems(context.Context) ([]model.Problem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.problems, nil
}

func (f *fakeStore) GetContests(context.Context) ([]model.Contest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.contests, nil
}
