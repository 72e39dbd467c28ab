package service

import (
	"context"
	"contest_catalog/internal/common"
	"contest_catalog/internal/domain/model"
	"contest_catalog/internal/domain/repository"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type IngestService struct {
	store     repository.Store
	rdb       *redis.Client
	queueName string
}

func NewIngestService(store repository.Store, rdb *redis.Client, queueName string) *IngestService {
	return &IngestService{store: store, rdb: rdb, queueName: queueName}
}

// Enqueue validates batch, assigns it an ID when it has none and pushes it
// onto the ingest queue.
func (s *IngestService) Enqueue(ctx context.Context, batch *model.IngestBatch) (string, error) {
	if err := batch.Validate(); err != nil {
		return "", err
	}
	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}

	payload, err := json.Marshal(batch)
	if err != nil {
		return "", common.Errorf("failed to marshal ingest batch %s: %w", batch.ID, err)
	}
	if err := s.rdb.LPush(ctx, s.queueName, payload).Err(); err != nil {
		return "", common.Errorf("failed to push ingest batch %s: %w: %w", batch.ID, common.ErrServiceUnavailable, err)
	}

	log.Printf("Ingest batch %s (%d %s) enqueued.", batch.ID, batch.Len(), batch.Kind)
	return batch.ID, nil
}

// Apply writes the records of batch through the store.
func (s *IngestService) Apply(ctx context.Context, batch *model.IngestBatch) ([]int64, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}

	var affected []int64
	var err error
	switch batch.Kind {
	case model.IngestKindContests:
		affected, err = s.store.InsertContests(ctx, batch.Contests)
	case model.IngestKindProblems:
		affected, err = s.store.InsertProblems(ctx, batch.Problems)
	case model.IngestKindSubmissions:
		affected, err = s.store.InsertSubmissions(ctx, batch.Submissions)
	}
	if err != nil {
		return nil, common.Errorf("failed to apply ingest batch %s: %w", batch.ID, err)
	}
	return affected, nil
}
