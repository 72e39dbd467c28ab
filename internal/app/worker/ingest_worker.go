package worker

import (
	"context"
	"contest_catalog/internal/app/service"
	"contest_catalog/internal/common"
	"contest_catalog/internal/domain/model"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type Options struct {
	QueueName      string
	DeadLetterName string
	MaxAttempts    int
	PollTimeout    time.Duration // BRPop timeout, so cancellation is noticed between polls
}

// IngestWorker drains the ingest queue into the store. Failed batches are
// replayed in full, which is safe because every store write is idempotent.
type IngestWorker struct {
	rdb    *redis.Client
	ingest *service.IngestService
	opts   Options
}

func NewIngestWorker(rdb *redis.Client, ingest *service.IngestService, opts Options) *IngestWorker {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = 5 * time.Second
	}
	return &IngestWorker{rdb: rdb, ingest: ingest, opts: opts}
}

func (w *IngestWorker) Start(ctx context.Context) {
	log.Println("Ingest worker started, listening to queue:", w.opts.QueueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("Ingest worker stopping...")
			return
		default:
			res, err := w.rdb.BRPop(ctx, w.opts.PollTimeout, w.opts.QueueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				if ctx.Err() != nil {
					log.Println("Ingest worker stopping...")
					return
				}
				log.Printf("ERROR: Failed to BRPop from Redis queue '%s': %v", w.opts.QueueName, err)
				time.Sleep(time.Second)
				continue
			}

			// res is [queueName, value]
			if len(res) < 2 || res[1] == "" {
				log.Println("WARN: BRPop returned empty payload.")
				continue
			}
			w.handleMessage(ctx, res[1])
		}
	}
}

func (w *IngestWorker) handleMessage(ctx context.Context, raw string) {
	var batch model.IngestBatch
	if err := json.Unmarshal([]byte(raw), &batch); err != nil {
		log.Printf("ERROR: Undecodable ingest payload: %v", err)
		w.deadLetter(context.WithoutCancel(ctx), raw)
		return
	}
	if err := batch.Validate(); err != nil {
		log.Printf("ERROR: Rejected ingest batch %s: %v", batch.ID, err)
		w.deadLetter(context.WithoutCancel(ctx), raw)
		return
	}

	affected, err := w.ingest.Apply(ctx, &batch)
	if err != nil {
		// The batch is already off the queue; pushes must outlive shutdown.
		pushCtx := context.WithoutCancel(ctx)
		if ctx.Err() != nil {
			log.Printf("WARN: Ingest batch %s interrupted by shutdown, re-queueing: %v", batch.ID, err)
			w.requeue(pushCtx, batch.ID, []byte(raw))
			return
		}

		batch.Attempts++
		if row, ok := common.FailedRow(err); ok {
			log.Printf("ERROR: Ingest batch %s failed at row %d (attempt %d/%d): %v", batch.ID, row, batch.Attempts, w.opts.MaxAttempts, err)
		} else {
			log.Printf("ERROR: Ingest batch %s failed (attempt %d/%d): %v", batch.ID, batch.Attempts, w.opts.MaxAttempts, err)
		}
		if common.IsSchemaMismatch(err) {
			log.Printf("WARN: Schema mismatch while applying batch %s; check the database definition.", batch.ID)
		}

		payload, mErr := json.Marshal(&batch)
		if mErr != nil {
			log.Printf("ERROR: Failed to re-encode ingest batch %s: %v", batch.ID, mErr)
			w.deadLetter(pushCtx, raw)
			return
		}
		// A rejected row fails the same way on every replay.
		if common.IsDataError(err) || batch.Attempts >= w.opts.MaxAttempts {
			w.deadLetter(pushCtx, string(payload))
			return
		}
		w.requeue(pushCtx, batch.ID, payload)
		return
	}

	var written int64
	for _, n := range affected {
		written += n
	}
	log.Printf("INFO: Ingest batch %s applied: %d %s, %d written.", batch.ID, len(affected), batch.Kind, written)
}

// requeue pushes the batch to the back of the queue so other batches run first.
func (w *IngestWorker) requeue(ctx context.Context, batchID string, payload []byte) {
	if err := w.rdb.LPush(ctx, w.opts.QueueName, payload).Err(); err != nil {
		log.Printf("ERROR: Failed to re-queue ingest batch %s: %v", batchID, err)
	} else {
		log.Printf("INFO: Ingest batch %s re-queued.", batchID)
	}
}

func (w *IngestWorker) deadLetter(ctx context.Context, payload string) {
	if err := w.rdb.LPush(ctx, w.opts.DeadLetterName, payload).Err(); err != nil {
		log.Printf("ERROR: Failed to push to dead-letter queue '%s': %v", w.opts.DeadLetterName, err)
	} else {
		log.Printf("WARN: Payload moved to dead-letter queue '%s'.", w.opts.DeadLetterName)
	}
}
