package repository

import (
	"context"
	"contest_catalog/internal/common"
	"contest_catalog/internal/domain/model"
	"contest_catalog/internal/platform/config"
	"contest_catalog/internal/platform/database"
	"database/sql"
	"fmt"
)

// Store persists scraped contests, problems and submissions.
//
// Insert operations run one prepared statement per row on a single
// connection, without a surrounding transaction. When row k fails, rows
// before k stay committed and the error is a *common.BatchError. Every write
// is idempotent, so a failed batch can be replayed in full.
//
// The returned slices hold the affected-row count of each input row in input
// order: 1 when the row was written, 0 when it was ignored on conflict.
type Store interface {
	// InsertSubmissions inserts new submissions. On id collision only user_id
	// is overwritten.
	InsertSubmissions(ctx context.Context, submissions []model.Submission) ([]int64, error)
	// InsertContests inserts contests, ignoring ids that already exist.
	InsertContests(ctx context.Context, contests []model.Contest) ([]int64, error)
	// InsertProblems inserts problems, ignoring ids that already exist.
	InsertProblems(ctx context.Context, problems []model.Problem) ([]int64, error)

	// GetProblems returns every stored problem in no particular order.
	GetProblems(ctx context.Context) ([]model.Problem, error)
	// GetContests returns every stored contest in no particular order.
	GetContests(ctx context.Context) ([]model.Contest, error)
}

const (
	insertSubmissionQuery = `INSERT INTO submissions (id, epoch_second, problem_id, contest_id, user_id, language, point, length, result, execution_time)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          ON CONFLICT (id) DO UPDATE SET user_id = EXCLUDED.user_id`

	insertContestQuery = `INSERT INTO contests (id, start_epoch_second, duration_second, title, rate_change)
	          VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`

	insertProblemQuery = `INSERT INTO problems (id, contest_id, title)
	          VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`

	selectProblemsQuery = `SELECT id, contest_id, title FROM problems`

	selectContestsQuery = `SELECT id, start_epoch_second, duration_second, title, rate_change FROM contests`
)

type pgStore struct {
	db *sql.DB
}

func NewPgStore(db *sql.DB) Store {
	return &pgStore{db: db}
}

// NewStore builds a Store for the given credentials. Nothing is dialed here;
// each operation opens its own connection and closes it when done.
func NewStore(user, password, host, dbName string) (Store, error) {
	db, err := database.Open(config.ConnString(user, password, host, dbName), database.Options{})
	if err != nil {
		return nil, fmt.Errorf("repository.NewStore: %w", err)
	}
	return NewPgStore(db), nil
}

func (r *pgStore) InsertSubmissions(ctx context.Context, submissions []model.Submission) ([]int64, error) {
	return execBatch(ctx, r.db, "pgStore.InsertSubmissions", insertSubmissionQuery, submissions,
		func(s model.Submission) []interface{} {
			return []interface{}{s.ID, s.EpochSecond, s.ProblemID, s.ContestID, s.UserID, s.Language, s.Point, s.Length, s.Result, s.ExecutionTime}
		})
}

func (r *pgStore) InsertContests(ctx context.Context, contests []model.Contest) ([]int64, error) {
	return execBatch(ctx, r.db, "pgStore.InsertContests", insertContestQuery, contests,
		func(c model.Contest) []interface{} {
			return []interface{}{c.ID, c.StartEpochSecond, c.DurationSecond, c.Title, c.RateChange}
		})
}

func (r *pgStore) InsertProblems(ctx context.Context, problems []model.Problem) ([]int64, error) {
	return execBatch(ctx, r.db, "pgStore.InsertProblems", insertProblemQuery, problems,
		func(p model.Problem) []interface{} {
			return []interface{}{p.ID, p.ContestID, p.Title}
		})
}

// execBatch runs query once per row on one dedicated connection. The
// statement and connection are released on every return path.
func execBatch[T any](ctx context.Context, db *sql.DB, op, query string, rows []T, args func(T) []interface{}) ([]int64, error) {
	if len(rows) == 0 {
		return []int64{}, nil
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s connect: %w", op, err)
	}
	defer conn.Close()

	stmt, err := conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s prepare: %w", op, err)
	}
	defer stmt.Close()

	affected := make([]int64, 0, len(rows))
	for i, row := range rows {
		res, err := stmt.ExecContext(ctx, args(row)...)
		if err != nil {
			return nil, &common.BatchError{Op: op, Index: i, Applied: affected, Err: err}
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("%s rows affected for row %d: %w", op, i, err)
		}
		affected = append(affected, n)
	}
	return affected, nil
}

func (r *pgStore) GetProblems(ctx context.Context) ([]model.Problem, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("pgStore.GetProblems connect: %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, selectProblemsQuery)
	if err != nil {
		return nil, fmt.Errorf("pgStore.GetProblems query: %w", err)
	}
	defer rows.Close()

	problems := []model.Problem{}
	for rows.Next() {
		var p model.Problem
		if err := rows.Scan(&p.ID, &p.ContestID, &p.Title); err != nil {
			return nil, fmt.Errorf("pgStore.GetProblems scan: %w", err)
		}
		problems = append(problems, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgStore.GetProblems rows.Err: %w", err)
	}
	return problems, nil
}

func (r *pgStore) GetContests(ctx context.Context) ([]model.Contest, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("pgStore.GetContests connect: %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, selectContestsQuery)
	if err != nil {
		return nil, fmt.Errorf("pgStore.GetContests query: %w", err)
	}
	defer rows.Close()

	contests := []model.Contest{}
	for rows.Next() {
		var c model.Contest
		if err := rows.Scan(&c.ID, &c.StartEpochSecond, &c.DurationSecond, &c.Title, &c.RateChange); err != nil {
			return nil, fmt.Errorf("pgStore.GetContests scan: %w", err)
		}
		contests = append(contests, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgStore.GetContests rows.Err: %w", err)
	}
	return contests, nil
}
