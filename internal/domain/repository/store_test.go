package repository

import (
	"context"
	"contest_catalog/internal/common"
	"contest_catalog/internal/domain/model"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPgStore(db), mock
}

func submission(id int64, userID string) model.Submission {
	return model.Submission{
		ID:          id,
		EpochSecond: 1600000000,
		ProblemID:   "abc100_a",
		ContestID:   "abc100",
		UserID:      userID,
		Language:    "Go (1.14.1)",
		Point:       100,
		Length:      512,
		Result:      model.ResultAccepted,
	}
}

func TestInsertSubmissions_UpsertsUserIDOnly(t *testing.T) {
	store, mock := newMockStore(t)

	execTime := int64(12)
	subs := []model.Submission{submission(1, ""), submission(2, "kenkoooo")}
	subs[1].ExecutionTime = &execTime

	prep := mock.ExpectPrepare(regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE SET user_id = EXCLUDED.user_id"))
	prep.ExpectExec().
		WithArgs(int64(1), int64(1600000000), "abc100_a", "abc100", "", "Go (1.14.1)", float64(100), int64(512), "AC", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs(int64(2), int64(1600000000), "abc100_a", "abc100", "kenkoooo", "Go (1.14.1)", float64(100), int64(512), "AC", int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := store.InsertSubmissions(context.Background(), subs)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 1}, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertSubmissions_Empty(t *testing.T) {
	store, mock := newMockStore(t)

	affected, err := store.InsertSubmissions(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, affected)
	assert.Empty(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertSubmissions_StopsAtFailingRow(t *testing.T) {
	store, mock := newMockStore(t)

	driverErr := errors.New("value too long for type character varying(255)")
	prep := mock.ExpectPrepare("INSERT INTO submissions")
	prep.ExpectExec().WithArgs(int64(1), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs(int64(2), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs(int64(3), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(driverErr)

	subs := []model.Submission{submission(1, ""), submission(2, ""), submission(3, ""), submission(4, "")}
	affected, err := store.InsertSubmissions(context.Background(), subs)
	require.Error(t, err)
	assert.Nil(t, affected)
	assert.ErrorIs(t, err, driverErr)
	assert.Contains(t, err.Error(), "value too long")

	var batchErr *common.BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, 2, batchErr.Index)
	assert.Equal(t, []int64{1, 1}, batchErr.Applied)
	assert.Equal(t, "pgStore.InsertSubmissions", batchErr.Op)

	// Row 4 must never be attempted.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertContests_PrepareFailureWritesNothing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectPrepare("INSERT INTO contests").WillReturnError(errors.New(`relation "contests" does not exist`))

	_, err := store.InsertContests(context.Background(), []model.Contest{{ID: "arc001"}})
	require.Error(t, err)
	_, isRowFailure := common.FailedRow(err)
	assert.False(t, isRowFailure)
	assert.Contains(t, err.Error(), "pgStore.InsertContests prepare")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertContests_IgnoresConflicts(t *testing.T) {
	store, mock := newMockStore(t)

	prep := mock.ExpectPrepare(regexp.QuoteMeta("ON CONFLICT (id) DO NOTHING"))
	prep.ExpectExec().WithArgs("arc001", int64(0), int64(0), "Contest 1", "-").WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs("arc002", int64(0), int64(0), "Contest 2", "-").WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := store.InsertContests(context.Background(), []model.Contest{
		{ID: "arc001", Title: "Contest 1", RateChange: "-"},
		{ID: "arc002", Title: "Contest 2", RateChange: "-"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 0}, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertProblems(t *testing.T) {
	store, mock := newMockStore(t)

	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO problems (id, contest_id, title)"))
	prep.ExpectExec().WithArgs("arc001_a", "arc001", "Problem 1").WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs("arc001_b", "arc001", "Problem 2").WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := store.InsertProblems(context.Background(), []model.Problem{
		{ID: "arc001_a", ContestID: "arc001", Title: "Problem 1"},
		{ID: "arc001_b", ContestID: "arc001", Title: "Problem 2"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 1}, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProblems(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "contest_id", "title"}).
		AddRow("problem_a", "contest_a", "Problem A").
		AddRow("problem_z", "contest_b", "Problem Z")
	mock.ExpectQuery(regexp.QuoteMeta(selectProblemsQuery)).WillReturnRows(rows)

	problems, err := store.GetProblems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Problem{
		{ID: "problem_a", ContestID: "contest_a", Title: "Problem A"},
		{ID: "problem_z", ContestID: "contest_b", Title: "Problem Z"},
	}, problems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetContests(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "start_epoch_second", "duration_second", "title", "rate_change"}).
		AddRow("abc001", int64(1468670400), int64(6000), "AtCoder Beginner Contest 001", "-")
	mock.ExpectQuery(regexp.QuoteMeta(selectContestsQuery)).WillReturnRows(rows)

	contests, err := store.GetContests(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Contest{{
		ID:               "abc001",
		StartEpochSecond: 1468670400,
		DurationSecond:   6000,
		Title:            "AtCoder Beginner Contest 001",
		RateChange:       "-",
	}}, contests)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetContests_EmptyTable(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, start_epoch_second").
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_epoch_second", "duration_second", "title", "rate_change"}))

	contests, err := store.GetContests(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, contests)
	assert.Empty(t, contests)
}

func TestGetProblems_QueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, contest_id, title FROM problems").WillReturnError(errors.New("connection reset by peer"))

	_, err := store.GetProblems(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestGetProblems_RowError(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "contest_id", "title"}).
		AddRow("problem_a", "contest_a", "Problem A").
		RowError(0, errors.New("unexpected EOF"))
	mock.ExpectQuery("FROM problems").WillReturnRows(rows)

	_, err := store.GetProblems(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rows.Err")
}

func TestNewStore_DoesNotConnect(t *testing.T) {
	// Nothing listens on this port; construction must still succeed.
	store, err := NewStore("kenkoooo", "pass", "127.0.0.1:1", "test")
	require.NoError(t, err)
	require.NotNil(t, store)
}

func TestInsertContests_ConnectFailure(t *testing.T) {
	store, err := NewStore("kenkoooo", "pass", "127.0.0.1:1", "test")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	affected, err := store.InsertContests(ctx, []model.Contest{{ID: "arc001", Title: "Contest 1", RateChange: "-"}})
	require.Error(t, err)
	assert.Nil(t, affected)
	assert.Contains(t, err.Error(), "pgStore.InsertContests connect:")

	_, ok := common.FailedRow(err)
	assert.False(t, ok)
}
