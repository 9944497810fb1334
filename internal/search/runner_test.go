package search

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-search/internal/common/config"
	apperrors "talent-search/internal/common/errors"
	"talent-search/internal/common/logger"
	"talent-search/internal/query"
)

func newRunnerWithMock(t *testing.T, cfg config.SearchConfig) (*Runner, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRunner(db, cfg, logger.NewNoOpLogger()), mock
}

func simpleDef(where query.Expr) *query.Definition {
	return &query.Definition{
		Table:  "candidate",
		Alias:  "c",
		Where:  where,
		Orders: []query.Order{{Col: "c.id"}},
	}
}

func TestRunnerPage(t *testing.T) {
	runner, mock := newRunnerWithMock(t, config.SearchConfig{})
	def := simpleDef(query.Eq("c.status", "active"))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM candidate c WHERE c.status = $1")).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(51)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.id FROM candidate c WHERE c.status = $1 ORDER BY c.id ASC LIMIT 25 OFFSET 25")).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(101)).AddRow(int64(102)))

	page, err := runner.Page(context.Background(), def, PagedSearchRequest{PageNumber: 1})
	require.NoError(t, err)

	assert.Equal(t, []int64{101, 102}, page.IDs)
	assert.Equal(t, int64(51), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.PageNumber)
	assert.Equal(t, 25, page.PageSize)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunnerPage_CountFailure(t *testing.T) {
	runner, mock := newRunnerWithMock(t, config.SearchConfig{})
	def := simpleDef(query.MatchAll())

	mock.ExpectQuery("SELECT count").
		WillReturnError(assert.AnError)

	page, err := runner.Page(context.Background(), def, PagedSearchRequest{})
	assert.Nil(t, page)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search count failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunnerPage_EmptyResult(t *testing.T) {
	runner, mock := newRunnerWithMock(t, config.SearchConfig{})
	def := simpleDef(query.MatchAll())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM candidate c")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.id FROM candidate c ORDER BY c.id ASC LIMIT 25 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	page, err := runner.Page(context.Background(), def, PagedSearchRequest{})
	require.NoError(t, err)

	assert.Empty(t, page.IDs)
	assert.Equal(t, int64(0), page.TotalElements)
	assert.Equal(t, 0, page.TotalPages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunnerPage_DistinctScansOnlyTheID(t *testing.T) {
	runner, mock := newRunnerWithMock(t, config.SearchConfig{})
	def := &query.Definition{
		Table:    "job",
		Alias:    "j",
		Joins:    []query.Join{{Kind: query.JoinLeft, Table: "saved_list", Alias: "sl", On: "sl.id = j.submission_list_id"}},
		Where:    query.MatchAll(),
		Orders:   []query.Order{{Col: "sl.name"}, {Col: "j.id"}},
		Distinct: true,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(DISTINCT j.id) FROM job j")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT j.id, sl.name FROM job j")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(7), "List A"))

	page, err := runner.Page(context.Background(), def, PagedSearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, page.IDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunnerPage_CapsPageSize(t *testing.T) {
	runner, mock := newRunnerWithMock(t, config.SearchConfig{MaxPageSize: 50})
	def := simpleDef(query.MatchAll())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM candidate c")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(120)))
	// The oversized request is clamped to the maximum: limit and the derived
	// offset both use the capped size.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.id FROM candidate c ORDER BY c.id ASC LIMIT 50 OFFSET 50")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	page, err := runner.Page(context.Background(), def, PagedSearchRequest{PageNumber: 1, PageSize: 500})
	require.NoError(t, err)

	assert.Equal(t, 50, page.PageSize)
	assert.Equal(t, 3, page.TotalPages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunnerPage_QueryTimeout(t *testing.T) {
	runner, mock := newRunnerWithMock(t, config.SearchConfig{QueryTimeout: 10})
	def := simpleDef(query.MatchAll())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM candidate c")).
		WillDelayFor(200 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

	page, err := runner.Page(context.Background(), def, PagedSearchRequest{})
	assert.Nil(t, page)
	require.Error(t, err)

	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeQueryTimeout, stdErr.Code)
}

func TestRunnerList_NoPagination(t *testing.T) {
	runner, mock := newRunnerWithMock(t, config.SearchConfig{})
	def := simpleDef(query.MatchAll())

	// No LIMIT clause when listing.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.id FROM candidate c ORDER BY c.id ASC") + "$").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)).AddRow(int64(3)))

	ids, err := runner.List(context.Background(), def)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
