// internal/search/runner.go
package search

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"talent-search/internal/common/config"
	apperrors "talent-search/internal/common/errors"
	"talent-search/internal/common/logger"
	"talent-search/internal/common/metrics"
	"talent-search/internal/query"
)

// Runner executes composed definitions against postgres and returns a page
// of matching ids plus the total count. It is the external query-executor
// boundary: all filter semantics live in the composers, none here. The
// search config bounds it: requested page sizes are capped at MaxPageSize
// and every execution runs under QueryTimeout.
type Runner struct {
	db           *sql.DB
	log          logger.Logger
	queryTimeout time.Duration
	maxPageSize  int
}

func NewRunner(db *sql.DB, cfg config.SearchConfig, log logger.Logger) *Runner {
	return &Runner{
		db:           db,
		log:          log,
		queryTimeout: config.GetDuration(cfg.QueryTimeout),
		maxPageSize:  cfg.MaxPageSize,
	}
}

// Page is one page of search results.
type Page struct {
	IDs           []int64 `json:"ids"`
	TotalElements int64   `json:"totalElements"`
	TotalPages    int     `json:"totalPages"`
	PageNumber    int     `json:"pageNumber"`
	PageSize      int     `json:"pageSize"`
}

// Page runs the count and select queries for a definition in one round trip
// each and assembles the page.
func (r *Runner) Page(ctx context.Context, def *query.Definition, paging PagedSearchRequest) (*Page, error) {
	ctx, cancel := r.boundContext(ctx)
	defer cancel()

	requestID := uuid.NewString()
	log := r.log.WithFields(map[string]interface{}{
		"requestId": requestID,
		"entity":    def.Table,
	})
	start := time.Now()
	metrics.SearchQueriesTotal.WithLabelValues(def.Table).Inc()

	total, err := r.count(ctx, def)
	if err != nil {
		metrics.SearchQueriesFailed.WithLabelValues(def.Table).Inc()
		log.WithError(err).Error("search count failed", nil)
		return nil, wrapQueryErr("search count failed", err)
	}

	limit := r.pageSize(paging)
	offset := 0
	if paging.PageNumber > 0 {
		offset = paging.PageNumber * limit
	}
	ids, err := r.selectIDs(ctx, def, limit, offset)
	if err != nil {
		metrics.SearchQueriesFailed.WithLabelValues(def.Table).Inc()
		log.WithError(err).Error("search select failed", nil)
		return nil, wrapQueryErr("search select failed", err)
	}

	duration := time.Since(start)
	metrics.SearchQueryDuration.WithLabelValues(def.Table).Observe(duration.Seconds())
	metrics.SearchResultRows.WithLabelValues(def.Table).Observe(float64(len(ids)))
	log.Debug("search executed", map[string]interface{}{
		"total":      total,
		"returned":   len(ids),
		"durationMs": duration.Milliseconds(),
	})

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &Page{
		IDs:           ids,
		TotalElements: total,
		TotalPages:    totalPages,
		PageNumber:    paging.PageNumber,
		PageSize:      limit,
	}, nil
}

// List runs the select without pagination and returns all matching ids in
// order.
func (r *Runner) List(ctx context.Context, def *query.Definition) ([]int64, error) {
	ctx, cancel := r.boundContext(ctx)
	defer cancel()

	ids, err := r.selectIDs(ctx, def, 0, 0)
	if err != nil {
		metrics.SearchQueriesFailed.WithLabelValues(def.Table).Inc()
		return nil, wrapQueryErr("search list failed", err)
	}
	return ids, nil
}

// pageSize is the requested page size capped at the configured maximum.
func (r *Runner) pageSize(paging PagedSearchRequest) int {
	limit := paging.Limit()
	if r.maxPageSize > 0 && limit > r.maxPageSize {
		return r.maxPageSize
	}
	return limit
}

func (r *Runner) boundContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout > 0 {
		return context.WithTimeout(ctx, r.queryTimeout)
	}
	return ctx, func() {}
}

func wrapQueryErr(msg string, err error) error {
	code := apperrors.ErrCodeQueryExecutionFailed
	if errors.Is(err, context.DeadlineExceeded) {
		code = apperrors.ErrCodeQueryTimeout
	}
	return apperrors.Wrap(code, msg, err)
}

func (r *Runner) count(ctx context.Context, def *query.Definition) (int64, error) {
	sqlText, args := def.CountSQL()
	var total int64
	if err := r.db.QueryRowContext(ctx, sqlText, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *Runner) selectIDs(ctx context.Context, def *query.Definition, limit, offset int) ([]int64, error) {
	sqlText, args := def.SelectSQL(limit, offset)
	rows, err := r.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var ids []int64
	for rows.Next() {
		// Distinct selects carry the order columns after the id; only the
		// id is read.
		dest := make([]interface{}, len(cols))
		var id int64
		dest[0] = &id
		for i := 1; i < len(dest); i++ {
			dest[i] = new(sql.RawBytes)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
