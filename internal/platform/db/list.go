package db

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/garage-admin/garage/internal/shared"
)

// Querier is the subset of pgxpool.Pool used by read helpers.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ListQuery describes a paginated listing over one FROM clause.
type ListQuery struct {
	// Select is the column list, e.g. "b.id, b.name".
	Select string
	// From is the FROM clause including joins, e.g. "brands b".
	From string
	Spec shared.ListSpec
}

// List runs the count query and the page query concurrently and scans every
// row of the page with scan.
func List[T any](ctx context.Context, q Querier, lq ListQuery, params shared.ListParams, scan func(pgx.Rows) (T, error)) ([]T, int, error) {
	where, args := params.Where(lq.Spec)

	var (
		total   int
		results []T
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := q.QueryRow(gctx, "SELECT COUNT(*) FROM "+lq.From+where, args...).Scan(&total); err != nil {
			return fmt.Errorf("platform/db: count: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		pageArgs := append(append([]any{}, args...), params.Size, params.Offset())
		query := "SELECT " + lq.Select + " FROM " + lq.From + where + params.OrderBy(lq.Spec) +
			" LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
		rows, err := q.Query(gctx, query, pageArgs...)
		if err != nil {
			return fmt.Errorf("platform/db: list: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			item, err := scan(rows)
			if err != nil {
				return fmt.Errorf("platform/db: scan: %w", err)
			}
			results = append(results, item)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if err := params.CheckPage(total); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
