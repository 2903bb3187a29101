package odbc

import (
	"context"
	"database/sql"
	"time"

	"github.com/jhoicas/albaranes-api/internal/domain"
	"github.com/jhoicas/albaranes-api/internal/domain/entity"
	"github.com/jhoicas/albaranes-api/internal/domain/repository"
	"github.com/jhoicas/albaranes-api/internal/infrastructure/metrics"
)

var _ repository.Querier = (*querier)(nil)

// querier ejecuta sentencias sobre una conexión ya adquirida.
type querier struct {
	conn    *sql.Conn
	timeout time.Duration
}

// Query ejecuta stmt con sus parámetros ligados y lee el resultado completo,
// o sólo las primeras maxRows filas si maxRows > 0.
func (q *querier) Query(ctx context.Context, stmt entity.Statement, maxRows int) (*entity.Rowset, error) {
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	start := time.Now()
	rs, err := q.query(ctx, stmt, maxRows)
	if err != nil {
		metrics.ObserveQuery("error", time.Since(start), 0)
		return nil, domain.WrapError(domain.KindQueryExecution, err, "error ejecutando la consulta")
	}
	metrics.ObserveQuery("ok", time.Since(start), len(rs.Rows))
	return rs, nil
}

func (q *querier) query(ctx context.Context, stmt entity.Statement, maxRows int) (*entity.Rowset, error) {
	rows, err := q.conn.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	rs := &entity.Rowset{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		if maxRows > 0 && len(rs.Rows) >= maxRows {
			break
		}
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rs.Rows = append(rs.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}
