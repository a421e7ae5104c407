// internal/store/universities/postgres.go
package universities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// PostgresStore reads listings from a relational table with columns
// id, name, country, fees, min_gpa, requirements.
type PostgresStore struct {
	db    *sql.DB
	table string
}

func NewPostgresStore(db *sql.DB, table string) *PostgresStore {
	return &PostgresStore{db: db, table: pq.QuoteIdentifier(table)}
}

const selectColumns = "id, name, country, fees, min_gpa, COALESCE(requirements, '')"

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*University, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE lower(name) = lower($1) ORDER BY id LIMIT 1", selectColumns, s.table)

	var u University
	err := s.db.QueryRowContext(ctx, query, name).Scan(&u.ID, &u.Name, &u.Country, &u.Fees, &u.MinGPA, &u.Requirements)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find %q: %v", ErrStoreFailed, name, err)
	}
	return &u, nil
}

func (s *PostgresStore) Search(ctx context.Context, filter Filter) ([]University, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.GPA != nil {
		args = append(args, *filter.GPA)
		conds = append(conds, fmt.Sprintf("min_gpa <= $%d", len(args)))
	}
	if filter.Budget != nil {
		args = append(args, *filter.Budget)
		conds = append(conds, fmt.Sprintf("fees <= $%d", len(args)))
	}
	if filter.Country != "" {
		args = append(args, filter.Country)
		conds = append(conds, fmt.Sprintf("country = $%d", len(args)))
	}

	query := fmt.Sprintf("SELECT %s FROM %s", selectColumns, s.table)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", ErrStoreFailed, err)
	}
	defer rows.Close()

	out := make([]University, 0)
	for rows.Next() {
		var u University
		if err := rows.Scan(&u.ID, &u.Name, &u.Country, &u.Fees, &u.MinGPA, &u.Requirements); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrStoreFailed, err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %v", ErrStoreFailed, err)
	}
	return out, nil
}
