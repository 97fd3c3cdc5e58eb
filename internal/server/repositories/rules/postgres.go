package rules

import (
	"context"
	"fmt"

	"github.com/pouchain/docstore/internal/dbx"
	"github.com/pouchain/docstore/internal/visibility"
)

// PostgresRepository implements rule storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]visibility.Rule, error) {
	query :=
		`SELECT path, user_id FROM user_file_visibility
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []visibility.Rule
	for rows.Next() {
		var rule visibility.Rule
		if err := rows.Scan(&rule.Path, &rule.UserID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) ListForPath(ctx context.Context, path string) ([]string, error) {
	query :=
		`SELECT user_id FROM user_file_visibility
		 WHERE path = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, path)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) DeleteForPath(ctx context.Context, path string) error {
	query :=
		`DELETE FROM user_file_visibility
		 WHERE path = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, path); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Insert(ctx context.Context, path, userID string) error {
	query :=
		`INSERT INTO user_file_visibility (path, user_id)
		 VALUES ($1, $2)
		 ON CONFLICT (path, user_id) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, path, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
