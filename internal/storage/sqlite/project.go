package sqlite

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
)

// ProjectRepository persists project snapshots in SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ReplaceAll swaps an account's entire project set for the given
// snapshot in one transaction. Snapshot order is preserved.
func (r *ProjectRepository) ReplaceAll(ctx context.Context, accountID string, records []types.ProjectRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE account_id = ?`, accountID); err != nil {
		return fmt.Errorf("failed to clear projects: %w", err)
	}

	insert := `
		INSERT INTO projects (id, account_id, name, position, windows, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	for i, rec := range records {
		windows, err := sonic.Marshal(rec.Windows)
		if err != nil {
			return fmt.Errorf("failed to marshal windows: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insert, rec.ID, accountID, rec.Name, i, string(windows)); err != nil {
			return fmt.Errorf("failed to insert project: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListByAccount returns an account's projects in snapshot order
func (r *ProjectRepository) ListByAccount(ctx context.Context, accountID string) ([]types.ProjectRecord, error) {
	query := `
		SELECT id, name, windows
		FROM projects
		WHERE account_id = ?
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var records []types.ProjectRecord
	for rows.Next() {
		var rec types.ProjectRecord
		var windows string
		if err := rows.Scan(&rec.ID, &rec.Name, &windows); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		if err := sonic.Unmarshal([]byte(windows), &rec.Windows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal windows: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return records, nil
}
