package postgresql

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// SeedDepartments are created on first start.
var SeedDepartments = []string{
	"מחלקה כללית",
	"משאבי אנוש",
	"פיתוח",
	"שירות לקוחות",
	"מכירות",
}

type SeedWorker struct {
	ExternalID string
	Name       string
	Password   string
	IsManager  bool
}

// SeedWorkers are placed in the first seed department.
var SeedWorkers = []SeedWorker{
	{ExternalID: "322754672", Name: "מנהל ראשי", Password: "123456", IsManager: true},
	{ExternalID: "123456782", Name: "עובד לדוגמא", Password: "password", IsManager: false},
}

// Seed inserts the default departments and workers. Existing rows are left
// untouched, so running it twice is harmless.
func Seed(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(tx pgx.Tx) error {
		for _, name := range SeedDepartments {
			id, err := newID()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO departments (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
				id, name,
			); err != nil {
				return fmt.Errorf("seed department %q: %w", name, err)
			}
		}

		var departmentID string
		if err := tx.QueryRow(ctx,
			`SELECT id FROM departments WHERE name = $1`, SeedDepartments[0],
		).Scan(&departmentID); err != nil {
			return fmt.Errorf("seed default department lookup: %w", err)
		}

		for _, w := range SeedWorkers {
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM workers WHERE external_id = $1)`, w.ExternalID,
			).Scan(&exists); err != nil {
				return fmt.Errorf("seed worker lookup %s: %w", w.ExternalID, err)
			}
			if exists {
				continue
			}

			hash, err := worker.HashPassword(w.Password)
			if err != nil {
				return fmt.Errorf("hash seed password: %w", err)
			}
			id, err := newID()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO workers (id, external_id, name, password_hash, is_manager, department_id)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, id, w.ExternalID, w.Name, hash, w.IsManager, departmentID); err != nil {
				return fmt.Errorf("seed worker %s: %w", w.ExternalID, err)
			}
			slog.Info("seeded worker", "external_id", w.ExternalID, "is_manager", w.IsManager)
		}

		return nil
	})
}
