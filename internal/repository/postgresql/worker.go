package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workerRepository struct {
	db *database.DB
}

const workerSelect = `
	SELECT w.id, w.name, w.external_id, w.is_manager, w.is_active, w.department_id,
		   w.password_hash, w.created_at, w.updated_at, d.name
	FROM workers w
	LEFT JOIN departments d ON d.id = w.department_id
`

func (r *workerRepository) findOne(ctx context.Context, where string, arg any) (*worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	var w worker.Worker
	err := q.QueryRow(ctx, workerSelect+where, arg).Scan(
		&w.ID, &w.Name, &w.ExternalID, &w.IsManager, &w.IsActive, &w.DepartmentID,
		&w.PasswordHash, &w.CreatedAt, &w.UpdatedAt, &w.DepartmentName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// FindByID implements worker.WorkerRepository.
func (r *workerRepository) FindByID(ctx context.Context, id string) (*worker.Worker, error) {
	if !isUUID(id) {
		return nil, nil
	}
	w, err := r.findOne(ctx, "WHERE w.id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get worker by id: %w", err)
	}
	return w, nil
}

// FindByExternalID implements worker.WorkerRepository.
func (r *workerRepository) FindByExternalID(ctx context.Context, externalID string) (*worker.Worker, error) {
	w, err := r.findOne(ctx, "WHERE w.external_id = $1", externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get worker by external id: %w", err)
	}
	return w, nil
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepository{
		db: db,
	}
}
