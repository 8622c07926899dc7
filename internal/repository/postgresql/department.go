package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type departmentRepository struct {
	db *database.DB
}

// List implements department.DepartmentRepository.
func (r *departmentRepository) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, created_at FROM departments ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	departments := []department.Department{}
	for rows.Next() {
		var d department.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departments: %w", err)
	}

	return departments, nil
}

// Create implements department.DepartmentRepository.
func (r *departmentRepository) Create(ctx context.Context, name string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return department.Department{}, fmt.Errorf("failed to generate department id: %w", err)
	}

	d := department.Department{ID: id, Name: name}
	err = q.QueryRow(ctx, `
		INSERT INTO departments (id, name, created_at)
		VALUES ($1, $2, NOW())
		RETURNING created_at
	`, d.ID, d.Name).Scan(&d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}

	return d, nil
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepository{
		db: db,
	}
}
