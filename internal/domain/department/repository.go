package department

import "context"

type DepartmentRepository interface {
	// List returns all departments ordered by name
	List(ctx context.Context) ([]Department, error)

	// Create fails with ErrDepartmentNameExists on a duplicate name
	Create(ctx context.Context, name string) (Department, error)
}
