package department

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDepartmentRepo struct {
	departments []department.Department
}

func (f *fakeDepartmentRepo) List(ctx context.Context) ([]department.Department, error) {
	out := append([]department.Department(nil), f.departments...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeDepartmentRepo) Create(ctx context.Context, name string) (department.Department, error) {
	for _, d := range f.departments {
		if strings.EqualFold(d.Name, name) {
			return department.Department{}, department.ErrDepartmentNameExists
		}
	}
	d := department.Department{ID: name + "-id", Name: name, CreatedAt: time.Now()}
	f.departments = append(f.departments, d)
	return d, nil
}

func TestCreateAndListDepartments(t *testing.T) {
	svc := NewDepartmentService(&fakeDepartmentRepo{})
	ctx := context.Background()

	_, err := svc.CreateDepartment(ctx, department.CreateDepartmentRequest{Name: "  Sales "})
	require.NoError(t, err)
	_, err = svc.CreateDepartment(ctx, department.CreateDepartmentRequest{Name: "Engineering"})
	require.NoError(t, err)

	list, err := svc.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Engineering", list[0].Name)
	assert.Equal(t, "Sales", list[1].Name)
}

func TestCreateDepartment_Duplicate(t *testing.T) {
	svc := NewDepartmentService(&fakeDepartmentRepo{})
	ctx := context.Background()

	_, err := svc.CreateDepartment(ctx, department.CreateDepartmentRequest{Name: "HR"})
	require.NoError(t, err)

	_, err = svc.CreateDepartment(ctx, department.CreateDepartmentRequest{Name: "HR"})
	assert.ErrorIs(t, err, department.ErrDepartmentNameExists)
}

func TestCreateDepartment_Validation(t *testing.T) {
	svc := NewDepartmentService(&fakeDepartmentRepo{})

	_, err := svc.CreateDepartment(context.Background(), department.CreateDepartmentRequest{Name: ""})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
