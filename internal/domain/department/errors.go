package department

import "errors"

var ErrDepartmentNameExists = errors.New("department name already exists")
