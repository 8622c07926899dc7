package auth

import "github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"

type LoginRequest struct {
	ExternalID string `json:"external_id"`
	Password   string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.ExternalID = validator.NormalizeExternalID(r.ExternalID)

	// External ID
	if validator.IsEmpty(r.ExternalID) {
		errs = append(errs, validator.ValidationError{
			Field:   "external_id",
			Message: "external_id is required",
		})
	} else if !validator.IsValidIsraeliID(r.ExternalID) {
		errs = append(errs, validator.ValidationError{
			Field:   "external_id",
			Message: "external_id must be a valid 9-digit ID number",
		})
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WorkerSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ExternalID   string  `json:"external_id"`
	IsManager    bool    `json:"is_manager"`
	DepartmentID *string `json:"department_id,omitempty"`
}

type LoginResponse struct {
	AccessToken          string        `json:"access_token"`
	AccessTokenExpiresIn int64         `json:"access_token_expires_in"`
	Worker               WorkerSummary `json:"worker"`
}
