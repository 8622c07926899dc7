package attendance

import (
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// CLOCK DTOs
// ========================================

// ClockRequest is shared by clock-in and clock-out. Location is optional.
type ClockRequest struct {
	WorkerID  string   `json:"-"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	errs = append(errs, validateLocation(r.Latitude, r.Longitude)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// MANUAL REPORT DTOs
// ========================================

// ManualReportPayload is the wire shape of one manual report. Timestamps are
// RFC 3339 or wall-clock "YYYY-MM-DDTHH:MM[:SS]" in the service timezone.
type ManualReportPayload struct {
	ClockIn   string   `json:"clock_in"`
	ClockOut  string   `json:"clock_out"`
	Reason    string   `json:"reason"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// ManualReportBatchPayload carries several intervals submitted together.
type ManualReportBatchPayload struct {
	Reports []ManualReportPayload `json:"reports"`
}

// ToRequest parses the payload timestamps in loc.
func (p ManualReportPayload) ToRequest(workerID string, loc *time.Location) (SubmitManualReportRequest, error) {
	var errs validator.ValidationErrors

	clockIn, ok := validator.ParseTimestamp(p.ClockIn, loc)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "clock_in must be a valid timestamp (YYYY-MM-DDTHH:MM or RFC 3339)",
		})
	}

	clockOut, ok := validator.ParseTimestamp(p.ClockOut, loc)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_out",
			Message: "clock_out must be a valid timestamp (YYYY-MM-DDTHH:MM or RFC 3339)",
		})
	}

	if len(errs) > 0 {
		return SubmitManualReportRequest{}, errs
	}

	return SubmitManualReportRequest{
		WorkerID:  workerID,
		ClockIn:   clockIn,
		ClockOut:  clockOut,
		Reason:    p.Reason,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}, nil
}

type SubmitManualReportRequest struct {
	WorkerID  string
	ClockIn   time.Time
	ClockOut  time.Time
	Reason    string
	Latitude  *float64
	Longitude *float64
}

// Validate checks the fields not covered by the reason and interval rules.
func (r *SubmitManualReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	errs = append(errs, validateLocation(r.Latitude, r.Longitude)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// APPROVAL DTOs
// ========================================

type SetStatusRequest struct {
	RecordID       string `json:"-"`
	Status         string `json:"status"`
	ActingWorkerID string `json:"-"`
}

func (r *SetStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RecordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "record id is required",
		})
	}

	if validator.IsEmpty(r.ActingWorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "acting_worker_id",
			Message: "acting worker is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// QUERY DTOs
// ========================================

// RecordFilter narrows a record listing. Nil fields impose no constraint.
type RecordFilter struct {
	Status        *Status `json:"status,omitempty"`
	IsManualEntry *bool   `json:"is_manual_entry,omitempty"`
	WorkerID      *string `json:"worker_id,omitempty"`
	DepartmentID  *string `json:"department_id,omitempty"`
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !f.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: PENDING, APPROVED, REJECTED",
		})
	}

	if f.WorkerID != nil && strings.TrimSpace(*f.WorkerID) == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id must not be empty",
		})
	}

	if f.DepartmentID != nil && strings.TrimSpace(*f.DepartmentID) == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSES
// ========================================

type RecordResponse struct {
	ID            string   `json:"id"`
	WorkerID      string   `json:"worker_id"`
	ClockIn       string   `json:"clock_in"`
	ClockOut      *string  `json:"clock_out,omitempty"`
	Status        string   `json:"status"`
	IsManualEntry bool     `json:"is_manual_entry"`
	ManualReason  *string  `json:"manual_reason,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	UpdatedBy     *string  `json:"updated_by,omitempty"`
	Hours         *float64 `json:"hours,omitempty"`
	HoursDisplay  string   `json:"hours_display"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`

	WorkerName       string  `json:"worker_name,omitempty"`
	WorkerExternalID string  `json:"worker_external_id,omitempty"`
	DepartmentID     *string `json:"department_id,omitempty"`
	DepartmentName   *string `json:"department_name,omitempty"`
	ApproverName     *string `json:"approver_name,omitempty"`
}

func NewRecordResponse(r Record) RecordResponse {
	resp := RecordResponse{
		ID:            r.ID,
		WorkerID:      r.WorkerID,
		ClockIn:       r.ClockIn.Format(time.RFC3339),
		Status:        r.Status.String(),
		IsManualEntry: r.IsManualEntry,
		ManualReason:  r.ManualReason,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		UpdatedBy:     r.UpdatedBy,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}

	if r.ClockOut != nil {
		out := r.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &out
	}

	if elapsed, err := r.Elapsed(); err == nil {
		resp.HoursDisplay = elapsed.String()
		if !elapsed.Open {
			hours := math.Round(elapsed.Hours()*100) / 100
			resp.Hours = &hours
		}
	}

	return resp
}

func NewRecordViewResponse(v RecordView) RecordResponse {
	resp := NewRecordResponse(v.Record)
	resp.WorkerName = v.WorkerName
	resp.WorkerExternalID = v.WorkerExternalID
	resp.DepartmentID = v.DepartmentID
	resp.DepartmentName = v.DepartmentName
	resp.ApproverName = v.ApproverName
	return resp
}

func validateLocation(lat, lng *float64) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if lat != nil && !validator.IsValidLatitude(*lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if lng != nil && !validator.IsValidLongitude(*lng) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	return errs
}
