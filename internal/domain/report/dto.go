package report

// ========================================
// ATTENDANCE REPORT
// ========================================

type AttendanceReport struct {
	GeneratedAt string `json:"generated_at"`
	Timezone    string `json:"timezone"`

	Summary AttendanceSummary     `json:"summary"`
	Rows    []AttendanceReportRow `json:"rows"`
}

type AttendanceSummary struct {
	TotalRecords       int     `json:"total_records"`
	OpenSessions       int     `json:"open_sessions"`
	PendingRecords     int     `json:"pending_records"`
	RejectedRecords    int     `json:"rejected_records"`
	TotalApprovedHours float64 `json:"total_approved_hours"`
}

// AttendanceReportRow is one record formatted for display in the report
// timezone. Hours is "open" while the session has no clock-out.
type AttendanceReportRow struct {
	RecordID         string  `json:"record_id"`
	WorkerName       string  `json:"worker_name"`
	WorkerExternalID string  `json:"worker_external_id"`
	DepartmentName   string  `json:"department_name"`
	Date             string  `json:"date"`
	ClockIn          string  `json:"clock_in"`
	ClockOut         *string `json:"clock_out"`
	Hours            string  `json:"hours"`
	Status           string  `json:"status"`
	IsManualEntry    bool    `json:"is_manual_entry"`
	ApproverName     string  `json:"approver_name"`
}
