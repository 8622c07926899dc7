package attendance

import (
	"strings"
)

type Status string

const (
	StatusPending  Status = "PENDING"  // manual entry waiting for a manager
	StatusApproved Status = "APPROVED" // terminal
	StatusRejected Status = "REJECTED" // terminal
)

// ParseStatus accepts a status name in any letter case.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is defined.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo reports whether s -> next is a legal transition.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next.IsTerminal()
}

// InitialStatus is APPROVED for system-observed entries and PENDING for
// self-reported ones.
func InitialStatus(isManualEntry bool) Status {
	if isManualEntry {
		return StatusPending
	}
	return StatusApproved
}

func (s Status) String() string {
	return string(s)
}
