package models

import "fmt"

// Status is the single vocabulary for timesheet and leave workflow state.
// The coarse "Approved" that older clients sent is accepted on parse as
// HR-Approved but is never written back out.
type Status string

const (
	StatusDraft           Status = "Draft"
	StatusSubmitted       Status = "Submitted"
	StatusManagerApproved Status = "Manager-Approved"
	StatusHRApproved      Status = "HR-Approved"
	StatusRejected        Status = "Rejected"
)

func ParseStatus(s string) (Status, error) {
	switch s {
	case string(StatusDraft), string(StatusSubmitted), string(StatusManagerApproved),
		string(StatusHRApproved), string(StatusRejected):
		return Status(s), nil
	case "Approved":
		return StatusHRApproved, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// ManagerPending and HRPending are the queue filters for the two approval
// surfaces: managers act on freshly submitted sheets, HR on manager-approved
// ones.
var (
	ManagerPending = []Status{StatusSubmitted}
	HRPending      = []Status{StatusManagerApproved}
)

var transitions = map[Status][]Status{
	StatusDraft:           {StatusSubmitted},
	StatusSubmitted:       {StatusManagerApproved, StatusRejected},
	StatusManagerApproved: {StatusHRApproved, StatusRejected},
	// Rejected sheets reopen as drafts; resubmitting straight from Rejected
	// is the same reopen-and-submit collapsed into one step.
	StatusRejected: {StatusDraft, StatusSubmitted},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusHRApproved
}

func (s Status) IsPendingApproval() bool {
	return s == StatusSubmitted || s == StatusManagerApproved
}

// Submittable reports whether a sheet in this state may be (re)submitted.
func (s Status) Submittable() bool {
	return s == StatusDraft || s == StatusRejected
}
