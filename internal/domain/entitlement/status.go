package entitlement

// Status is the lifecycle state of a user entitlement record.
// Only StatusActive grants access; past_due and canceled do not, regardless
// of any grace period the payment provider applies on its side.
type Status string

const (
	StatusActive   Status = "active"
	StatusPastDue  Status = "past_due"
	StatusCanceled Status = "canceled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusPastDue, StatusCanceled:
		return true
	}
	return false
}

func (s Status) GrantsAccess() bool {
	return s == StatusActive
}
