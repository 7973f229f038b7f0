package reservation

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s.IsValid() && s != StatusActive
}

// ReleaseReason is the terminal status a release moves an active reservation to.
type ReleaseReason string

const (
	ReasonCancelled ReleaseReason = "cancelled"
	ReasonExpired   ReleaseReason = "expired"
)

func ParseReleaseReason(s string) (ReleaseReason, error) {
	switch ReleaseReason(s) {
	case ReasonCancelled, ReasonExpired:
		return ReleaseReason(s), nil
	case "":
		return ReasonCancelled, nil
	default:
		return "", ErrInvalidReleaseReason
	}
}

func (r ReleaseReason) Status() Status {
	if r == ReasonExpired {
		return StatusExpired
	}
	return StatusCancelled
}
