package booking

import "strings"

type Status string

const (
	StatusUnconfirmed Status = "unconfirmed"
	StatusConfirmed   Status = "confirmed"
	StatusCheckedIn   Status = "checked-in"
	StatusCheckedOut  Status = "checked-out"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{StatusUnconfirmed, StatusConfirmed, StatusCheckedIn, StatusCheckedOut}

// ParseStatus accepts only the four lifecycle values. Cancellation is deletion.
func ParseStatus(v string) (Status, error) {
	s := Status(strings.TrimSpace(v))
	for _, known := range Statuses {
		if s == known {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// TransitionPolicy decides whether a booking may move between two statuses.
type TransitionPolicy interface {
	Allow(from, to Status) bool
}

// PermissiveTransitions allows any status to follow any other.
type PermissiveTransitions struct{}

func (PermissiveTransitions) Allow(from, to Status) bool { return true }

// StrictTransitions only allows forward moves along the stay, plus
// un-confirming. Setting the current status again is always allowed.
type StrictTransitions struct{}

var strictTable = map[Status][]Status{
	StatusUnconfirmed: {StatusConfirmed, StatusCheckedIn},
	StatusConfirmed:   {StatusUnconfirmed, StatusCheckedIn},
	StatusCheckedIn:   {StatusCheckedOut},
	StatusCheckedOut:  {},
}

func (StrictTransitions) Allow(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range strictTable[from] {
		if next == to {
			return true
		}
	}
	return false
}
