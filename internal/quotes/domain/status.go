// Package domain provides core business rules for the quotes bounded
// context: the quote state machine and the pure aggregation math.
package domain

// Status is the lifecycle state of a quote.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusAnalyzing Status = "analyzing"
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusExpired   Status = "expired"
)

// transitions lists the allowed next states per state. Analyzing is only
// held while a consolidation run is outstanding and always falls back to
// pending, on success or failure. Expired is reachable once a quote has
// been put in front of the owner (pending or approved).
var transitions = map[Status][]Status{
	StatusDraft:     {StatusAnalyzing, StatusPending},
	StatusAnalyzing: {StatusPending},
	StatusPending:   {StatusApproved, StatusRejected, StatusExpired},
	StatusApproved:  {StatusExpired},
}

// IsValid reports whether s is a known quote status.
func IsValid(s Status) bool {
	switch s {
	case StatusDraft, StatusAnalyzing, StatusPending, StatusApproved, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// CanTransition reports whether a quote may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsEditable reports whether structural edits (sub-quotes, materials) are
// allowed in the given status. Finalized quotes are immutable.
func IsEditable(s Status) bool {
	return s == StatusDraft || s == StatusPending
}

// IsTerminal reports whether no further transitions exist from s.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}
