package domain

import "time"

// StatusHistoryEntry is one immutable row of a request's audit trail.
type StatusHistoryEntry struct {
	EntryID    string        `json:"entryID"`
	RequestID  string        `json:"requestID"`
	Seq        int64         `json:"seq"`
	FromStatus RequestStatus `json:"fromStatus"`
	ToStatus   RequestStatus `json:"toStatus"`
	ActorID    string        `json:"actorID"`
	ActorName  string        `json:"actorName"`
	Remarks    *string       `json:"remarks,omitempty"`
	ChangedAt  time.Time     `json:"changedAt"`
}

// IsValidWalk reports whether entries, in order, form a walk of the state machine
// starting from Draft with each entry picking up where the previous one ended.
func IsValidWalk(entries []StatusHistoryEntry) bool {
	current := StatusDraft
	var last time.Time
	for i, e := range entries {
		if e.FromStatus != current || !e.FromStatus.CanTransitionTo(e.ToStatus) {
			return false
		}
		if i > 0 && e.ChangedAt.Before(last) {
			return false
		}
		current = e.ToStatus
		last = e.ChangedAt
	}
	return true
}
