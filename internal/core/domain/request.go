package domain

import "time"

// RequestState represents the lifecycle state of a rental request.
type RequestState string

const (
	RequestPending   RequestState = "pending"
	RequestAccepted  RequestState = "accepted"
	RequestRejected  RequestState = "rejected"
	RequestCancelled RequestState = "cancelled"
)

// validTransitions defines the allowed state machine transitions. Every
// state other than pending is terminal.
var validTransitions = map[RequestState][]RequestState{
	RequestPending: {RequestAccepted, RequestRejected, RequestCancelled},
}

// CanTransitionTo reports whether a transition from the current state to
// next is valid.
func (s RequestState) CanTransitionTo(next RequestState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Request is a prospective tenant's expression of interest in a room,
// subject to owner approval. A requester holds at most one pending request
// per room at a time.
type Request struct {
	ID             string       `json:"id"`
	RoomID         string       `json:"room_id"`
	RequesterEmail string       `json:"requester_email"`
	State          RequestState `json:"state"`
	CreatedAt      time.Time    `json:"created_at"`
	DeletedAt      *time.Time   `json:"deleted_at,omitempty"`
}

// Deleted reports whether the requester has soft-deleted the request.
func (r *Request) Deleted() bool {
	return r.DeletedAt != nil
}
