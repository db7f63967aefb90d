package events

// EventType enumerates domain events.
type EventType string

const (
	EventUserRegistered EventType = "UserRegistered"
	EventUserWithdrawn  EventType = "UserWithdrawn"
	EventLikeAdded      EventType = "LikeAdded"
	EventLikeRemoved    EventType = "LikeRemoved"
)

// Event carries a domain occurrence to subscribers.
type Event struct {
	Type    EventType
	UserID  string
	Payload any
}

// UserRegisteredPayload describes a completed signup.
type UserRegisteredPayload struct {
	Email string
}

// UserWithdrawnPayload describes an account withdrawal.
type UserWithdrawnPayload struct {
	Email        string
	LikesRemoved int
}

// LikeAddedPayload describes a new like.
type LikeAddedPayload struct {
	LikeID string
	Src    string
	Name   string
}

// LikeRemovedPayload describes a deleted like.
type LikeRemovedPayload struct {
	LikeID string
}
