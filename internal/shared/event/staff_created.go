package event

// StaffCreated is emitted by the staff module after a new staff record is
// persisted. TemporaryPassword is the plaintext the admin entered and is only
// carried to the welcome email.
type StaffCreated struct {
	Name              string
	StaffID           string
	Email             string
	TemporaryPassword string
}

// Delivery reports what happened to the notification of an event.
type Delivery struct {
	Sent      bool
	MessageID string
	Error     string
}
