package entity

// Recipient is a single destination of an email.
type Recipient struct {
	Address     string
	DisplayName string
}

// MessageContent is a rendered email. It is not modified after rendering.
type MessageContent struct {
	Kind     Kind
	Subject  string
	HTMLBody string
}

// SendOutcome is the result of one delivery attempt.
//
// Error is empty when Succeeded is true. MessageID is set only on success.
type SendOutcome struct {
	Recipient Recipient
	Succeeded bool
	MessageID string
	Error     string
}

// BroadcastReport aggregates the outcomes of a broadcast.
//
// Succeeded + len(Failed) always equals TotalRecipients.
type BroadcastReport struct {
	TotalRecipients int
	Succeeded       int
	Failed          []SendOutcome
}
