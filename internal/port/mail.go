package port

// Mailer sends plain-text email. The only consumer in this codebase is the
// contact form relay.
type Mailer interface {
	Send(to, subject, body string) error
}
