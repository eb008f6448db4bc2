package email

// Provider sends the transactional emails of the account lifecycle. Delivery
// is fire-and-forget for callers: they log failures and move on.
type Provider interface {
	// SendVerification sends the email-verification link after registration.
	SendVerification(to, name, token string) error

	// SendWelcome sends the welcome email after a successful verification.
	SendWelcome(to, name string) error

	// SendPasswordReset sends the reset link for the forgot-password flow.
	SendPasswordReset(to, name, token string) error

	// SendPasswordChanged confirms a completed password change or reset.
	SendPasswordChanged(to, name string) error
}
