package http

// LoginResponse is returned by the login and current-user endpoints. The
// quota fields let the frontend render the remaining allowance without a
// second round trip.
type LoginResponse struct {
	Token              string `json:"token"`
	Email              string `json:"email"`
	SubscriptionActive bool   `json:"subscription_active"`
	Remaining          int    `json:"remaining"`
	Limit              int    `json:"limit"`
}

// QuotaResponse describes the caller's current search allowance.
// Remaining and Limit are -1 for unmetered subscribers.
type QuotaResponse struct {
	Remaining          int    `json:"remaining"`
	Limit              int    `json:"limit"`
	SubscriptionActive bool   `json:"subscription_active"`
	RequiresLogin      bool   `json:"requires_login"`
	Email              string `json:"email,omitempty"`
}

// WebhookAck acknowledges a processed Stripe webhook event.
type WebhookAck struct {
	Status string `json:"status"`
}
