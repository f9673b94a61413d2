package domain

// GuardResult is the outcome of a request guard check (rate limit, lockout).
type GuardResult struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Guard   string `json:"guard,omitempty"`
}
