package domain

import "time"

// Session marks an authenticated browsing context. It is ephemeral:
// ending the session discards it (and the cart with it — the cart is a
// single shared slot, not keyed by identity).
type Session struct {
	ID          string
	Identity    string
	DisplayName string
	StartedAt   time.Time
}
