package models

import "time"

// User is the profile returned by the auth backend and cached locally so the
// app can greet the child after a restart without a network round trip.
type User struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
