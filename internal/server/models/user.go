// Package models defines the server-side database records.
package models

import "time"

type User struct {
	ID             string
	Nickname       string
	Avatar         string
	HashedPassword string
	CreatedAt      time.Time
}
