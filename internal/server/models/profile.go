package models

import "time"

// Roles stored in the profiles table. The role gates mutation and
// administrative endpoints; regular users only get filtered listings.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Profile is the locally stored part of a user record: role and display
// name. Identity (email, credentials) lives with the identity provider.
type Profile struct {
	ID        string
	Role      string
	FirstName string
	LastName  string
	CreatedAt time.Time
}

// DisplayName renders "First Last", falling back to whichever part exists.
func (p *Profile) DisplayName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	default:
		return p.LastName
	}
}

// UserRecord is the merged admin view: the identity provider's account data
// joined with the local profile. Field names follow the wire format the
// dashboard expects.
type UserRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Role      string    `json:"role"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
}
