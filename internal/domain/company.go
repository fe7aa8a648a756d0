package domain

import (
	"errors"
	"time"
)

// Company is the tenant every ledger document is scoped to.
type Company struct {
	ID             string
	Username       string
	Email          string
	ShopName       string
	ShopNameUrdu   string
	HashedPassword string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role is the access level carried in an identity token.
type Role string

const (
	// RoleAdmin manages banks and bill templates across companies.
	RoleAdmin Role = "admin"

	// RoleCompany operates its own ledger only.
	RoleCompany Role = "company"
)

// IsValid checks if the role is known.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleCompany
}

// Authentication errors.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
