package services

import (
	"context"
	"time"
)

// AuthService authenticates the administrator and issues access tokens.
type AuthService interface {
	// Login checks the credentials and returns a signed token and its expiry.
	Login(ctx context.Context, username, password string) (string, time.Time, error)
}
