package ports

import "context"

// AuthService guards the admin surface. Login exchanges the shared admin
// password for an HMAC-signed token carried in the X-Auth header.
type AuthService interface {
	Login(ctx context.Context, password string) (string, error)
	ValidateToken(ctx context.Context, token string) (bool, error)
}
