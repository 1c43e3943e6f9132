package ports

import (
	"context"

	"github.com/90sidort/skillshare-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username string
	Password string
	Name     string
	Surname  string
	Email    string
	About    string
}

// AuthService handles registration and login. Every new account gets the
// user role; admins are provisioned out of band.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
