package iuserrepo

import (
	"context"

	"github.com/gebeta/delivery/internal/service/models/user"
)

// IUserRepository defines the slice of user state this backend owns: push
// tokens and delivery locations. Account data itself belongs to auth.
type IUserRepository interface {
	// Get returns one user.
	Get(ctx context.Context, id string) (user.User, error)

	// UpdatePushToken stores the user's push delivery token.
	UpdatePushToken(ctx context.Context, id string, token string) error

	// UpdateLocation stores the user's delivery coordinates and address.
	UpdateLocation(ctx context.Context, id string, latitude, longitude, address string) error
}
