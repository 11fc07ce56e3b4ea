package usersvc

import (
	"context"

	"github.com/gebeta/delivery/internal/dal/interfaces/iuserrepo"
	"github.com/gebeta/delivery/internal/dal/postgres"
	postgresrepo "github.com/gebeta/delivery/internal/dal/repositories/user/postgres"
	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/user"
)

// UserService manages the delivery-side slice of user state: push tokens
// and delivery locations.
type UserService struct {
	userRepo iuserrepo.IUserRepository
}

// option is a function that configures the UserService.
type option func(*UserService)

// MustNewUserService creates a new UserService.
func MustNewUserService(opts ...option) *UserService {
	s := &UserService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient wires the default Postgres-backed user repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *UserService) {
		s.userRepo = postgresrepo.NewPostgresUserRepository(pgClient.Pool())
	}
}

// WithUserRepository sets the user repository directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUserRepository(repo iuserrepo.IUserRepository) option {
	return func(s *UserService) {
		s.userRepo = repo
	}
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, id string) (user.User, error) {
	return s.userRepo.Get(ctx, id)
}

// RegisterPushToken stores the user's push delivery token.
func (s *UserService) RegisterPushToken(ctx context.Context, id string, token string) error {
	if token == "" {
		return apperr.Validation("push token must not be empty")
	}

	return s.userRepo.UpdatePushToken(ctx, id, token)
}

// UpdateLocation stores the user's delivery coordinates and address.
func (s *UserService) UpdateLocation(ctx context.Context, id string, latitude, longitude, address string) error {
	return s.userRepo.UpdateLocation(ctx, id, latitude, longitude, address)
}
