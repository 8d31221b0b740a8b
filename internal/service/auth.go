package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hashforge/site-server-go/internal/model"
	"github.com/hashforge/site-server-go/internal/repository"
	"github.com/hashforge/site-server-go/internal/util"
)

type AuthService struct {
	userRepo    repository.AdminUserRepository
	sessionRepo repository.AdminSessionRepository
	sessionTTL  time.Duration
}

func NewAuthService(
	userRepo repository.AdminUserRepository,
	sessionRepo repository.AdminSessionRepository,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
	}
}

// Login verifies the credentials and issues a new session token. It returns
// an empty token when the credentials do not match; the caller turns that
// into a 401.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.AdminUser, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		// Burn a hash anyway so the response time does not reveal whether
		// the username exists.
		_, _ = util.HashPassword(password)
		return "", nil, nil
	}

	ok, err := util.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		// Malformed stored hash: our own bug, never a user condition.
		log.Error().Err(err).Str("username", username).Msg("stored password hash is malformed")
		return "", nil, err
	}
	if !ok {
		return "", nil, nil
	}

	token, err := util.GenerateToken()
	if err != nil {
		return "", nil, err
	}

	_, err = s.sessionRepo.Create(ctx, model.CreateAdminSessionParams{
		TokenHash: util.HashToken(token),
		AdminID:   user.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	})
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout deletes the session for the given token. Deleting a token that no
// longer exists is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.DeleteByTokenHash(ctx, util.HashToken(token))
}

// Resolve maps a bearer token back to the owning admin, or nil when the
// session is absent or expired.
func (s *AuthService) Resolve(ctx context.Context, token string) (*model.AdminUser, error) {
	return s.sessionRepo.ResolveAdmin(ctx, util.HashToken(token))
}
