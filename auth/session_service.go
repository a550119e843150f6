// Package auth orchestrates the user-facing session flows: registration,
// login, refresh, logout and anonymous provisioning. It composes the access
// token issuer and the refresh token store and enforces the cross-field
// invariants; everything below it is a repository.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lovablecline/platform/token"
	"github.com/lovablecline/platform/token/refresh"
	"github.com/lovablecline/platform/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Session is the result of a successful flow: the user plus a freshly minted
// access/refresh token pair.
type Session struct {
	User         *users.User
	AccessToken  string
	RefreshToken string
}

// SessionService provides the register, login, refresh, logout and anonymous
// session operations.
type SessionService struct {
	users     users.Repo
	issuer    *token.Issuer
	store     *refresh.Store
	anonymous AnonymousPolicy
	nowFunc   func() time.Time
}

// SessionServiceOption defines a function type to modify the SessionService.
type SessionServiceOption func(*SessionService)

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(now func() time.Time) SessionServiceOption {
	return func(s *SessionService) {
		s.nowFunc = now
	}
}

// WithAnonymousPolicy swaps the strategy deciding which user backs an
// anonymous session.
func WithAnonymousPolicy(policy AnonymousPolicy) SessionServiceOption {
	return func(s *SessionService) {
		s.anonymous = policy
	}
}

// NewSessionService initializes a SessionService with required dependencies.
func NewSessionService(userRepo users.Repo, issuer *token.Issuer, store *refresh.Store, options ...SessionServiceOption) (*SessionService, error) {
	if userRepo == nil {
		return nil, errors.New("[NewSessionService] user repo is required")
	}
	if issuer == nil {
		return nil, errors.New("[NewSessionService] issuer is required")
	}
	if store == nil {
		return nil, errors.New("[NewSessionService] refresh token store is required")
	}

	s := &SessionService{
		users:   userRepo,
		issuer:  issuer,
		store:   store,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.anonymous == nil {
		s.anonymous = NewSharedAnonymousPolicy(userRepo)
	}
	return s, nil
}

// Register creates a user with a hashed password and opens a session for it.
// Both uniqueness checks run before any write.
func (s *SessionService) Register(ctx context.Context, username, email, password string) (*Session, error) {
	usernameTaken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, "[SessionService.Register] ExistsByUsername")
	}
	emailTaken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "[SessionService.Register] ExistsByEmail")
	}
	if usernameTaken {
		return nil, ErrUsernameTaken
	}
	if emailTaken {
		return nil, ErrEmailTaken
	}

	passwordHash, err := users.HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "[SessionService.Register] HashPassword")
	}

	user := &users.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.nowFunc(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "[SessionService.Register] Create")
	}

	return s.openSession(ctx, user)
}

// Login authenticates by username or email. An unknown identifier burns a
// dummy hash comparison so it is indistinguishable from a wrong password.
func (s *SessionService) Login(ctx context.Context, identifier, password string) (*Session, error) {
	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		users.BurnPasswordCheck(password)
		return nil, ErrInvalidCredentials
	}
	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if err := s.users.SetLastLogin(ctx, user.ID); err != nil {
		return nil, errors.Wrap(err, "[SessionService.Login] SetLastLogin")
	}

	return s.openSession(ctx, user)
}

// Refresh redeems a refresh token and rotates the session: a new access token
// plus a new refresh token, which supersedes the one just redeemed.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	stored, err := s.store.Redeem(ctx, refreshToken)
	if err != nil {
		log.Debug().Err(err).Msg("refresh token rejected")
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		log.Debug().Err(err).Str("user_id", stored.UserID).Msg("refresh token user missing")
		return nil, ErrInvalidRefreshToken
	}

	return s.openSession(ctx, user)
}

// Logout revokes the refresh token. It never surfaces an error for a stale,
// already-revoked or unknown token.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) {
	if err := s.store.Revoke(ctx, refreshToken); err != nil {
		log.Error().Err(err).Msg("logout revocation failed")
	}
}

// Validate reports whether the access token is genuine and unexpired.
func (s *SessionService) Validate(rawToken string) bool {
	return s.issuer.IsValid(rawToken)
}

// UserFromToken resolves the user behind a valid access token. An invalid or
// expired token yields (nil, nil).
func (s *SessionService) UserFromToken(ctx context.Context, rawToken string) (*users.User, error) {
	if !s.issuer.IsValid(rawToken) {
		return nil, nil
	}
	userID, err := s.issuer.ExtractUserID(rawToken)
	if err != nil {
		return nil, nil
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "[SessionService.UserFromToken] GetByID")
	}
	return user, nil
}

// AnonymousSession resolves the anonymous user via the configured policy and
// then proceeds exactly like a login.
func (s *SessionService) AnonymousSession(ctx context.Context) (*Session, error) {
	user, err := s.anonymous.Resolve(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[SessionService.AnonymousSession] Resolve")
	}
	if err := s.users.SetLastLogin(ctx, user.ID); err != nil {
		return nil, errors.Wrap(err, "[SessionService.AnonymousSession] SetLastLogin")
	}
	return s.openSession(ctx, user)
}

// AccessTokenTTL exposes the configured access token lifetime for response
// bodies.
func (s *SessionService) AccessTokenTTL() time.Duration {
	return s.issuer.TTL()
}

func (s *SessionService) openSession(ctx context.Context, user *users.User) (*Session, error) {
	accessToken, err := s.issuer.Issue(user)
	if err != nil {
		return nil, errors.Wrap(err, "[SessionService.openSession] Issue access token")
	}
	stored, err := s.store.Issue(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "[SessionService.openSession] Issue refresh token")
	}
	return &Session{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: stored.Token,
	}, nil
}
