package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/task-system/internal/core/domain"
	"github.com/taskhub/task-system/internal/core/ports"
)

// LoginLimiter throttles repeated failed logins per identity (Redis-backed in
// production). A nil limiter disables throttling.
type LoginLimiter interface {
	Allow(ctx context.Context, identity string) (bool, error)
	RecordFailure(ctx context.Context, identity string) error
	Reset(ctx context.Context, identity string) error
}

// AuthService implements registration, login and identity lookup.
type AuthService struct {
	users   ports.UserRepository
	tokens  *TokenIssuer
	limiter LoginLimiter
	audit   ports.AuditRecorder
	logger  zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *TokenIssuer, limiter LoginLimiter, audit ports.AuditRecorder, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, limiter: limiter, audit: audit, logger: logger}
}

// Register creates a new account with the "user" role. Username and email must
// both be unused; a clash on either yields ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("user registered")
	s.record(domain.AuditEntry{ActorID: created.ID, Action: "auth.register"})
	return created, nil
}

// Login authenticates by email or username and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (string, *domain.User, error) {
	if input.Identity == "" || input.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, input.Identity)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
		} else if !ok {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByIdentity(ctx, input.Identity)
	if err != nil {
		s.noteFailure(ctx, input.Identity)
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		s.noteFailure(ctx, input.Identity)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, input.Identity); err != nil {
			s.logger.Warn().Err(err).Msg("failed to reset login limiter")
		}
	}

	s.record(domain.AuditEntry{ActorID: user.ID, Action: "auth.login"})
	return token, user, nil
}

// Me returns the current account sans secret. The account may have been
// deleted since the token was issued.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) noteFailure(ctx context.Context, identity string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, identity); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *AuthService) record(entry domain.AuditEntry) {
	if s.audit == nil {
		return
	}
	entry.At = time.Now().UTC()
	s.audit.Record(entry)
}
