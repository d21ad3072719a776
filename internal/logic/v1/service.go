package v1

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/authwindow/auth-service/internal/core/domain"
	"github.com/authwindow/auth-service/internal/security/password"
	"github.com/authwindow/auth-service/internal/token"
	"github.com/authwindow/auth-service/middleware"
)

// TokenConfig carries the process-wide signing material. The secret
// is loaded once at startup and read-only thereafter; rotating it
// invalidates every outstanding token.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
}

// AuthService implements the register/login/profile use cases.
// It depends on the repository interface (injected via constructor)
// and MUST NOT access the database or SQL directly.
type AuthService struct {
	users  domain.UserRepository
	hasher password.Params
	tokens TokenConfig
}

// NewAuthService creates a new AuthService with the given dependencies.
func NewAuthService(users domain.UserRepository, hasher password.Params, tokens TokenConfig) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register handles user registration business logic.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.register", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("username", req.Username),
		attribute.String("email", req.Email),
	))
	defer span.End()

	if req.Password != req.ConfirmPassword {
		span.SetAttributes(attribute.Bool("registration.success", false))
		return nil, fmt.Errorf("register %q: %w", req.Email, ErrPasswordMismatch)
	}

	// Hash password (CPU-bound; runs on this request's goroutine only)
	passwordHash, err := password.Hash(s.hasher, req.Password)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := domain.Account{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	// Atomic existence-check + insert: the directory decides the race.
	if err := s.users.InsertIfAbsent(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			span.SetAttributes(attribute.Bool("registration.success", false))
			return nil, fmt.Errorf("register %q: %w", req.Email, ErrEmailTaken)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("insert user: %w", err)
	}

	tok, err := token.Issue(account.ID, time.Now(), s.tokens.TTL, s.tokens.Secret)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	span.SetAttributes(
		attribute.String("user.id", account.ID),
		attribute.Bool("registration.success", true),
	)
	span.AddEvent("user.registered")

	return &domain.AuthResponse{
		Message: fmt.Sprintf("User %s registered", account.Username),
		UserID:  account.ID,
		Token:   tok,
	}, nil
}

// Login handles user login business logic.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("email", req.Email),
	))
	defer span.End()

	account, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query user %q: %w", req.Email, err)
	}
	if account == nil {
		// Same error as a wrong password: no account enumeration.
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, fmt.Errorf("authenticate %q: %w", req.Email, ErrInvalidCredentials)
	}

	if !password.Verify(req.Password, account.PasswordHash) {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, fmt.Errorf("authenticate %q: %w", req.Email, ErrInvalidCredentials)
	}

	tok, err := token.Issue(account.ID, time.Now(), s.tokens.TTL, s.tokens.Secret)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	span.SetAttributes(
		attribute.String("user.id", account.ID),
		attribute.Bool("auth.success", true),
	)
	span.AddEvent("user.authenticated")

	return &domain.AuthResponse{
		Message: fmt.Sprintf("User %s logged in", account.Username),
		UserID:  account.ID,
		Token:   tok,
	}, nil
}

// Profile resolves an already-verified token subject to its public
// account projection. The subject arrives from the auth gate, which
// trusts the token without consulting the directory; a subject whose
// account no longer exists surfaces here as ErrUserNotFound.
func (s *AuthService) Profile(ctx context.Context, subject string) (*domain.ProfileView, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.profile", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", subject),
	))
	defer span.End()

	account, err := s.users.GetByID(ctx, subject)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query user %q: %w", subject, err)
	}
	if account == nil {
		span.SetAttributes(attribute.Bool("profile.found", false))
		return nil, fmt.Errorf("resolve subject %q: %w", subject, ErrUserNotFound)
	}

	span.SetAttributes(attribute.Bool("profile.found", true))

	return &domain.ProfileView{
		Message:  "Protected route",
		UserID:   account.ID,
		Username: account.Username,
		Email:    account.Email,
	}, nil
}
