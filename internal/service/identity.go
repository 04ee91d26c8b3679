package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/family-events/internal/domain"
)

// Session is the signed-in state of one user session. It is created once
// and shared by the services of that session; there is no global user.
type Session struct {
	user *domain.User
}

// NewSession returns a session with nobody signed in.
func NewSession() *Session {
	return &Session{}
}

// User returns the signed-in user.
func (s *Session) User() (*domain.User, bool) {
	if s == nil || s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}

func (s *Session) set(u *domain.User) {
	cp := *u
	s.user = &cp
}

func (s *Session) clear() {
	s.user = nil
}

// IdentityService resolves users and owns the session's current-user slot.
type IdentityService struct {
	users    domain.UserRepository
	session  *Session
	notifier Notifier
	metrics  *Metrics

	secret   []byte
	tokenTTL time.Duration
	throttle *Throttle
}

// NewIdentityService creates a new IdentityService. secret signs session
// tokens; ttl bounds how long a token can be resumed.
func NewIdentityService(users domain.UserRepository, session *Session, secret string, ttl time.Duration, notifier Notifier, metrics *Metrics) *IdentityService {
	if notifier == nil {
		notifier = discard{}
	}
	return &IdentityService{
		users:    users,
		session:  session,
		notifier: notifier,
		metrics:  metrics,
		secret:   []byte(secret),
		tokenTTL: ttl,
	}
}

// SetThrottle limits sign-in attempts per email. A nil throttle disables
// the limit.
func (s *IdentityService) SetThrottle(t *Throttle) {
	s.throttle = t
}

// FindUser returns the user with the given id.
func (s *IdentityService) FindUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// DisplayName resolves a user id to a name, falling back to a placeholder
// for ids that no longer resolve.
func (s *IdentityService) DisplayName(ctx context.Context, id string) string {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.UnknownUserName
	}
	return u.Name
}

// ListUsers returns every known user.
func (s *IdentityService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Authenticate signs in the user with the given email. The password is
// accepted unchecked.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if s.throttle != nil && !s.throttle.Allow(strings.ToLower(strings.TrimSpace(email))) {
		err := domain.ErrRateLimited
		s.metrics.login(false)
		s.notifier.Notify(ctx, failureNotice(err))
		slog.Warn("sign in throttled", "email", email)
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = domain.ErrInvalidCredentials
		} else {
			err = fmt.Errorf("get user: %w", err)
		}
		s.metrics.login(false)
		s.notifier.Notify(ctx, failureNotice(err))
		slog.Warn("sign in failed", "email", email, "error", err)
		return nil, err
	}

	s.session.set(user)
	s.metrics.login(true)
	s.notifier.Notify(ctx, info("Login realizado com sucesso", fmt.Sprintf("Bem-vindo, %s!", user.Name)))
	slog.Info("signed in", "user_id", user.ID)
	return user, nil
}

// SignOut clears the current user.
func (s *IdentityService) SignOut(ctx context.Context) {
	if u, ok := s.session.User(); ok {
		slog.Info("signed out", "user_id", u.ID)
	}
	s.session.clear()
	s.notifier.Notify(ctx, info("Logout realizado", "Você saiu do sistema."))
}

// CurrentUser returns the signed-in user.
func (s *IdentityService) CurrentUser() (*domain.User, bool) {
	return s.session.User()
}

// IsAdmin reports whether the signed-in user is an admin.
func (s *IdentityService) IsAdmin() bool {
	u, _ := s.session.User()
	return u.IsAdmin()
}

// Token returns a signed token for the current user that Resume accepts.
func (s *IdentityService) Token() (string, error) {
	u, ok := s.session.User()
	if !ok {
		return "", domain.ErrUnauthenticated
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"name": u.Name,
		"role": string(u.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Resume validates a token produced by Token and signs its user back in.
func (s *IdentityService) Resume(ctx context.Context, tokenString string) (*domain.User, error) {
	userID, err := s.parseToken(tokenString)
	if err != nil {
		s.metrics.login(false)
		s.notifier.Notify(ctx, failureNotice(err))
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = domain.ErrInvalidCredentials
		}
		s.metrics.login(false)
		s.notifier.Notify(ctx, failureNotice(err))
		return nil, err
	}

	s.session.set(user)
	s.metrics.login(true)
	s.notifier.Notify(ctx, info("Sessão restaurada", fmt.Sprintf("Bem-vindo de volta, %s!", user.Name)))
	slog.Info("session resumed", "user_id", user.ID)
	return user, nil
}

func (s *IdentityService) parseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrInvalidCredentials
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrInvalidCredentials
	}
	return sub, nil
}
