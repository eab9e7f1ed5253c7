package services

import (
	"context"
	"errors"
	"sync"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"storefront-dashboard/models"
	"storefront-dashboard/repository"
)

// ViewMode is the UI mode derived from session and role data.
type ViewMode string

const (
	ViewUnauthenticated ViewMode = "unauthenticated"
	ViewShopper         ViewMode = "shopper"
	ViewAdmin           ViewMode = "admin"
)

// ErrNotAdmin is returned when a non-administrator requests the view toggle.
var ErrNotAdmin = errors.New("view toggle is only available to administrators")

// SessionService owns the in-memory session and the derived view mode, backed
// by a SessionRepository so the identity survives restarts.
type SessionService struct {
	repo   repository.SessionRepository
	policy AuthorizationPolicy
	log    *zap.Logger

	mu      sync.Mutex
	current *models.Session
	mode    ViewMode
}

func NewSessionService(repo repository.SessionRepository, policy AuthorizationPolicy, log *zap.Logger) *SessionService {
	return &SessionService{
		repo:   repo,
		policy: policy,
		log:    log,
		mode:   ViewUnauthenticated,
	}
}

// Restore loads the persisted session at startup, if any, and derives the
// default view mode from it.
func (s *SessionService) Restore(ctx context.Context) error {
	session, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if session == nil {
		s.current = nil
		s.mode = ViewUnauthenticated
		return nil
	}
	s.current = session
	s.mode = s.defaultMode(session)
	s.log.Info("session restored",
		zap.String("user_id", session.UserID),
		zap.String("mode", string(s.mode)),
	)
	return nil
}

// Establish persists a freshly authenticated session and derives its default
// view mode: admin iff the email is on the allow-list, else shopper.
func (s *SessionService) Establish(ctx context.Context, session *models.Session) (ViewMode, error) {
	if err := s.repo.Save(ctx, session); err != nil {
		return ViewUnauthenticated, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = session
	s.mode = s.defaultMode(session)
	return s.mode, nil
}

// Logout clears the session. The persisted cart for the user id is retained
// for the next login.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.mode = ViewUnauthenticated
	return nil
}

// ToggleView flips an administrator between the admin and shopper views
// without re-authenticating.
func (s *SessionService) ToggleView() (ViewMode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || !s.policy.IsAdmin(s.current.Email) {
		return s.mode, ErrNotAdmin
	}
	if s.mode == ViewAdmin {
		s.mode = ViewShopper
	} else {
		s.mode = ViewAdmin
	}
	return s.mode, nil
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *SessionService) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Current returns the active session, or nil.
func (s *SessionService) Current() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *SessionService) Mode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *SessionService) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.policy.IsAdmin(s.current.Email)
}

func (s *SessionService) defaultMode(session *models.Session) ViewMode {
	if s.policy.IsAdmin(session.Email) {
		return ViewAdmin
	}
	return ViewShopper
}

// SubjectFromToken pulls the subject claim out of a JWT without verifying
// it. Used only as a fallback user id when the login response omits one;
// token validity stays the backend's problem.
func SubjectFromToken(token string) string {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}
	return claims.Subject
}
