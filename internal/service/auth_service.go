package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/civic-kit/complaint-service/internal/auth"
	"github.com/civic-kit/complaint-service/internal/config"
	"github.com/civic-kit/complaint-service/internal/domain"
	"github.com/civic-kit/complaint-service/internal/events"
	"github.com/civic-kit/complaint-service/internal/repository"
	apperrors "github.com/civic-kit/complaint-service/pkg/util"
)

// AuthService coordinates registration, login and staff provisioning.
type AuthService struct {
	users           repository.UserRepository
	tokenMgr        *auth.TokenManager
	dispatcher      events.Dispatcher
	bcryptCost      int
	defaultPassword string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// SubadminInput describes a provisioning request. Name, Phone and Password
// are optional and fall back to departmental defaults.
type SubadminInput struct {
	Name       string
	Email      string
	Phone      string
	Department string
	Password   string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:           deps.UserRepo,
		tokenMgr:        auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher:      deps.Dispatcher,
		bcryptCost:      cfg.Auth.BcryptCost,
		defaultPassword: cfg.Auth.DefaultSubadminPassword,
	}
}

// RegisterCitizen creates a new citizen account and issues a token.
func (s *AuthService) RegisterCitizen(ctx context.Context, name, email, phone, password string) (*domain.User, string, time.Time, error) {
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// LoginCitizen authenticates a citizen account.
func (s *AuthService) LoginCitizen(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	return s.login(ctx, email, password, false)
}

// LoginStaff authenticates an admin or superadmin account; citizens are
// rejected even with valid credentials.
func (s *AuthService) LoginStaff(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	return s.login(ctx, email, password, true)
}

func (s *AuthService) login(ctx context.Context, email, password string, staffOnly bool) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if staffOnly && !user.Role.IsStaff() {
		return nil, "", time.Time{}, apperrors.NewForbidden("staff account required")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// RegisterSubadmin provisions a departmental admin account. Superadmin only.
func (s *AuthService) RegisterSubadmin(ctx context.Context, actor domain.Actor, input SubadminInput) (*domain.User, error) {
	if actor.Role != domain.RoleSuperadmin {
		return nil, apperrors.NewForbidden("superadmin role required")
	}
	if input.Email == "" || input.Department == "" {
		return nil, apperrors.NewValidationError("email and department are required", nil)
	}
	dept, ok := domain.ParseDepartment(input.Department)
	if !ok || dept == domain.DepartmentUnknown {
		return nil, apperrors.NewValidationError("unknown department", map[string]any{"department": input.Department})
	}
	if err := s.ensureEmailFree(ctx, input.Email); err != nil {
		return nil, err
	}

	name := input.Name
	if name == "" {
		name = fmt.Sprintf("%s Admin", titleCase(string(dept)))
	}
	phone := input.Phone
	if phone == "" {
		phone = "0000000000"
	}
	password := input.Password
	if password == "" {
		password = s.defaultPassword
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	subadmin := &domain.User{
		Name:         name,
		Email:        input.Email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Department:   &dept,
	}
	if err := s.users.Create(ctx, subadmin); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:  events.EventSubadminProvisioned,
		Actor: events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.SubadminProvisionedPayload{
			Email:      subadmin.Email,
			Department: dept,
		},
	})
	return subadmin, nil
}

// SeedSuperadmin creates the configured superadmin account if no account
// with that email exists yet. Safe to call on every startup.
func (s *AuthService) SeedSuperadmin(ctx context.Context, cfg config.SeedConfig) (*domain.User, error) {
	if cfg.SuperadminEmail == "" || cfg.SuperadminPassword == "" {
		return nil, nil
	}
	existing, err := s.users.GetByEmail(ctx, cfg.SuperadminEmail)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(cfg.SuperadminPassword, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	superadmin := &domain.User{
		Name:         cfg.SuperadminName,
		Email:        cfg.SuperadminEmail,
		Phone:        cfg.SuperadminPhone,
		PasswordHash: hash,
		Role:         domain.RoleSuperadmin,
	}
	if err := s.users.Create(ctx, superadmin); err != nil {
		return nil, apperrors.MapError(err)
	}
	return superadmin, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) ensureEmailFree(ctx context.Context, email string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *AuthService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
