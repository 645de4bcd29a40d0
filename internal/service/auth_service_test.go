package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civic-kit/complaint-service/internal/config"
	"github.com/civic-kit/complaint-service/internal/domain"
	"github.com/civic-kit/complaint-service/internal/service"
)

type fakeUserStore struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, stored := range f.byEmail {
		if stored.ID == id {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func testAuthConfig() config.Config {
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 30
	cfg.Auth.BcryptCost = 4
	cfg.Auth.DefaultSubadminPassword = "admin123"
	return cfg
}

func newAuthService(store *fakeUserStore) *service.AuthService {
	return service.NewAuthService(testAuthConfig(), service.AuthDependencies{UserRepo: store})
}

func superadminActor() domain.Actor {
	return domain.Actor{ID: "root", Role: domain.RoleSuperadmin}
}

func TestRegisterAndLoginCitizen(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)
	ctx := context.Background()

	user, token, exp, err := svc.RegisterCitizen(ctx, "Asha", "asha@example.com", "9876543210", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Nil(t, user.Department)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	loggedIn, token, _, err := svc.LoginCitizen(ctx, "asha@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestRegisterCitizenDuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeUserStore())
	ctx := context.Background()

	_, _, _, err := svc.RegisterCitizen(ctx, "Asha", "asha@example.com", "9876543210", "s3cret")
	require.NoError(t, err)

	_, _, _, err = svc.RegisterCitizen(ctx, "Imposter", "asha@example.com", "1111111111", "other")
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newAuthService(newFakeUserStore())
	ctx := context.Background()

	_, _, _, err := svc.RegisterCitizen(ctx, "Asha", "asha@example.com", "9876543210", "s3cret")
	require.NoError(t, err)

	_, _, _, err = svc.LoginCitizen(ctx, "asha@example.com", "wrong")
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))

	_, _, _, err = svc.LoginCitizen(ctx, "nobody@example.com", "s3cret")
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}

func TestLoginStaffRejectsCitizens(t *testing.T) {
	svc := newAuthService(newFakeUserStore())
	ctx := context.Background()

	_, _, _, err := svc.RegisterCitizen(ctx, "Asha", "asha@example.com", "9876543210", "s3cret")
	require.NoError(t, err)

	_, _, _, err = svc.LoginStaff(ctx, "asha@example.com", "s3cret")
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestRegisterSubadmin(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)
	ctx := context.Background()

	subadmin, err := svc.RegisterSubadmin(ctx, superadminActor(), service.SubadminInput{
		Email:      "elec.admin@example.com",
		Department: "electricity",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, subadmin.Role)
	require.NotNil(t, subadmin.Department)
	assert.Equal(t, domain.DepartmentElectricity, *subadmin.Department)

	// Defaults fill the omitted fields.
	assert.Equal(t, "Electricity Admin", subadmin.Name)
	assert.Equal(t, "0000000000", subadmin.Phone)

	// The default password works for staff login and the token carries the
	// department scope.
	loggedIn, token, _, err := svc.LoginStaff(ctx, "elec.admin@example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, subadmin.ID, loggedIn.ID)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	require.NotNil(t, claims.Department)
	assert.Equal(t, domain.DepartmentElectricity, *claims.Department)
}

func TestRegisterSubadminAuthorization(t *testing.T) {
	svc := newAuthService(newFakeUserStore())
	ctx := context.Background()
	input := service.SubadminInput{Email: "x@example.com", Department: "water"}

	dept := domain.DepartmentWater
	admin := domain.Actor{ID: "a1", Role: domain.RoleAdmin, Department: &dept}
	_, err := svc.RegisterSubadmin(ctx, admin, input)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))

	citizen := domain.Actor{ID: "u1", Role: domain.RoleUser}
	_, err = svc.RegisterSubadmin(ctx, citizen, input)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestRegisterSubadminValidation(t *testing.T) {
	svc := newAuthService(newFakeUserStore())
	ctx := context.Background()

	_, err := svc.RegisterSubadmin(ctx, superadminActor(), service.SubadminInput{Department: "water"})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	_, err = svc.RegisterSubadmin(ctx, superadminActor(), service.SubadminInput{Email: "x@example.com"})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	_, err = svc.RegisterSubadmin(ctx, superadminActor(), service.SubadminInput{Email: "x@example.com", Department: "sanitation"})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	// The unknown fallback is not a provisionable department.
	_, err = svc.RegisterSubadmin(ctx, superadminActor(), service.SubadminInput{Email: "x@example.com", Department: "unknown"})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestRegisterSubadminDuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeUserStore())
	ctx := context.Background()
	input := service.SubadminInput{Email: "dup@example.com", Department: "roads"}

	_, err := svc.RegisterSubadmin(ctx, superadminActor(), input)
	require.NoError(t, err)

	_, err = svc.RegisterSubadmin(ctx, superadminActor(), input)
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

// conflictingUserStore simulates losing a duplicate-registration race: the
// email reads as free but the insert hits the unique constraint.
type conflictingUserStore struct {
	fakeUserStore
}

func (f *conflictingUserStore) Create(context.Context, *domain.User) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
}

func (f *conflictingUserStore) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func TestRegisterRaceSurfacesConflict(t *testing.T) {
	store := &conflictingUserStore{}
	svc := service.NewAuthService(testAuthConfig(), service.AuthDependencies{UserRepo: store})
	ctx := context.Background()

	_, _, _, err := svc.RegisterCitizen(ctx, "Asha", "asha@example.com", "9876543210", "s3cret")
	assert.Equal(t, "CONFLICT", domainCode(t, err))

	_, err = svc.RegisterSubadmin(ctx, superadminActor(), service.SubadminInput{
		Email:      "dup@example.com",
		Department: "water",
	})
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestSeedSuperadminIdempotent(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)
	ctx := context.Background()

	seed := config.SeedConfig{
		SuperadminName:     "Super Admin",
		SuperadminEmail:    "root@example.com",
		SuperadminPhone:    "0000000000",
		SuperadminPassword: "rootpass",
	}

	first, err := svc.SeedSuperadmin(ctx, seed)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, domain.RoleSuperadmin, first.Role)
	assert.Nil(t, first.Department)

	second, err := svc.SeedSuperadmin(ctx, seed)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)

	_, _, _, err = svc.LoginStaff(ctx, "root@example.com", "rootpass")
	require.NoError(t, err)
}

func TestSeedSuperadminSkipsWhenUnconfigured(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)

	seeded, err := svc.SeedSuperadmin(context.Background(), config.SeedConfig{})
	require.NoError(t, err)
	assert.Nil(t, seeded)
	assert.Empty(t, store.byEmail)
}
