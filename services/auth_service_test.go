package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/streampair/bracket-system/models"
	"github.com/streampair/bracket-system/repositories"
	"github.com/streampair/bracket-system/services"
)

type mockUserRepo struct {
	create            func(ctx context.Context, user *models.User) error
	getByID           func(ctx context.Context, id int) (*models.User, error)
	getByEmail        func(ctx context.Context, email string) (*models.User, error)
	listByDisplayName func(ctx context.Context, displayName string) ([]models.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) ListByDisplayName(ctx context.Context, displayName string) ([]models.User, error) {
	if m.listByDisplayName != nil {
		return m.listByDisplayName(ctx, displayName)
	}
	return nil, nil
}

var _ repositories.UserRepository = (*mockUserRepo)(nil)

func TestAuthService_Register_HashesAndStripsPassword(t *testing.T) {
	var stored *models.User
	repo := &mockUserRepo{
		create: func(_ context.Context, user *models.User) error {
			user.ID = 1
			copied := *user
			stored = &copied
			return nil
		},
	}
	svc := services.NewAuthService(repo)

	user, err := svc.Register(context.Background(), services.RegisterInput{
		DisplayName: "Jordan",
		Email:       "jordan@example.com",
		Password:    "correct horse",
	})

	require.NoError(t, err)
	assert.Equal(t, models.RoleCreator, user.Role)
	assert.Empty(t, user.PasswordHash, "hash must not leak back to the caller")
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")))
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := services.NewAuthService(&mockUserRepo{})

	_, err := svc.Register(context.Background(), services.RegisterInput{Password: "long enough"})
	assert.ErrorIs(t, err, services.ErrDisplayNameRequired)

	_, err = svc.Register(context.Background(), services.RegisterInput{DisplayName: "Jordan", Password: "short"})
	assert.ErrorIs(t, err, services.ErrPasswordTooShort)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	repo := &mockUserRepo{
		create: func(_ context.Context, _ *models.User) error {
			return repositories.ErrUserEmailConflict
		},
	}
	svc := services.NewAuthService(repo)

	_, err := svc.Register(context.Background(), services.RegisterInput{
		DisplayName: "Jordan",
		Email:       "jordan@example.com",
		Password:    "correct horse",
	})

	assert.ErrorIs(t, err, services.ErrAuthEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockUserRepo{
		getByEmail: func(_ context.Context, email string) (*models.User, error) {
			if email != "jordan@example.com" {
				return nil, repositories.ErrUserNotFound
			}
			return &models.User{ID: 1, DisplayName: "Jordan", Email: email, PasswordHash: string(hash)}, nil
		},
	}
	svc := services.NewAuthService(repo)

	user, err := svc.Login(context.Background(), services.LoginInput{Email: "jordan@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Login(context.Background(), services.LoginInput{Email: "jordan@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrAuthInvalidCredentials)

	_, err = svc.Login(context.Background(), services.LoginInput{Email: "nobody@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, services.ErrAuthInvalidCredentials)
}
