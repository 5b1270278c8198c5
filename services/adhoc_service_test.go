package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streampair/bracket-system/models"
	"github.com/streampair/bracket-system/repositories"
	"github.com/streampair/bracket-system/services"
)

type mockAdHocRepo struct {
	create  func(ctx context.Context, b *models.AdHocBracket) error
	update  func(ctx context.Context, b *models.AdHocBracket) error
	getByID func(ctx context.Context, id int) (*models.AdHocBracket, error)
	list    func(ctx context.Context, platform *string) ([]models.AdHocBracket, error)
}

func (m *mockAdHocRepo) Create(ctx context.Context, b *models.AdHocBracket) error {
	return m.create(ctx, b)
}
func (m *mockAdHocRepo) Update(ctx context.Context, b *models.AdHocBracket) error {
	return m.update(ctx, b)
}
func (m *mockAdHocRepo) GetByID(ctx context.Context, id int) (*models.AdHocBracket, error) {
	return m.getByID(ctx, id)
}
func (m *mockAdHocRepo) List(ctx context.Context, platform *string) ([]models.AdHocBracket, error) {
	return m.list(ctx, platform)
}

var _ repositories.AdHocBracketRepository = (*mockAdHocRepo)(nil)

func TestAdHocService_Create_Validation(t *testing.T) {
	svc := services.NewAdHocBracketService(&mockAdHocRepo{})

	_, err := svc.Create(context.Background(), services.CreateAdHocBracketInput{MaxUsers: 4})
	assert.ErrorIs(t, err, services.ErrBracketNameRequired)

	_, err = svc.Create(context.Background(), services.CreateAdHocBracketInput{BracketName: "X"})
	assert.ErrorIs(t, err, services.ErrMaxUsersInvalid)
}

func TestAdHocService_Create_DefaultsParticipants(t *testing.T) {
	repo := &mockAdHocRepo{
		create: func(_ context.Context, b *models.AdHocBracket) error {
			b.ID = 11
			return nil
		},
	}
	svc := services.NewAdHocBracketService(repo)

	bracket, err := svc.Create(context.Background(), services.CreateAdHocBracketInput{
		BracketName: "Saturday Showdown",
		Platform:    "TikTok",
		MaxUsers:    8,
	})

	require.NoError(t, err)
	assert.Equal(t, 11, bracket.ID)
	assert.NotNil(t, bracket.Participants)
	assert.Empty(t, bracket.Participants)
}

func TestAdHocService_AddParticipant_RejectsWhenFull(t *testing.T) {
	stored := &models.AdHocBracket{
		ID:          3,
		BracketName: "Saturday Showdown",
		MaxUsers:    1,
		Participants: []models.AdHocParticipant{
			{Name: "Jordan"},
		},
	}
	repo := &mockAdHocRepo{
		getByID: func(_ context.Context, id int) (*models.AdHocBracket, error) {
			copied := *stored
			return &copied, nil
		},
	}
	svc := services.NewAdHocBracketService(repo)

	_, err := svc.AddParticipant(context.Background(), 3, models.AdHocParticipant{Name: "Casey"})
	assert.ErrorIs(t, err, services.ErrValidationFailed)
}

func TestAdHocService_AddParticipant_AppendsAndSaves(t *testing.T) {
	stored := &models.AdHocBracket{
		ID:           3,
		BracketName:  "Saturday Showdown",
		MaxUsers:     4,
		Participants: []models.AdHocParticipant{},
	}
	var saved *models.AdHocBracket
	repo := &mockAdHocRepo{
		getByID: func(_ context.Context, id int) (*models.AdHocBracket, error) {
			copied := *stored
			return &copied, nil
		},
		update: func(_ context.Context, b *models.AdHocBracket) error {
			saved = b
			return nil
		},
	}
	svc := services.NewAdHocBracketService(repo)

	bracket, err := svc.AddParticipant(context.Background(), 3, models.AdHocParticipant{
		Name:      "Casey",
		StartTime: "6:00 PM",
		StopTime:  "7:00 PM",
	})

	require.NoError(t, err)
	require.Len(t, bracket.Participants, 1)
	assert.Equal(t, "Casey", bracket.Participants[0].Name)
	require.NotNil(t, saved)
	assert.Len(t, saved.Participants, 1)
}

func TestAdHocService_GetByID_NotFound(t *testing.T) {
	repo := &mockAdHocRepo{
		getByID: func(_ context.Context, id int) (*models.AdHocBracket, error) {
			return nil, repositories.ErrAdHocBracketNotFound
		},
	}
	svc := services.NewAdHocBracketService(repo)

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, services.ErrAdHocBracketNotFound)
}
