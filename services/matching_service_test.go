package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streampair/bracket-system/models"
	"github.com/streampair/bracket-system/repositories"
	"github.com/streampair/bracket-system/services"
)

func namedSlot(creator1, creator2 string) models.Slot {
	slot := models.NewSlot(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))
	slot.Creator1.Name = creator1
	slot.Creator2.Name = creator2
	return slot
}

// scanFixture gives two brackets that both contain a slot naming "Jordan",
// one on each side of the pairing.
func scanFixture() []models.FillInBracket {
	return []models.FillInBracket{
		{
			ID:          1,
			BracketName: "Friday Night Fill-Ins",
			Slots: []models.Slot{
				namedSlot("Jordan", "Casey"),
				namedSlot("Riley", "Morgan"),
			},
		},
		{
			ID:          2,
			BracketName: "Weekend Warmups",
			Slots: []models.Slot{
				namedSlot("Quinn", "Jordan"),
			},
		},
	}
}

func TestMatchingService_SlotsInvolving_FindsBothSides(t *testing.T) {
	repo := &mockFillInRepo{
		listAll: func(_ context.Context, _ repositories.ListFillInBracketsFilter) ([]models.FillInBracket, error) {
			return scanFixture(), nil
		},
	}
	svc := services.NewMatchingService(repo)

	involvements, err := svc.SlotsInvolving(context.Background(), "Jordan")

	require.NoError(t, err)
	require.Len(t, involvements, 2)
	assert.Equal(t, 1, involvements[0].BracketID)
	assert.Equal(t, "Friday Night Fill-Ins", involvements[0].BracketName)
	assert.Equal(t, "Jordan", involvements[0].Slot.Creator1.Name)
	assert.Equal(t, 2, involvements[1].BracketID)
	assert.Equal(t, "Jordan", involvements[1].Slot.Creator2.Name)
}

// Matching is exact and case-sensitive. Neither a lowercased name nor a name
// with stray whitespace finds anything.
func TestMatchingService_SlotsInvolving_CaseSensitiveExact(t *testing.T) {
	repo := &mockFillInRepo{
		listAll: func(_ context.Context, _ repositories.ListFillInBracketsFilter) ([]models.FillInBracket, error) {
			return scanFixture(), nil
		},
	}
	svc := services.NewMatchingService(repo)

	for _, name := range []string{"jordan", "JORDAN", " Jordan", "Jordan "} {
		involvements, err := svc.SlotsInvolving(context.Background(), name)
		require.NoError(t, err)
		assert.Empty(t, involvements, "query %q should not match", name)
	}
}

func TestMatchingService_SlotsInvolving_NoMatchesIsEmptyNotNil(t *testing.T) {
	repo := &mockFillInRepo{
		listAll: func(_ context.Context, _ repositories.ListFillInBracketsFilter) ([]models.FillInBracket, error) {
			return scanFixture(), nil
		},
	}
	svc := services.NewMatchingService(repo)

	involvements, err := svc.SlotsInvolving(context.Background(), "Nobody")

	require.NoError(t, err)
	assert.NotNil(t, involvements)
	assert.Empty(t, involvements)
}

func TestMatchingService_BracketsCreatedBy(t *testing.T) {
	var askedName string
	repo := &mockFillInRepo{
		listByCreatorName: func(_ context.Context, displayName string) ([]models.FillInBracket, error) {
			askedName = displayName
			return []models.FillInBracket{{ID: 1, BracketName: "Friday Night Fill-Ins"}}, nil
		},
	}
	svc := services.NewMatchingService(repo)

	created, err := svc.BracketsCreatedBy(context.Background(), "Jordan")

	require.NoError(t, err)
	assert.Equal(t, "Jordan", askedName)
	require.Len(t, created, 1)
	assert.Equal(t, 1, created[0].ID)
}

func TestMatchingService_History_CombinesBothViews(t *testing.T) {
	repo := &mockFillInRepo{
		listByCreatorName: func(_ context.Context, _ string) ([]models.FillInBracket, error) {
			return []models.FillInBracket{{ID: 3, BracketName: "Jordan's Bracket"}}, nil
		},
		listAll: func(_ context.Context, _ repositories.ListFillInBracketsFilter) ([]models.FillInBracket, error) {
			return scanFixture(), nil
		},
	}
	svc := services.NewMatchingService(repo)

	history, err := svc.History(context.Background(), "Jordan")

	require.NoError(t, err)
	require.Len(t, history.CreatedBrackets, 1)
	assert.Equal(t, 3, history.CreatedBrackets[0].ID)
	assert.Len(t, history.InvolvedSlots, 2)
}

func TestMatchingService_History_PropagatesScanError(t *testing.T) {
	scanErr := errors.New("db down")
	repo := &mockFillInRepo{
		listByCreatorName: func(_ context.Context, _ string) ([]models.FillInBracket, error) {
			return nil, nil
		},
		listAll: func(_ context.Context, _ repositories.ListFillInBracketsFilter) ([]models.FillInBracket, error) {
			return nil, scanErr
		},
	}
	svc := services.NewMatchingService(repo)

	_, err := svc.History(context.Background(), "Jordan")

	assert.ErrorIs(t, err, scanErr)
}
