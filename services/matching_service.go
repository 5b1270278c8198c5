package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/streampair/bracket-system/models"
	"github.com/streampair/bracket-system/repositories"
)

// SlotInvolvement is one slot a queried creator participates in, tagged with
// its owning bracket.
type SlotInvolvement struct {
	BracketID   int         `json:"bracket_id"`
	BracketName string      `json:"bracket_name"`
	Slot        models.Slot `json:"slot"`
}

// MatchingHistory is the combined participant-centric view backing the
// history and event screens.
type MatchingHistory struct {
	CreatedBrackets []models.FillInBracket `json:"created_brackets"`
	InvolvedSlots   []SlotInvolvement      `json:"involved_slots"`
}

// MatchingService answers "brackets I created" and "slots I participate in".
//
// Both queries match on free-text display name with case-sensitive exact
// equality, because slots only ever record names. Two accounts sharing a
// display name are indistinguishable here; a renamed account loses its
// history. That weakness is inherited from the recorded data and kept
// deliberately rather than silently switching to id-based matching.
type MatchingService interface {
	BracketsCreatedBy(ctx context.Context, displayName string) ([]models.FillInBracket, error)
	SlotsInvolving(ctx context.Context, displayName string) ([]SlotInvolvement, error)
	History(ctx context.Context, displayName string) (*MatchingHistory, error)
}

type matchingService struct {
	bracketRepo repositories.FillInBracketRepository
}

func NewMatchingService(bracketRepo repositories.FillInBracketRepository) MatchingService {
	return &matchingService{bracketRepo: bracketRepo}
}

func (s *matchingService) BracketsCreatedBy(ctx context.Context, displayName string) ([]models.FillInBracket, error) {
	list, err := s.bracketRepo.ListByCreatorName(ctx, displayName)
	if err != nil {
		return nil, fmt.Errorf("failed to list brackets created by %q: %w", displayName, err)
	}
	return list, nil
}

// SlotsInvolving scans every bracket and every slot. There is no index over
// creator names; the scan is O(total slots) and acceptable only at the small
// scale this system runs at.
func (s *matchingService) SlotsInvolving(ctx context.Context, displayName string) ([]SlotInvolvement, error) {
	all, err := s.bracketRepo.ListAll(ctx, repositories.ListFillInBracketsFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to scan brackets for slots involving %q: %w", displayName, err)
	}

	involvements := make([]SlotInvolvement, 0)
	for _, bracket := range all {
		for _, slot := range bracket.Slots {
			if slot.Involves(displayName) {
				involvements = append(involvements, SlotInvolvement{
					BracketID:   bracket.ID,
					BracketName: bracket.BracketName,
					Slot:        slot,
				})
			}
		}
	}
	return involvements, nil
}

// History loads both participant-centric views concurrently.
func (s *matchingService) History(ctx context.Context, displayName string) (*MatchingHistory, error) {
	history := &MatchingHistory{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		created, err := s.BracketsCreatedBy(gCtx, displayName)
		if err != nil {
			return err
		}
		history.CreatedBrackets = created
		return nil
	})

	g.Go(func() error {
		involved, err := s.SlotsInvolving(gCtx, displayName)
		if err != nil {
			return err
		}
		history.InvolvedSlots = involved
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return history, nil
}
