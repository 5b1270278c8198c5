package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/streampair/bracket-system/models"
	"github.com/streampair/bracket-system/repositories"
)

type CreateAdHocBracketInput struct {
	Title          string                    `json:"title"`
	BracketName    string                    `json:"bracket_name"`
	BracketCreator string                    `json:"bracket_creator"`
	Platform       string                    `json:"platform"`
	StartTime      string                    `json:"start_time"`
	StopTime       string                    `json:"stop_time"`
	Timezone       string                    `json:"timezone"`
	BracketStyle   string                    `json:"bracket_style"`
	MaxUsers       int                       `json:"max_users"`
	Participants   []models.AdHocParticipant `json:"participants"`
}

// AdHocBracketService manages the older free-form bracket aggregate. It
// never touches fill-in brackets; the two shapes are kept apart on purpose.
type AdHocBracketService interface {
	Create(ctx context.Context, input CreateAdHocBracketInput) (*models.AdHocBracket, error)
	GetByID(ctx context.Context, id int) (*models.AdHocBracket, error)
	List(ctx context.Context, platform *string) ([]models.AdHocBracket, error)
	AddParticipant(ctx context.Context, id int, participant models.AdHocParticipant) (*models.AdHocBracket, error)
}

type adHocBracketService struct {
	repo repositories.AdHocBracketRepository
}

func NewAdHocBracketService(repo repositories.AdHocBracketRepository) AdHocBracketService {
	return &adHocBracketService{repo: repo}
}

func (s *adHocBracketService) Create(ctx context.Context, input CreateAdHocBracketInput) (*models.AdHocBracket, error) {
	if strings.TrimSpace(input.BracketName) == "" {
		return nil, ErrBracketNameRequired
	}
	if input.MaxUsers <= 0 {
		return nil, ErrMaxUsersInvalid
	}

	bracket := &models.AdHocBracket{
		Title:          input.Title,
		BracketName:    input.BracketName,
		BracketCreator: input.BracketCreator,
		Platform:       input.Platform,
		StartTime:      input.StartTime,
		StopTime:       input.StopTime,
		Timezone:       input.Timezone,
		BracketStyle:   input.BracketStyle,
		MaxUsers:       input.MaxUsers,
		Participants:   input.Participants,
	}
	if bracket.Participants == nil {
		bracket.Participants = []models.AdHocParticipant{}
	}

	if err := s.repo.Create(ctx, bracket); err != nil {
		return nil, fmt.Errorf("failed to create ad hoc bracket: %w", err)
	}
	return bracket, nil
}

func (s *adHocBracketService) GetByID(ctx context.Context, id int) (*models.AdHocBracket, error) {
	bracket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAdHocBracketNotFound) {
			return nil, ErrAdHocBracketNotFound
		}
		return nil, err
	}
	return bracket, nil
}

func (s *adHocBracketService) List(ctx context.Context, platform *string) ([]models.AdHocBracket, error) {
	list, err := s.repo.List(ctx, platform)
	if err != nil {
		return nil, fmt.Errorf("failed to list ad hoc brackets: %w", err)
	}
	return list, nil
}

func (s *adHocBracketService) AddParticipant(ctx context.Context, id int, participant models.AdHocParticipant) (*models.AdHocBracket, error) {
	bracket, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(bracket.Participants) >= bracket.MaxUsers {
		return nil, fmt.Errorf("%w: bracket %d is full", ErrValidationFailed, id)
	}
	bracket.Participants = append(bracket.Participants, participant)
	if err := s.repo.Update(ctx, bracket); err != nil {
		return nil, fmt.Errorf("failed to save ad hoc bracket %d: %w", id, err)
	}
	return bracket, nil
}
