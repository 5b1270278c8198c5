package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/streampair/bracket-system/brackets"
	"github.com/streampair/bracket-system/models"
	"github.com/streampair/bracket-system/repositories"
	"github.com/streampair/bracket-system/storage"
)

// Sides of a slot pairing, as supplied by the confirmation endpoint.
const (
	CreatorSide1 = 1
	CreatorSide2 = 2
)

type CreateFillInBracketInput struct {
	BracketName  string `json:"bracket_name"`
	PlatformName string `json:"platform_name"`
	IsPublic     bool   `json:"is_public"`
}

type UpdateFillInBracketDetailsInput struct {
	BracketName  *string `json:"bracket_name,omitempty"`
	PlatformName *string `json:"platform_name,omitempty"`
	IsPublic     *bool   `json:"is_public,omitempty"`
}

type SlotCreatorInput struct {
	Name            string `json:"name"`
	NetworkOrAgency string `json:"network_or_agency"`
	Category        string `json:"category"`
	DiamondAverage  string `json:"diamond_average"`
	Confirmed       bool   `json:"confirmed"`
}

type SlotInput struct {
	StartDateTime time.Time        `json:"start_date_time"`
	Creator1      SlotCreatorInput `json:"creator1"`
	Creator2      SlotCreatorInput `json:"creator2"`
	Status        string           `json:"status"`
	Notes         string           `json:"notes"`
	Link          string           `json:"link"`
}

// BracketService orchestrates creation and editing of fill-in brackets and
// their slot collections. Every successful save broadcasts the fresh bracket
// snapshot to the bracket's hub room; a broadcast reaches only subscribers
// connected at that moment, and concurrent editors are last-write-wins.
type BracketService interface {
	CreateBracket(ctx context.Context, creatorUserID *int, input CreateFillInBracketInput) (*models.FillInBracket, error)
	GetBracket(ctx context.Context, id int) (*models.FillInBracket, error)
	ListBrackets(ctx context.Context, filter repositories.ListFillInBracketsFilter) ([]models.FillInBracket, error)
	UpdateBracketDetails(ctx context.Context, id int, input UpdateFillInBracketDetailsInput) (*models.FillInBracket, error)

	AddSlot(ctx context.Context, bracketID int, input SlotInput) (*models.FillInBracket, error)
	UpdateSlot(ctx context.Context, bracketID, index int, input SlotInput) (*models.FillInBracket, error)
	RemoveSlot(ctx context.Context, bracketID, index int) (*models.FillInBracket, error)
	SetSlotStatus(ctx context.Context, bracketID, index int, status models.SlotStatus) (*models.FillInBracket, error)
	SetCreatorConfirmed(ctx context.Context, bracketID, index, side int, confirmed bool) (*models.FillInBracket, error)

	ExportCSV(ctx context.Context, bracketID int) (string, error)
	ExportCSVToStorage(ctx context.Context, bracketID int) (string, error)
	ImportCSV(ctx context.Context, bracketID int, text string) (*models.FillInBracket, error)
	TemplateCSV() string
}

type bracketService struct {
	bracketRepo repositories.FillInBracketRepository
	uploader    storage.FileUploader
	hub         *brackets.Hub
	logger      *slog.Logger
}

func NewBracketService(
	bracketRepo repositories.FillInBracketRepository,
	uploader storage.FileUploader,
	hub *brackets.Hub,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		bracketRepo: bracketRepo,
		uploader:    uploader,
		hub:         hub,
		logger:      logger,
	}
}

func (s *bracketService) CreateBracket(ctx context.Context, creatorUserID *int, input CreateFillInBracketInput) (*models.FillInBracket, error) {
	if strings.TrimSpace(input.BracketName) == "" {
		return nil, ErrBracketNameRequired
	}
	if strings.TrimSpace(input.PlatformName) == "" {
		return nil, ErrPlatformNameRequired
	}

	bracket := &models.FillInBracket{
		BracketName:     input.BracketName,
		PlatformName:    input.PlatformName,
		Slots:           []models.Slot{},
		CreatedByUserID: creatorUserID,
		IsPublic:        input.IsPublic,
	}

	if err := s.bracketRepo.Create(ctx, bracket); err != nil {
		return nil, fmt.Errorf("failed to create fill-in bracket: %w", err)
	}
	return bracket, nil
}

func (s *bracketService) GetBracket(ctx context.Context, id int) (*models.FillInBracket, error) {
	bracket, err := s.bracketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrFillInBracketNotFound) {
			return nil, ErrFillInBracketNotFound
		}
		return nil, err
	}
	return bracket, nil
}

func (s *bracketService) ListBrackets(ctx context.Context, filter repositories.ListFillInBracketsFilter) ([]models.FillInBracket, error) {
	list, err := s.bracketRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list fill-in brackets: %w", err)
	}
	return list, nil
}

func (s *bracketService) UpdateBracketDetails(ctx context.Context, id int, input UpdateFillInBracketDetailsInput) (*models.FillInBracket, error) {
	return s.mutate(ctx, id, func(b *models.FillInBracket) error {
		if input.BracketName != nil {
			if strings.TrimSpace(*input.BracketName) == "" {
				return ErrBracketNameRequired
			}
			b.BracketName = *input.BracketName
		}
		if input.PlatformName != nil {
			if strings.TrimSpace(*input.PlatformName) == "" {
				return ErrPlatformNameRequired
			}
			b.PlatformName = *input.PlatformName
		}
		if input.IsPublic != nil {
			b.IsPublic = *input.IsPublic
		}
		return nil
	})
}

func (s *bracketService) AddSlot(ctx context.Context, bracketID int, input SlotInput) (*models.FillInBracket, error) {
	status, err := validateSlotStatus(input.Status)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, bracketID, func(b *models.FillInBracket) error {
		slot := models.NewSlot(input.StartDateTime)
		applySlotInput(&slot, input, status)
		b.Slots = append(b.Slots, slot)
		return nil
	})
}

func (s *bracketService) UpdateSlot(ctx context.Context, bracketID, index int, input SlotInput) (*models.FillInBracket, error) {
	status, err := validateSlotStatus(input.Status)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, bracketID, func(b *models.FillInBracket) error {
		if index < 0 || index >= len(b.Slots) {
			return ErrSlotIndexOutOfRange
		}
		slot := &b.Slots[index]
		slot.StartDateTime = input.StartDateTime
		applySlotInput(slot, input, status)
		return nil
	})
}

func (s *bracketService) RemoveSlot(ctx context.Context, bracketID, index int) (*models.FillInBracket, error) {
	return s.mutate(ctx, bracketID, func(b *models.FillInBracket) error {
		if index < 0 || index >= len(b.Slots) {
			return ErrSlotIndexOutOfRange
		}
		b.Slots = append(b.Slots[:index], b.Slots[index+1:]...)
		return nil
	})
}

// SetSlotStatus assigns the status directly. No transition is rejected, and
// the per-creator confirmed flags are not consulted: status and confirmation
// are independent fields.
func (s *bracketService) SetSlotStatus(ctx context.Context, bracketID, index int, status models.SlotStatus) (*models.FillInBracket, error) {
	if _, err := validateSlotStatus(string(status)); err != nil {
		return nil, err
	}
	return s.mutate(ctx, bracketID, func(b *models.FillInBracket) error {
		if index < 0 || index >= len(b.Slots) {
			return ErrSlotIndexOutOfRange
		}
		b.Slots[index].Status = status
		return nil
	})
}

// SetCreatorConfirmed flips one side's confirmed flag. Both flags being true
// does not promote the slot's status.
func (s *bracketService) SetCreatorConfirmed(ctx context.Context, bracketID, index, side int, confirmed bool) (*models.FillInBracket, error) {
	if side != CreatorSide1 && side != CreatorSide2 {
		return nil, ErrUnknownCreatorSide
	}
	return s.mutate(ctx, bracketID, func(b *models.FillInBracket) error {
		if index < 0 || index >= len(b.Slots) {
			return ErrSlotIndexOutOfRange
		}
		if side == CreatorSide1 {
			b.Slots[index].Creator1.Confirmed = confirmed
		} else {
			b.Slots[index].Creator2.Confirmed = confirmed
		}
		return nil
	})
}

func (s *bracketService) ExportCSV(ctx context.Context, bracketID int) (string, error) {
	bracket, err := s.GetBracket(ctx, bracketID)
	if err != nil {
		return "", err
	}
	return brackets.EncodeSlotsCSV(bracket.Slots), nil
}

// ExportCSVToStorage uploads the bracket's CSV export to the configured
// object store and returns its public URL, for sharing off-device.
func (s *bracketService) ExportCSVToStorage(ctx context.Context, bracketID int) (string, error) {
	if s.uploader == nil {
		return "", ErrExportUploaderMissing
	}
	csv, err := s.ExportCSV(ctx, bracketID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("exports/fill_in_bracket_%d_%d.csv", bracketID, time.Now().Unix())
	result, err := s.uploader.Upload(ctx, key, "text/csv", strings.NewReader(csv))
	if err != nil {
		return "", fmt.Errorf("failed to upload CSV export for bracket %d: %w", bracketID, err)
	}
	return result.Location, nil
}

// ImportCSV appends every decodable row to the bracket's slot list and saves
// once. The append-then-save is not protected against a concurrent editor
// saving an older slot list; whichever write lands last wins.
func (s *bracketService) ImportCSV(ctx context.Context, bracketID int, text string) (*models.FillInBracket, error) {
	imported := brackets.DecodeSlotsCSV(text, nil)
	bracket, err := s.mutate(ctx, bracketID, func(b *models.FillInBracket) error {
		b.Slots = append(b.Slots, imported...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "imported slots from CSV",
			slog.Int("bracket_id", bracketID), slog.Int("slot_count", len(imported)))
	}
	return bracket, nil
}

func (s *bracketService) TemplateCSV() string {
	return brackets.TemplateCSV()
}

// mutate is the single edit path: load, apply, full-document save, broadcast.
func (s *bracketService) mutate(ctx context.Context, bracketID int, apply func(*models.FillInBracket) error) (*models.FillInBracket, error) {
	bracket, err := s.GetBracket(ctx, bracketID)
	if err != nil {
		return nil, err
	}
	if err := apply(bracket); err != nil {
		return nil, err
	}
	if err := s.bracketRepo.Update(ctx, bracket); err != nil {
		if errors.Is(err, repositories.ErrFillInBracketNotFound) {
			return nil, ErrFillInBracketNotFound
		}
		return nil, fmt.Errorf("failed to save fill-in bracket %d: %w", bracketID, err)
	}
	s.broadcast(bracket)
	return bracket, nil
}

func (s *bracketService) broadcast(bracket *models.FillInBracket) {
	if s.hub == nil {
		return
	}
	room := brackets.FillInRoom(bracket.ID)
	s.hub.BroadcastToRoom(room, brackets.Message{
		Type:    brackets.MessageTypeFillInBracketUpdated,
		Payload: bracket,
		RoomID:  room,
	})
}

func applySlotInput(slot *models.Slot, input SlotInput, status models.SlotStatus) {
	slot.Creator1 = models.SlotCreator(input.Creator1)
	slot.Creator2 = models.SlotCreator(input.Creator2)
	slot.Status = status
	slot.Notes = input.Notes
	slot.Link = input.Link
}

// validateSlotStatus accepts the three known labels, treating an empty
// string as Pending. Unlike CSV decoding, an unknown label here is a caller
// error rather than a silent default.
func validateSlotStatus(raw string) (models.SlotStatus, error) {
	switch models.SlotStatus(raw) {
	case "", models.SlotStatusPending:
		return models.SlotStatusPending, nil
	case models.SlotStatusConfirmed:
		return models.SlotStatusConfirmed, nil
	case models.SlotStatusDeclined:
		return models.SlotStatusDeclined, nil
	default:
		return "", fmt.Errorf("%w: unknown slot status %q", ErrValidationFailed, raw)
	}
}
