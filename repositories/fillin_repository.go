package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
	"github.com/streampair/bracket-system/models"
)

var (
	ErrFillInBracketNotFound       = errors.New("fill-in bracket not found")
	ErrFillInBracketInvalidCreator = errors.New("invalid bracket creator reference")
)

type ListFillInBracketsFilter struct {
	PlatformName *string
	IsPublic     *bool
	Limit        int
	Offset       int
}

// FillInBracketRepository is the persistence boundary for fill-in bracket
// documents. All writes are full-document overwrites: the slot collection is
// rewritten as a whole, so editing one slot rewrites every slot. Concurrent
// writers are last-write-wins.
type FillInBracketRepository interface {
	Create(ctx context.Context, bracket *models.FillInBracket) error
	Update(ctx context.Context, bracket *models.FillInBracket) error
	GetByID(ctx context.Context, id int) (*models.FillInBracket, error)
	ListByPlatform(ctx context.Context, platformName string) ([]models.FillInBracket, error)
	ListByCreatorName(ctx context.Context, displayName string) ([]models.FillInBracket, error)
	ListAll(ctx context.Context, filter ListFillInBracketsFilter) ([]models.FillInBracket, error)
}

type postgresFillInBracketRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewPostgresFillInBracketRepository(db SQLExecutor, logger *slog.Logger) FillInBracketRepository {
	return &postgresFillInBracketRepository{db: db, logger: logger}
}

const fillInBracketColumns = `id, bracket_name, platform_name, slots, created_by_user_id, created_at, is_public`

func (r *postgresFillInBracketRepository) Create(ctx context.Context, b *models.FillInBracket) error {
	slotsJSON, err := marshalSlots(b.Slots)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO fill_in_brackets (bracket_name, platform_name, slots, created_by_user_id, is_public)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query,
		b.BracketName, b.PlatformName, slotsJSON, b.CreatedByUserID, b.IsPublic,
	).Scan(&b.ID, &b.CreatedAt)

	return r.handleFillInBracketError(err)
}

func (r *postgresFillInBracketRepository) Update(ctx context.Context, b *models.FillInBracket) error {
	slotsJSON, err := marshalSlots(b.Slots)
	if err != nil {
		return err
	}

	// Full overwrite: there is no partial-slot update primitive.
	query := `
		UPDATE fill_in_brackets SET
			bracket_name = $1,
			platform_name = $2,
			slots = $3,
			is_public = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		b.BracketName, b.PlatformName, slotsJSON, b.IsPublic, b.ID,
	)
	if err != nil {
		return r.handleFillInBracketError(err)
	}
	return checkAffectedRows(result, ErrFillInBracketNotFound)
}

func (r *postgresFillInBracketRepository) GetByID(ctx context.Context, id int) (*models.FillInBracket, error) {
	query := `SELECT ` + fillInBracketColumns + ` FROM fill_in_brackets WHERE id = $1`

	b, err := r.scanFillInBracket(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFillInBracketNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *postgresFillInBracketRepository) ListByPlatform(ctx context.Context, platformName string) ([]models.FillInBracket, error) {
	query := `
		SELECT ` + fillInBracketColumns + `
		FROM fill_in_brackets
		WHERE platform_name = $1
		ORDER BY created_at DESC`

	return r.queryFillInBrackets(ctx, query, platformName)
}

// ListByCreatorName resolves the creating account by display name. Display
// names are not unique, so two accounts sharing a name both contribute their
// brackets to the result.
func (r *postgresFillInBracketRepository) ListByCreatorName(ctx context.Context, displayName string) ([]models.FillInBracket, error) {
	query := `
		SELECT b.id, b.bracket_name, b.platform_name, b.slots, b.created_by_user_id, b.created_at, b.is_public
		FROM fill_in_brackets b
		JOIN users u ON b.created_by_user_id = u.id
		WHERE u.display_name = $1
		ORDER BY b.created_at DESC`

	return r.queryFillInBrackets(ctx, query, displayName)
}

func (r *postgresFillInBracketRepository) ListAll(ctx context.Context, filter ListFillInBracketsFilter) ([]models.FillInBracket, error) {
	query := `SELECT ` + fillInBracketColumns + ` FROM fill_in_brackets WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.PlatformName != nil {
		query += fmt.Sprintf(" AND platform_name = $%d", argID)
		args = append(args, *filter.PlatformName)
		argID++
	}
	if filter.IsPublic != nil {
		query += fmt.Sprintf(" AND is_public = $%d", argID)
		args = append(args, *filter.IsPublic)
		argID++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	return r.queryFillInBrackets(ctx, query, args...)
}

// queryFillInBrackets runs a multi-row query. A row whose slot collection
// fails to decode is skipped and logged rather than failing the whole scan,
// so aggregate views get best-effort partial results.
func (r *postgresFillInBracketRepository) queryFillInBrackets(ctx context.Context, query string, args ...interface{}) ([]models.FillInBracket, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brackets := make([]models.FillInBracket, 0)
	for rows.Next() {
		var b models.FillInBracket
		var slotsJSON []byte
		if scanErr := rows.Scan(
			&b.ID, &b.BracketName, &b.PlatformName, &slotsJSON,
			&b.CreatedByUserID, &b.CreatedAt, &b.IsPublic,
		); scanErr != nil {
			return nil, scanErr
		}
		if decodeErr := json.Unmarshal(slotsJSON, &b.Slots); decodeErr != nil {
			if r.logger != nil {
				r.logger.WarnContext(ctx, "skipping bracket with undecodable slots",
					slog.Int("bracket_id", b.ID), slog.Any("error", decodeErr))
			}
			continue
		}
		if b.Slots == nil {
			b.Slots = []models.Slot{}
		}
		brackets = append(brackets, b)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return brackets, nil
}

func (r *postgresFillInBracketRepository) scanFillInBracket(row *sql.Row) (*models.FillInBracket, error) {
	b := &models.FillInBracket{}
	var slotsJSON []byte
	err := row.Scan(
		&b.ID, &b.BracketName, &b.PlatformName, &slotsJSON,
		&b.CreatedByUserID, &b.CreatedAt, &b.IsPublic,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(slotsJSON, &b.Slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots for bracket %d: %w", b.ID, err)
	}
	if b.Slots == nil {
		b.Slots = []models.Slot{}
	}
	return b, nil
}

func marshalSlots(slots []models.Slot) ([]byte, error) {
	if slots == nil {
		slots = []models.Slot{}
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return nil, fmt.Errorf("failed to encode slots: %w", err)
	}
	return data, nil
}

func (r *postgresFillInBracketRepository) handleFillInBracketError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" && pqErr.Constraint == "fill_in_brackets_created_by_user_id_fkey" {
			return ErrFillInBracketInvalidCreator
		}
	}
	return err
}
