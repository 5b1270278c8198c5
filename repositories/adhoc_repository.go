package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/streampair/bracket-system/models"
)

var ErrAdHocBracketNotFound = errors.New("ad hoc bracket not found")

// AdHocBracketRepository persists the older free-form bracket aggregate.
// It is deliberately separate from FillInBracketRepository: the two bracket
// shapes are independent bounded contexts and are never reconciled.
type AdHocBracketRepository interface {
	Create(ctx context.Context, bracket *models.AdHocBracket) error
	Update(ctx context.Context, bracket *models.AdHocBracket) error
	GetByID(ctx context.Context, id int) (*models.AdHocBracket, error)
	List(ctx context.Context, platform *string) ([]models.AdHocBracket, error)
}

type postgresAdHocBracketRepository struct {
	db SQLExecutor
}

func NewPostgresAdHocBracketRepository(db SQLExecutor) AdHocBracketRepository {
	return &postgresAdHocBracketRepository{db: db}
}

func (r *postgresAdHocBracketRepository) Create(ctx context.Context, b *models.AdHocBracket) error {
	participantsJSON, err := marshalParticipants(b.Participants)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO brackets (
			title, bracket_name, bracket_creator, platform,
			start_time, stop_time, timezone, bracket_style, max_users, participants
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		b.Title, b.BracketName, b.BracketCreator, b.Platform,
		b.StartTime, b.StopTime, b.Timezone, b.BracketStyle, b.MaxUsers, participantsJSON,
	).Scan(&b.ID, &b.CreatedAt)
}

func (r *postgresAdHocBracketRepository) Update(ctx context.Context, b *models.AdHocBracket) error {
	participantsJSON, err := marshalParticipants(b.Participants)
	if err != nil {
		return err
	}

	query := `
		UPDATE brackets SET
			title = $1, bracket_name = $2, bracket_creator = $3, platform = $4,
			start_time = $5, stop_time = $6, timezone = $7, bracket_style = $8,
			max_users = $9, participants = $10
		WHERE id = $11`

	result, err := r.db.ExecContext(ctx, query,
		b.Title, b.BracketName, b.BracketCreator, b.Platform,
		b.StartTime, b.StopTime, b.Timezone, b.BracketStyle, b.MaxUsers, participantsJSON,
		b.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAdHocBracketNotFound)
}

func (r *postgresAdHocBracketRepository) GetByID(ctx context.Context, id int) (*models.AdHocBracket, error) {
	query := `
		SELECT id, title, bracket_name, bracket_creator, platform,
		       start_time, stop_time, timezone, bracket_style, max_users, participants, created_at
		FROM brackets
		WHERE id = $1`

	b := &models.AdHocBracket{}
	var participantsJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.BracketName, &b.BracketCreator, &b.Platform,
		&b.StartTime, &b.StopTime, &b.Timezone, &b.BracketStyle, &b.MaxUsers,
		&participantsJSON, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdHocBracketNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(participantsJSON, &b.Participants); err != nil {
		return nil, fmt.Errorf("failed to decode participants for bracket %d: %w", b.ID, err)
	}
	if b.Participants == nil {
		b.Participants = []models.AdHocParticipant{}
	}
	return b, nil
}

func (r *postgresAdHocBracketRepository) List(ctx context.Context, platform *string) ([]models.AdHocBracket, error) {
	query := `
		SELECT id, title, bracket_name, bracket_creator, platform,
		       start_time, stop_time, timezone, bracket_style, max_users, participants, created_at
		FROM brackets`
	args := []interface{}{}
	if platform != nil {
		query += ` WHERE platform = $1`
		args = append(args, *platform)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brackets := make([]models.AdHocBracket, 0)
	for rows.Next() {
		var b models.AdHocBracket
		var participantsJSON []byte
		if scanErr := rows.Scan(
			&b.ID, &b.Title, &b.BracketName, &b.BracketCreator, &b.Platform,
			&b.StartTime, &b.StopTime, &b.Timezone, &b.BracketStyle, &b.MaxUsers,
			&participantsJSON, &b.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		// Undecodable participant lists degrade to an empty list instead of
		// failing the listing.
		if json.Unmarshal(participantsJSON, &b.Participants) != nil || b.Participants == nil {
			b.Participants = []models.AdHocParticipant{}
		}
		brackets = append(brackets, b)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return brackets, nil
}

func marshalParticipants(participants []models.AdHocParticipant) ([]byte, error) {
	if participants == nil {
		participants = []models.AdHocParticipant{}
	}
	data, err := json.Marshal(participants)
	if err != nil {
		return nil, fmt.Errorf("failed to encode participants: %w", err)
	}
	return data, nil
}
