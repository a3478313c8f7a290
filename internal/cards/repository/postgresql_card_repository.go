package repository

import (
	"context"
	"database/sql"
	"time"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
	"github.com/ratt/validator/internal/database"
	apperrors "github.com/ratt/validator/internal/errors"
)

// PostgreSQLCardRepository implements card persistence for PostgreSQL databases.
type PostgreSQLCardRepository struct {
	db *sql.DB
}

// NewPostgreSQLCardRepository creates a new PostgreSQL card repository instance.
func NewPostgreSQLCardRepository(db *sql.DB) *PostgreSQLCardRepository {
	return &PostgreSQLCardRepository{db: db}
}

// Get retrieves a card record by its UID.
func (p *PostgreSQLCardRepository) Get(ctx context.Context, uid string) (*cardsDomain.Card, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT uid, status, credits, expiration_date, last_scan_at, name, version, created_at, updated_at
			  FROM cards
			  WHERE uid = $1`

	var card cardsDomain.Card
	err := querier.QueryRowContext(ctx, query, uid).Scan(
		&card.UID,
		&card.Status,
		&card.Credits,
		&card.ExpirationDate,
		&card.LastScanAt,
		&card.Name,
		&card.Version,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, cardsDomain.ErrCardNotFound
		}
		return nil, classifyStorageErr(err, "failed to get card")
	}

	return &card, nil
}

// Create inserts a new card record. Returns ErrCardAlreadyExists when the UID
// is already registered.
func (p *PostgreSQLCardRepository) Create(ctx context.Context, card *cardsDomain.Card) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO cards (uid, status, credits, expiration_date, last_scan_at, name, version, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  ON CONFLICT (uid) DO NOTHING`

	result, err := querier.ExecContext(
		ctx,
		query,
		card.UID,
		card.Status,
		card.Credits,
		card.ExpirationDate,
		card.LastScanAt,
		card.Name,
		card.Version,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		return classifyStorageErr(err, "failed to create card")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return classifyStorageErr(err, "failed to create card")
	}
	if rows == 0 {
		return cardsDomain.ErrCardAlreadyExists
	}

	return nil
}

// CommitIfUnchanged performs the compare-and-swap write: the full record is
// replaced only if the stored version still equals expectedVersion. On
// success the stored and in-memory versions become expectedVersion+1. On a
// version mismatch it returns ErrConflict and the caller must re-read.
func (p *PostgreSQLCardRepository) CommitIfUnchanged(
	ctx context.Context,
	card *cardsDomain.Card,
	expectedVersion uint64,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE cards
			  SET status = $1, credits = $2, expiration_date = $3, last_scan_at = $4,
				  name = $5, version = $6, updated_at = $7
			  WHERE uid = $8 AND version = $9`

	updatedAt := time.Now().UTC()
	result, err := querier.ExecContext(
		ctx,
		query,
		card.Status,
		card.Credits,
		card.ExpirationDate,
		card.LastScanAt,
		card.Name,
		expectedVersion+1,
		updatedAt,
		card.UID,
		expectedVersion,
	)
	if err != nil {
		return classifyStorageErr(err, "failed to commit card")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return classifyStorageErr(err, "failed to commit card")
	}
	if rows == 0 {
		// The version check failed: either the record is gone or another
		// writer won the race. Distinguish the two for the caller.
		var currentVersion uint64
		err := querier.QueryRowContext(ctx, `SELECT version FROM cards WHERE uid = $1`, card.UID).
			Scan(&currentVersion)
		if err == sql.ErrNoRows {
			return cardsDomain.ErrCardNotFound
		}
		if err != nil {
			return classifyStorageErr(err, "failed to read card version after conflict")
		}
		return apperrors.Wrap(apperrors.ErrConflict, "card version mismatch")
	}

	card.Version = expectedVersion + 1
	card.UpdatedAt = updatedAt
	return nil
}

// Delete removes a card record by its UID.
func (p *PostgreSQLCardRepository) Delete(ctx context.Context, uid string) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM cards WHERE uid = $1`, uid)
	if err != nil {
		return classifyStorageErr(err, "failed to delete card")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return classifyStorageErr(err, "failed to delete card")
	}
	if rows == 0 {
		return cardsDomain.ErrCardNotFound
	}

	return nil
}

// List retrieves cards ordered by UID with pagination. Not on the scan hot path.
func (p *PostgreSQLCardRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*cardsDomain.Card, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT uid, status, credits, expiration_date, last_scan_at, name, version, created_at, updated_at
			  FROM cards
			  ORDER BY uid
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, classifyStorageErr(err, "failed to list cards")
	}
	defer rows.Close()

	var cards []*cardsDomain.Card
	for rows.Next() {
		var card cardsDomain.Card
		err := rows.Scan(
			&card.UID,
			&card.Status,
			&card.Credits,
			&card.ExpirationDate,
			&card.LastScanAt,
			&card.Name,
			&card.Version,
			&card.CreatedAt,
			&card.UpdatedAt,
		)
		if err != nil {
			return nil, classifyStorageErr(err, "failed to scan card row")
		}
		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStorageErr(err, "failed to list cards")
	}

	return cards, nil
}
