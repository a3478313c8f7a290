package repository

import (
	"context"
	"database/sql"
	"time"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
	"github.com/ratt/validator/internal/database"
	apperrors "github.com/ratt/validator/internal/errors"
)

// MySQLCardRepository implements card persistence for MySQL databases.
type MySQLCardRepository struct {
	db *sql.DB
}

// NewMySQLCardRepository creates a new MySQL card repository instance.
func NewMySQLCardRepository(db *sql.DB) *MySQLCardRepository {
	return &MySQLCardRepository{db: db}
}

// Get retrieves a card record by its UID.
func (m *MySQLCardRepository) Get(ctx context.Context, uid string) (*cardsDomain.Card, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT uid, status, credits, expiration_date, last_scan_at, name, version, created_at, updated_at
			  FROM cards
			  WHERE uid = ?`

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
func (m *MySQLCardRepository) Create(ctx context.Context, card *cardsDomain.Card) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT IGNORE INTO cards (uid, status, credits, expiration_date, last_scan_at, name, version, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

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

// CommitIfUnchanged performs the compare-and-swap write against the stored
// version. See the PostgreSQL implementation for the contract.
func (m *MySQLCardRepository) CommitIfUnchanged(
	ctx context.Context,
	card *cardsDomain.Card,
	expectedVersion uint64,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE cards
			  SET status = ?, credits = ?, expiration_date = ?, last_scan_at = ?,
				  name = ?, version = ?, updated_at = ?
			  WHERE uid = ? AND version = ?`

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
		var currentVersion uint64
		err := querier.QueryRowContext(ctx, `SELECT version FROM cards WHERE uid = ?`, card.UID).
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
func (m *MySQLCardRepository) Delete(ctx context.Context, uid string) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM cards WHERE uid = ?`, uid)
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

// List retrieves cards ordered by UID with pagination.
func (m *MySQLCardRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*cardsDomain.Card, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT uid, status, credits, expiration_date, last_scan_at, name, version, created_at, updated_at
			  FROM cards
			  ORDER BY uid
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
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
