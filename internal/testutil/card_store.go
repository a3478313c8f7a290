package testutil

import (
	"context"
	"sort"
	"sync"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
	apperrors "github.com/ratt/validator/internal/errors"
)

// MemoryCardStore is an in-memory card repository with the same
// compare-and-swap semantics as the SQL and MongoDB backends. It exists for
// service-level tests that need real contention: goroutines racing on
// CommitIfUnchanged observe genuine version conflicts.
type MemoryCardStore struct {
	mu    sync.Mutex
	cards map[string]*cardsDomain.Card
}

// NewMemoryCardStore creates an empty in-memory card store.
func NewMemoryCardStore() *MemoryCardStore {
	return &MemoryCardStore{
		cards: make(map[string]*cardsDomain.Card),
	}
}

// Seed stores a card directly, bypassing the uniqueness check.
func (s *MemoryCardStore) Seed(card *cardsDomain.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[card.UID] = card.Clone()
}

// Get retrieves a card by UID.
func (s *MemoryCardStore) Get(ctx context.Context, uid string) (*cardsDomain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[uid]
	if !ok {
		return nil, cardsDomain.ErrCardNotFound
	}
	return card.Clone(), nil
}

// Create inserts a new card, failing when the UID is already registered.
func (s *MemoryCardStore) Create(ctx context.Context, card *cardsDomain.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[card.UID]; ok {
		return cardsDomain.ErrCardAlreadyExists
	}
	s.cards[card.UID] = card.Clone()
	return nil
}

// CommitIfUnchanged replaces the stored record only while its version still
// equals expectedVersion, bumping the version on success.
func (s *MemoryCardStore) CommitIfUnchanged(
	ctx context.Context,
	card *cardsDomain.Card,
	expectedVersion uint64,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.cards[card.UID]
	if !ok {
		return cardsDomain.ErrCardNotFound
	}
	if stored.Version != expectedVersion {
		return apperrors.Wrap(apperrors.ErrConflict, "card version mismatch")
	}

	updated := card.Clone()
	updated.Version = expectedVersion + 1
	s.cards[card.UID] = updated
	card.Version = updated.Version
	return nil
}

// Delete removes a card by UID.
func (s *MemoryCardStore) Delete(ctx context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[uid]; !ok {
		return cardsDomain.ErrCardNotFound
	}
	delete(s.cards, uid)
	return nil
}

// List returns cards ordered by UID with offset/limit pagination.
func (s *MemoryCardStore) List(ctx context.Context, offset, limit int) ([]*cardsDomain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uids := make([]string, 0, len(s.cards))
	for uid := range s.cards {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	cards := make([]*cardsDomain.Card, 0, limit)
	for i, uid := range uids {
		if i < offset {
			continue
		}
		if len(cards) == limit {
			break
		}
		cards = append(cards, s.cards[uid].Clone())
	}
	return cards, nil
}
