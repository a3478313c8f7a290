package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
	"github.com/ratt/validator/internal/testutil"
	"github.com/ratt/validator/internal/validator/engine"
)

// Concurrent scans race on the version check; every credit must be deducted
// exactly once no matter how the commits interleave.
func TestValidatorUseCase_ConcurrentScans(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := testutil.NewMemoryCardStore()
	store.Seed(&cardsDomain.Card{
		UID:     "04A1B2C3",
		Status:  cardsDomain.StatusValid,
		Credits: 5,
		Version: 1,
	})

	// Zero cooldown so every accepted scan pays; a generous attempt budget so
	// no scan gives up while the others are committing.
	useCase := NewValidatorUseCase(store, 0, 64, logger)

	const scans = 12
	results := make([]*ScanResult, scans)
	errs := make([]error, scans)

	var wg sync.WaitGroup
	for i := 0; i < scans; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = useCase.Scan(ctx, "04A1B2C3")
		}(i)
	}
	wg.Wait()

	var accepted, denied int
	for i := 0; i < scans; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		switch results[i].Outcome {
		case engine.OutcomeValid:
			accepted++
		case engine.OutcomeInsufficientCredits, engine.OutcomeInvalid:
			denied++
		default:
			t.Fatalf("unexpected outcome %q", results[i].Outcome)
		}
	}

	assert.Equal(t, 5, accepted, "each credit pays for exactly one trip")
	assert.Equal(t, scans-5, denied)

	final, err := store.Get(ctx, "04A1B2C3")
	require.NoError(t, err)
	assert.Equal(t, 0, final.Credits)
	assert.Equal(t, cardsDomain.StatusInvalid, final.Status)
}
