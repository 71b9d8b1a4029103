package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOverrideService(store *fakeStore) *OverrideService {
	return NewOverrideService(fakeRooms{store}, fakeOverrides{store})
}

func TestBlockRoomInclusiveRange(t *testing.T) {
	store := seededStore()
	svc := newTestOverrideService(store)
	ctx := context.Background()

	count, err := svc.BlockRoom(ctx, 2, date(2024, time.February, 1), date(2024, time.February, 4), "maintenance")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Equal(t, 1, store.overrideCalls, "the whole range must land in one batch write")

	rows, err := svc.ForRoom(ctx, 2, date(2024, time.February, 1), date(2024, time.February, 28))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	seen := map[string]bool{}
	for _, row := range rows {
		assert.True(t, row.IsBlocked)
		assert.Equal(t, "maintenance", row.Reason)
		seen[row.Date.Format("2006-01-02")] = true
	}
	for _, day := range []string{"2024-02-01", "2024-02-02", "2024-02-03", "2024-02-04"} {
		assert.True(t, seen[day], "missing override row for %s", day)
	}
}

func TestBlockRoomSingleDay(t *testing.T) {
	svc := newTestOverrideService(seededStore())

	count, err := svc.BlockRoom(context.Background(), 1, date(2024, time.February, 10), date(2024, time.February, 10), "private event")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBlockRoomValidation(t *testing.T) {
	svc := newTestOverrideService(seededStore())

	_, err := svc.BlockRoom(context.Background(), 1, date(2024, time.February, 4), date(2024, time.February, 1), "backwards")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.BlockRoom(context.Background(), 99, date(2024, time.February, 1), date(2024, time.February, 4), "no such room")
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestUnblockRoomLeavesPriceOnlyRows(t *testing.T) {
	store := seededStore()
	svc := newTestOverrideService(store)
	ctx := context.Background()

	_, err := svc.BlockRoom(ctx, 1, date(2024, time.February, 1), date(2024, time.February, 3), "maintenance")
	require.NoError(t, err)
	require.NoError(t, svc.SetSpecialPrice(ctx, 1, date(2024, time.February, 10), 688))

	removed, err := svc.UnblockRoom(ctx, 1, date(2024, time.February, 1), date(2024, time.February, 28))
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	rows, err := svc.ForRoom(ctx, 1, date(2024, time.February, 1), date(2024, time.February, 28))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsBlocked)
	require.NotNil(t, rows[0].PriceOverride)
	assert.Equal(t, 688.0, *rows[0].PriceOverride)
}

func TestSetSpecialPriceKeepsBlockFlag(t *testing.T) {
	store := seededStore()
	svc := newTestOverrideService(store)
	ctx := context.Background()

	_, err := svc.BlockRoom(ctx, 1, date(2024, time.February, 5), date(2024, time.February, 5), "maintenance")
	require.NoError(t, err)
	require.NoError(t, svc.SetSpecialPrice(ctx, 1, date(2024, time.February, 5), 520))

	rows, err := svc.ForRoom(ctx, 1, date(2024, time.February, 5), date(2024, time.February, 5))
	require.NoError(t, err)
	require.Len(t, rows, 1, "price and block on the same day must share one row")
	assert.True(t, rows[0].IsBlocked)
	require.NotNil(t, rows[0].PriceOverride)
	assert.Equal(t, 520.0, *rows[0].PriceOverride)
}

func TestBlockRoomPreservesExistingPrice(t *testing.T) {
	store := seededStore()
	svc := newTestOverrideService(store)
	ctx := context.Background()

	require.NoError(t, svc.SetSpecialPrice(ctx, 1, date(2024, time.February, 5), 520))
	_, err := svc.BlockRoom(ctx, 1, date(2024, time.February, 4), date(2024, time.February, 6), "maintenance")
	require.NoError(t, err)

	rows, err := svc.ForRoom(ctx, 1, date(2024, time.February, 4), date(2024, time.February, 6))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.True(t, row.IsBlocked)
		if row.Date.Equal(date(2024, time.February, 5)) {
			require.NotNil(t, row.PriceOverride)
			assert.Equal(t, 520.0, *row.PriceOverride)
		}
	}
}

func TestSetSpecialPriceValidation(t *testing.T) {
	svc := newTestOverrideService(seededStore())

	err := svc.SetSpecialPrice(context.Background(), 1, date(2024, time.February, 5), -1)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}
