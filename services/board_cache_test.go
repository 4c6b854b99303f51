package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/rental-backoffice/cleaning"
	"github.com/yeremiapane/rental-backoffice/models"
)

func TestRedisBoardCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := NewRedisBoardCache(client, 15*time.Second)
	ctx := context.Background()

	_, ok, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	board := cleaning.BuildBoard(
		[]models.Booking{{ID: "b1", RoomName: strPtr("Haven 1"), CheckOutDate: "2024-06-01", CheckOutTime: "10:00"}},
		[]models.Employee{{ID: "c1", FirstName: "Ana", Role: "Cleaner"}},
		now,
	)
	require.NoError(t, cache.Save(ctx, board))

	got, ok, err := cache.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, got.Next)
	assert.Equal(t, "b1", got.Next.ID)
	assert.Equal(t, cleaning.StatusUnassigned, got.Bookings[0].Cleaning.Status)
	assert.Equal(t, cleaning.Available, got.Availability["c1"].Status)
	assert.True(t, now.Equal(got.RefreshedAt))

	mr.FastForward(16 * time.Second)
	_, ok, err = cache.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
