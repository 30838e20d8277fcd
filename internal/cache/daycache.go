package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"meetingroom/internal/domain"

	"github.com/redis/go-redis/v9"
)

const dayKeyPrefix = "bookings:room"

// DayCache stores the JSON-encoded booking list of one room on one UTC day.
type DayCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDayCache(client *redis.Client, ttl time.Duration) *DayCache {
	return &DayCache{client: client, ttl: ttl}
}

func dayKey(roomID int64, day time.Time) string {
	return fmt.Sprintf("%s:%d:date:%s", dayKeyPrefix, roomID, day.UTC().Format("2006-01-02"))
}

func (c *DayCache) Get(ctx context.Context, roomID int64, day time.Time) ([]domain.Booking, bool, error) {
	raw, err := c.client.Get(ctx, dayKey(roomID, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	bookings, err := decodeBookings(raw)
	if err != nil {
		return nil, false, err
	}
	return bookings, true, nil
}

func (c *DayCache) Set(ctx context.Context, roomID int64, day time.Time, bookings []domain.Booking) error {
	raw, err := encodeBookings(bookings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dayKey(roomID, day), raw, c.ttl).Err()
}

func (c *DayCache) Invalidate(ctx context.Context, roomID int64, day time.Time) error {
	return c.client.Del(ctx, dayKey(roomID, day)).Err()
}

// An empty day is stored as [] so it is distinguishable from a miss.
func encodeBookings(bookings []domain.Booking) ([]byte, error) {
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return json.Marshal(bookings)
}

func decodeBookings(raw []byte) ([]domain.Booking, error) {
	var out []domain.Booking
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode cached bookings: %w", err)
	}
	return out, nil
}
