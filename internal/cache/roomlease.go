package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker matches booking.RoomLocker.
type Locker interface {
	Lock(ctx context.Context, roomID int64) (func(), error)
}

var releaseLease = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var extendLease = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RoomLease extends an in-process locker across instances. The local lock is
// taken first so only one goroutine per process polls Redis for a given room.
// The lease expires after ttl in case the holder dies; while held it is
// extended every ttl/3.
type RoomLease struct {
	local  Locker
	client *redis.Client
	ttl    time.Duration
	renew  time.Duration
	retry  time.Duration
	log    *slog.Logger
}

func NewRoomLease(local Locker, client *redis.Client, ttl time.Duration, log *slog.Logger) *RoomLease {
	renew := ttl / 3
	if renew < time.Millisecond {
		renew = time.Millisecond
	}
	return &RoomLease{
		local:  local,
		client: client,
		ttl:    ttl,
		renew:  renew,
		retry:  25 * time.Millisecond,
		log:    log,
	}
}

func leaseKey(roomID int64) string {
	return fmt.Sprintf("lock:room:%d", roomID)
}

func (l *RoomLease) Lock(ctx context.Context, roomID int64) (func(), error) {
	unlockLocal, err := l.local.Lock(ctx, roomID)
	if err != nil {
		return nil, err
	}

	key := leaseKey(roomID)
	token := uuid.NewString()
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			unlockLocal()
			return nil, fmt.Errorf("acquire room lease: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			unlockLocal()
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}

	stop := make(chan struct{})
	stopped := make(chan struct{})
	go l.keepAlive(roomID, key, token, stop, stopped)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-stopped

			// the request context may already be cancelled; release regardless
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseLease.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
				l.log.Warn("failed to release room lease", "room_id", roomID, "error", err)
			}
			unlockLocal()
		})
	}, nil
}

// keepAlive pushes the lease expiry forward until stop is closed or the lease
// is found to belong to someone else.
func (l *RoomLease) keepAlive(roomID int64, key, token string, stop <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(l.renew)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), l.renew)
		n, err := extendLease.Run(ctx, l.client, []string{key}, token, l.ttl.Milliseconds()).Int()
		cancel()
		switch {
		case err != nil:
			l.log.Warn("failed to extend room lease", "room_id", roomID, "error", err)
		case n == 0:
			l.log.Error("room lease lost while held", "room_id", roomID)
			return
		}
	}
}
