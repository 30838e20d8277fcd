package booking

import (
	"context"
	"sync"
)

// LocalRoomLocker hands out one mutual-exclusion slot per room id. Rooms are
// independent: holding room 1 never blocks room 2. Entries are dropped once no
// holder or waiter references them, so the map does not grow with every room
// ever booked.
type LocalRoomLocker struct {
	mu    sync.Mutex
	rooms map[int64]*roomSlot
}

type roomSlot struct {
	sem  chan struct{}
	refs int
}

func NewLocalRoomLocker() *LocalRoomLocker {
	return &LocalRoomLocker{rooms: make(map[int64]*roomSlot)}
}

// Lock blocks until roomID is free or ctx is done.
func (l *LocalRoomLocker) Lock(ctx context.Context, roomID int64) (func(), error) {
	slot := l.acquireRef(roomID)

	select {
	case slot.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseRef(roomID, slot)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-slot.sem
			l.releaseRef(roomID, slot)
		})
	}, nil
}

func (l *LocalRoomLocker) acquireRef(roomID int64) *roomSlot {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.rooms[roomID]
	if !ok {
		slot = &roomSlot{sem: make(chan struct{}, 1)}
		l.rooms[roomID] = slot
	}
	slot.refs++
	return slot
}

func (l *LocalRoomLocker) releaseRef(roomID int64, slot *roomSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.rooms, roomID)
	}
}

// tracked reports how many rooms currently have holders or waiters.
func (l *LocalRoomLocker) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.rooms)
}
