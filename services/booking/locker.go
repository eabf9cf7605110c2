package booking

import (
	"context"
	"sync"
)

// TripLocker serializes reserve, release and status changes on one trip.
// Different trips never contend.
type TripLocker interface {
	// Lock blocks until the trip's lock is held or ctx is done. The returned
	// function releases the lock and must be called exactly once.
	Lock(ctx context.Context, tripID string) (unlock func(), err error)
}

type tripLock struct {
	sem  chan struct{}
	refs int
}

// LocalTripLocker is an in-process TripLocker. Entries are dropped once no
// caller holds or waits on them.
type LocalTripLocker struct {
	mu    sync.Mutex
	locks map[string]*tripLock
}

func NewLocalTripLocker() *LocalTripLocker {
	return &LocalTripLocker{locks: make(map[string]*tripLock)}
}

func (l *LocalTripLocker) acquireRef(tripID string) *tripLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	tl, ok := l.locks[tripID]
	if !ok {
		tl = &tripLock{sem: make(chan struct{}, 1)}
		l.locks[tripID] = tl
	}
	tl.refs++
	return tl
}

func (l *LocalTripLocker) releaseRef(tripID string, tl *tripLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tl.refs--
	if tl.refs == 0 {
		delete(l.locks, tripID)
	}
}

func (l *LocalTripLocker) Lock(ctx context.Context, tripID string) (func(), error) {
	tl := l.acquireRef(tripID)

	select {
	case tl.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseRef(tripID, tl)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-tl.sem
			l.releaseRef(tripID, tl)
		})
	}, nil
}

// size reports how many trips currently have a lock entry.
func (l *LocalTripLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
