package ledger

import "sync"

// userLocks serializes trades per user inside this process. The
// database row locks are the real guarantee; these keep concurrent
// trades for one user from piling up on the same row lock.
type userLocks struct {
	locks map[int]*sync.Mutex // user id → mutex
	mu    sync.RWMutex        // protects the map itself
}

func newUserLocks() *userLocks {
	return &userLocks{
		locks: make(map[int]*sync.Mutex),
	}
}

// Lock locks the trade path for a specific user.
func (ul *userLocks) Lock(userID int) {
	ul.mu.Lock()
	if ul.locks[userID] == nil {
		ul.locks[userID] = &sync.Mutex{}
	}
	userMutex := ul.locks[userID]
	ul.mu.Unlock()

	userMutex.Lock()
}

// Unlock unlocks the trade path for a specific user.
func (ul *userLocks) Unlock(userID int) {
	ul.mu.RLock()
	userMutex := ul.locks[userID]
	ul.mu.RUnlock()

	if userMutex != nil {
		userMutex.Unlock()
	}
}
