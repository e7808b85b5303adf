package keeper

import (
	"context"
	"sort"
	"sync"

	"github.com/paw-chain/stableswap/x/stableswap/types"
)

// MemStore is an in-process PoolStore guarded by a single mutex, giving
// every operation the read-modify-write atomicity the engine contract
// requires. It is the store used by the daemon and by tests; a chain or
// database embedding replaces it behind the same interface.
type MemStore struct {
	mu     sync.Mutex
	pools  map[uint64]types.Pool
	nextID uint64
}

var _ types.PoolStore = (*MemStore)(nil)

// NewMemStore creates an empty in-memory pool store.
func NewMemStore() *MemStore {
	return &MemStore{
		pools:  make(map[uint64]types.Pool),
		nextID: 1,
	}
}

// AppendPool stores a new pool and assigns its id.
func (s *MemStore) AppendPool(_ context.Context, pool types.Pool) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool.Id = s.nextID
	s.nextID++
	s.pools[pool.Id] = pool
	return pool.Id, nil
}

// GetPool returns the pool with the given id.
func (s *MemStore) GetPool(_ context.Context, poolID uint64) (types.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, ok := s.pools[poolID]
	if !ok {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	return pool, nil
}

// SetPool overwrites an existing pool.
func (s *MemStore) SetPool(_ context.Context, pool types.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pools[pool.Id]; !ok {
		return types.ErrPoolNotFound.Wrapf("pool %d", pool.Id)
	}
	s.pools[pool.Id] = pool
	return nil
}

// ListPools returns all pools ordered by id.
func (s *MemStore) ListPools(_ context.Context) ([]types.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pools := make([]types.Pool, 0, len(s.pools))
	for _, pool := range s.pools {
		pools = append(pools, pool)
	}
	sort.Slice(pools, func(i, j int) bool { return pools[i].Id < pools[j].Id })
	return pools, nil
}
