package watchlist

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"go.uber.org/zap"

	"coinScope/internal/model"
	"coinScope/internal/storage"
)

// StorageKey is the KV key the watchlist is persisted under.
const StorageKey = "watchlist"

// Store is the persisted set of watched asset ids, kept in insertion order.
//
// Every mutation writes the whole set to the backing KV store. Write failures
// are logged and otherwise ignored: the in-memory set stays authoritative and
// the next mutation writes it again.
type Store struct {
	mu     sync.RWMutex
	ids    []model.AssetID
	kv     storage.KV
	logger *zap.Logger
}

// New creates an empty store. A nil kv keeps the watchlist in memory only.
func New(kv storage.KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger}
}

// Load rehydrates the set from the KV store. A missing key, a read error or
// an unparseable value leaves the set empty.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = nil
	if s.kv == nil {
		return
	}

	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Warn("load watchlist", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	var stored []string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("parse watchlist", zap.Error(err))
		return
	}

	seen := make(map[model.AssetID]struct{}, len(stored))
	for _, item := range stored {
		id := model.AssetID(item)
		if !ValidID(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	s.logger.Debug("watchlist loaded", zap.Int("count", len(s.ids)))
}

// Toggle adds id if absent or removes it if present, and reports whether id
// is in the watchlist afterwards. Blank ids are ignored.
func (s *Store) Toggle(ctx context.Context, id model.AssetID) bool {
	if !ValidID(id) {
		s.logger.Warn("ignore blank watchlist id")
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	present := false
	if idx := s.indexOf(id); idx >= 0 {
		s.ids = append(s.ids[:idx:idx], s.ids[idx+1:]...)
	} else {
		s.ids = append(s.ids, id)
		present = true
	}
	s.persist(ctx)
	return present
}

// Remove deletes id. Removing an absent id changes nothing but still
// persists the current set.
func (s *Store) Remove(ctx context.Context, id model.AssetID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(id); idx >= 0 {
		s.ids = append(s.ids[:idx:idx], s.ids[idx+1:]...)
	}
	s.persist(ctx)
}

// IDs returns the watched ids in insertion order.
func (s *Store) IDs() []model.AssetID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.AssetID(nil), s.ids...)
}

func (s *Store) Contains(id model.AssetID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Snapshot returns an immutable copy of the current set.
func (s *Store) Snapshot() Snapshot {
	return newSnapshot(s.IDs())
}

func (s *Store) indexOf(id model.AssetID) int {
	for i, existing := range s.ids {
		if existing == id {
			return i
		}
	}
	return -1
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) {
	if s.kv == nil {
		return
	}
	out := make([]string, len(s.ids))
	for i, id := range s.ids {
		out[i] = id.String()
	}
	raw, err := json.Marshal(out)
	if err != nil {
		s.logger.Warn("marshal watchlist", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, StorageKey, string(raw)); err != nil {
		s.logger.Warn("persist watchlist", zap.Error(err), zap.Int("count", len(out)))
	}
}

// ValidID reports whether id can be stored. Blank and whitespace-only ids
// are dropped on load, so they are never written either.
func ValidID(id model.AssetID) bool {
	return strings.TrimSpace(id.String()) != ""
}
