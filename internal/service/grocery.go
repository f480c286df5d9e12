package service

import (
	"context"
	"errors"
	"sync"

	"github.com/mgdevhub/gym-meals/internal/model"
	"github.com/mgdevhub/gym-meals/internal/repository"
	"github.com/mgdevhub/gym-meals/pkg/logger"
	"go.uber.org/zap"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// GroceryService keeps the per-device shopping list. Merging recipe
// ingredients deduplicates by ingredient id, so sending the same recipe
// twice adds nothing. Storage failures are swallowed like the daily log.
type GroceryService struct {
	store KVStore

	mu    sync.Mutex
	cache map[string][]model.GroceryItem
}

func NewGroceryService(store KVStore) *GroceryService {
	return &GroceryService{
		store: store,
		cache: make(map[string][]model.GroceryItem),
	}
}

func (s *GroceryService) List(ctx context.Context, deviceID string) []model.GroceryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.listLocked(ctx, deviceID))
}

func (s *GroceryService) AddItem(ctx context.Context, deviceID string, item model.GroceryItem) []model.GroceryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.listLocked(ctx, deviceID)
	item.ID = uuid.NewString()
	list = append(list, item)
	s.cache[deviceID] = list
	s.persistLocked(ctx, deviceID, list)

	return cloneItems(list)
}

// MergeItems appends only the items whose id is not already on the list
// and reports how many were new.
func (s *GroceryService) MergeItems(ctx context.Context, deviceID string, items []model.GroceryItem) (int, []model.GroceryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.listLocked(ctx, deviceID)
	existing := make(map[string]struct{}, len(list))
	for _, it := range list {
		existing[it.ID] = struct{}{}
	}

	added := 0
	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		if _, ok := existing[it.ID]; ok {
			continue
		}
		existing[it.ID] = struct{}{}
		list = append(list, it)
		added++
	}

	if added > 0 {
		s.cache[deviceID] = list
		s.persistLocked(ctx, deviceID, list)
	}

	return added, cloneItems(list)
}

func (s *GroceryService) RemoveItem(ctx context.Context, deviceID, itemID string) []model.GroceryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.listLocked(ctx, deviceID)
	out := list[:0]
	for _, it := range list {
		if it.ID != itemID {
			out = append(out, it)
		}
	}

	if len(out) != len(list) {
		s.cache[deviceID] = out
		s.persistLocked(ctx, deviceID, out)
	}

	return cloneItems(out)
}

func (s *GroceryService) Clear(ctx context.Context, deviceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[deviceID] = []model.GroceryItem{}
	if err := s.store.Remove(ctx, groceryListKey(deviceID)); err != nil {
		logger.Logger().Warn("grocery list clear failed",
			zap.String("device_id", deviceID), zap.Error(err))
	}
}

func (s *GroceryService) listLocked(ctx context.Context, deviceID string) []model.GroceryItem {
	if list, ok := s.cache[deviceID]; ok {
		return list
	}

	list := []model.GroceryItem{}
	raw, err := s.store.Get(ctx, groceryListKey(deviceID))
	switch {
	case err == nil:
		var stored []model.GroceryItem
		if jsonErr := json.Unmarshal([]byte(raw), &stored); jsonErr != nil {
			logger.Logger().Warn("discarding corrupt grocery list",
				zap.String("device_id", deviceID), zap.Error(jsonErr))
		} else if stored != nil {
			list = stored
		}
	case errors.Is(err, repository.ErrNotFound):
	default:
		logger.Logger().Warn("grocery list read failed, continuing in memory",
			zap.String("device_id", deviceID), zap.Error(err))
	}

	s.cache[deviceID] = list
	return list
}

func (s *GroceryService) persistLocked(ctx context.Context, deviceID string, list []model.GroceryItem) {
	raw, err := json.Marshal(list)
	if err != nil {
		logger.Logger().Warn("failed to encode grocery list",
			zap.String("device_id", deviceID), zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, groceryListKey(deviceID), string(raw)); err != nil {
		logger.Logger().Warn("grocery list write failed, keeping in-memory state",
			zap.String("device_id", deviceID), zap.Error(err))
	}
}

func cloneItems(items []model.GroceryItem) []model.GroceryItem {
	out := make([]model.GroceryItem, len(items))
	copy(out, items)
	return out
}
