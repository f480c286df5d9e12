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

// DailyLogService keeps one daily food/workout record per device. The
// record always reflects "today": a stored log from an earlier date is
// replaced wholesale on load and the old data is discarded.
//
// Storage failures never propagate to callers. The in-memory cache keeps
// the session consistent; a lost write only costs state across restarts.
type DailyLogService struct {
	store KVStore
	clock Clock

	mu    sync.Mutex
	cache map[string]*model.DailyLog
}

func NewDailyLogService(store KVStore, clock Clock) *DailyLogService {
	return &DailyLogService{
		store: store,
		clock: clock,
		cache: make(map[string]*model.DailyLog),
	}
}

func (s *DailyLogService) Load(ctx context.Context, deviceID string) *model.DailyLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, deviceID).Clone()
}

func (s *DailyLogService) AddFood(ctx context.Context, deviceID string, entry model.FoodEntry) *model.DailyLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	dayLog := s.loadLocked(ctx, deviceID)
	entry.ID = uuid.NewString()
	dayLog.Eaten = append(dayLog.Eaten, entry)
	s.persistLocked(ctx, deviceID, dayLog)

	return dayLog.Clone()
}

func (s *DailyLogService) AddWorkout(ctx context.Context, deviceID string, minutes int) *model.DailyLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	dayLog := s.loadLocked(ctx, deviceID)
	dayLog.WorkoutDuration += minutes
	s.persistLocked(ctx, deviceID, dayLog)

	return dayLog.Clone()
}

func (s *DailyLogService) loadLocked(ctx context.Context, deviceID string) *model.DailyLog {
	log := logger.Logger()
	today := DayKey(s.clock.Now())

	if cached, ok := s.cache[deviceID]; ok && cached.Date == today {
		return cached
	}

	dayLog := model.NewDailyLog(today)

	raw, err := s.store.Get(ctx, dailyLogKey(deviceID))
	switch {
	case err == nil:
		var stored model.DailyLog
		if jsonErr := json.Unmarshal([]byte(raw), &stored); jsonErr != nil {
			log.Warn("discarding corrupt daily log",
				zap.String("device_id", deviceID), zap.Error(jsonErr))
		} else if stored.Date == today {
			if stored.Eaten == nil {
				stored.Eaten = []model.FoodEntry{}
			}
			dayLog = &stored
		} else {
			// new day: reset and persist immediately, old log is gone
			s.persistLocked(ctx, deviceID, dayLog)
		}
	case errors.Is(err, repository.ErrNotFound):
		// first launch for this device, start empty
	default:
		log.Warn("daily log read failed, continuing in memory",
			zap.String("device_id", deviceID), zap.Error(err))
	}

	s.cache[deviceID] = dayLog
	return dayLog
}

func (s *DailyLogService) persistLocked(ctx context.Context, deviceID string, dayLog *model.DailyLog) {
	raw, err := json.Marshal(dayLog)
	if err != nil {
		logger.Logger().Warn("failed to encode daily log",
			zap.String("device_id", deviceID), zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, dailyLogKey(deviceID), string(raw)); err != nil {
		logger.Logger().Warn("daily log write failed, keeping in-memory state",
			zap.String("device_id", deviceID), zap.Error(err))
	}
}
