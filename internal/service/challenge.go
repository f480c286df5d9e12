package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mgdevhub/gym-meals/internal/model"
	"github.com/mgdevhub/gym-meals/internal/repository"
	"github.com/mgdevhub/gym-meals/pkg/logger"
	"go.uber.org/zap"

	"github.com/goccy/go-json"
)

const oneDayMs = int64(24 * time.Hour / time.Millisecond)

// BriefingMessages are shown once per calendar day, indexed by the
// current challenge day and clamped at the last entry.
var BriefingMessages = []string{
	"Precision is power. Audit every gram of your fuel today.",
	"Your body is a machine. Don't fuel it like a lawnmower.",
	"Consistency is the only currency. Pay the price of discipline.",
	"Motion creates emotion. Execute the protocol now.",
}

// challengeState is the persisted challenge data for one device. The
// authorized day is always derived from startDate and the clock, never
// stored.
type challengeState struct {
	startDate    *int64 // epoch ms, nil = not started
	days         map[int]bool
	briefingSeen string // day key of the last acknowledged briefing
}

// ChallengeService runs the 22-day sequential challenge: anchor start
// date set when day 1 is first marked, elapsed days auto-completed on
// load, future days rejected, one briefing per calendar day.
type ChallengeService struct {
	store KVStore
	clock Clock

	mu    sync.Mutex
	cache map[string]*challengeState
}

func NewChallengeService(store KVStore, clock Clock) *ChallengeService {
	return &ChallengeService{
		store: store,
		clock: clock,
		cache: make(map[string]*challengeState),
	}
}

func (s *ChallengeService) Status(ctx context.Context, deviceID string) *model.ChallengeStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stateLocked(ctx, deviceID)
	return s.statusLocked(ctx, deviceID, st)
}

func (s *ChallengeService) ToggleDay(ctx context.Context, deviceID string, day int) (*model.ChallengeStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stateLocked(ctx, deviceID)

	if day < 1 || day > model.ChallengeLength {
		// out-of-range days are ignored, not an error
		return s.statusLocked(ctx, deviceID, st), nil
	}

	// first ever mark of day 1 anchors the challenge
	if st.startDate == nil && day == 1 {
		now := s.clock.Now().UnixMilli()
		st.startDate = &now
		if err := s.store.Set(ctx, challengeStartKey(deviceID), strconv.FormatInt(now, 10)); err != nil {
			logger.Logger().Warn("challenge start date write failed",
				zap.String("device_id", deviceID), zap.Error(err))
		}
	}

	if day > s.currentDay(st) {
		return nil, ErrDayNotAvailable
	}

	st.days[day] = !st.days[day]
	s.persistDaysLocked(ctx, deviceID, st)

	return s.statusLocked(ctx, deviceID, st), nil
}

func (s *ChallengeService) AcknowledgeBriefing(ctx context.Context, deviceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stateLocked(ctx, deviceID)
	today := DayKey(s.clock.Now())
	st.briefingSeen = today

	if err := s.store.Set(ctx, briefingSeenKey(deviceID), today); err != nil {
		logger.Logger().Warn("briefing acknowledgment write failed",
			zap.String("device_id", deviceID), zap.Error(err))
	}
}

// Reset clears the completion map and start date unconditionally and
// returns the challenge to the not-started state. The last briefing date
// is kept; the briefing gate is per calendar day, not per attempt.
func (s *ChallengeService) Reset(ctx context.Context, deviceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stateLocked(ctx, deviceID)
	st.startDate = nil
	st.days = make(map[int]bool)

	if err := s.store.Remove(ctx, challengeDaysKey(deviceID), challengeStartKey(deviceID)); err != nil {
		logger.Logger().Warn("challenge reset write failed",
			zap.String("device_id", deviceID), zap.Error(err))
	}
}

// statusLocked backfills elapsed days, computes the briefing gate and
// builds the derived status view.
func (s *ChallengeService) statusLocked(ctx context.Context, deviceID string, st *challengeState) *model.ChallengeStatus {
	day := s.currentDay(st)

	if st.startDate != nil {
		changed := false
		for d := 1; d < day && d <= model.ChallengeLength; d++ {
			if !st.days[d] {
				st.days[d] = true
				changed = true
			}
		}
		if changed {
			s.persistDaysLocked(ctx, deviceID, st)
		}
	}

	status := &model.ChallengeStatus{
		StartDate:  st.startDate,
		CurrentDay: day,
		Completion: make(map[int]bool, len(st.days)),
		Finished:   st.startDate != nil && day > model.ChallengeLength,
	}
	for d, done := range st.days {
		status.Completion[d] = done
		if done {
			status.CompletedCount++
		}
	}

	today := DayKey(s.clock.Now())
	if st.briefingSeen != today && day <= model.ChallengeLength {
		idx := day - 1
		if idx > len(BriefingMessages)-1 {
			idx = len(BriefingMessages) - 1
		}
		status.BriefingDue = true
		status.BriefingMessage = BriefingMessages[idx]
	}

	return status
}

func (s *ChallengeService) currentDay(st *challengeState) int {
	if st.startDate == nil {
		return 1
	}
	day := int((s.clock.Now().UnixMilli()-*st.startDate)/oneDayMs) + 1
	if day < 1 {
		return 1
	}
	return day
}

func (s *ChallengeService) stateLocked(ctx context.Context, deviceID string) *challengeState {
	if st, ok := s.cache[deviceID]; ok {
		return st
	}

	log := logger.Logger()
	st := &challengeState{days: make(map[int]bool)}

	raw, err := s.store.Get(ctx, challengeStartKey(deviceID))
	switch {
	case err == nil:
		if ms, parseErr := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); parseErr == nil {
			st.startDate = &ms
		} else {
			log.Warn("discarding corrupt challenge start date",
				zap.String("device_id", deviceID), zap.Error(parseErr))
		}
	case errors.Is(err, repository.ErrNotFound):
	default:
		log.Warn("challenge start date read failed",
			zap.String("device_id", deviceID), zap.Error(err))
	}

	raw, err = s.store.Get(ctx, challengeDaysKey(deviceID))
	switch {
	case err == nil:
		var days map[int]bool
		if jsonErr := json.Unmarshal([]byte(raw), &days); jsonErr == nil && days != nil {
			st.days = days
		} else {
			log.Warn("discarding corrupt challenge completion map",
				zap.String("device_id", deviceID), zap.Error(jsonErr))
		}
	case errors.Is(err, repository.ErrNotFound):
	default:
		log.Warn("challenge completion read failed",
			zap.String("device_id", deviceID), zap.Error(err))
	}

	if raw, err := s.store.Get(ctx, briefingSeenKey(deviceID)); err == nil {
		st.briefingSeen = raw
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Warn("briefing date read failed",
			zap.String("device_id", deviceID), zap.Error(err))
	}

	s.cache[deviceID] = st
	return st
}

func (s *ChallengeService) persistDaysLocked(ctx context.Context, deviceID string, st *challengeState) {
	raw, err := json.Marshal(st.days)
	if err != nil {
		logger.Logger().Warn("failed to encode challenge completion map",
			zap.String("device_id", deviceID), zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, challengeDaysKey(deviceID), string(raw)); err != nil {
		logger.Logger().Warn("challenge completion write failed, keeping in-memory state",
			zap.String("device_id", deviceID), zap.Error(err))
	}
}
