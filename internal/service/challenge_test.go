package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/mgdevhub/gym-meals/internal/model"
	"github.com/mgdevhub/gym-meals/internal/repository"
	"github.com/mgdevhub/gym-meals/internal/service/mocks"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testDevice = "device-1"

func challengeFixture(now time.Time) (*ChallengeService, *mocks.MockStore, *fakeClock) {
	store := &mocks.MockStore{}
	clock := &fakeClock{now: now}
	return NewChallengeService(store, clock), store, clock
}

func expectChallengeState(store *mocks.MockStore, startDate *int64, days map[int]bool, briefingSeen string) {
	if startDate != nil {
		store.On("Get", mock.Anything, challengeStartKey(testDevice)).
			Return(strconv.FormatInt(*startDate, 10), nil)
	} else {
		store.On("Get", mock.Anything, challengeStartKey(testDevice)).
			Return("", repository.ErrNotFound)
	}

	if days != nil {
		raw, _ := json.Marshal(days)
		store.On("Get", mock.Anything, challengeDaysKey(testDevice)).
			Return(string(raw), nil)
	} else {
		store.On("Get", mock.Anything, challengeDaysKey(testDevice)).
			Return("", repository.ErrNotFound)
	}

	if briefingSeen != "" {
		store.On("Get", mock.Anything, briefingSeenKey(testDevice)).
			Return(briefingSeen, nil)
	} else {
		store.On("Get", mock.Anything, briefingSeenKey(testDevice)).
			Return("", repository.ErrNotFound)
	}
}

func TestChallengeService_Backfill(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)
	svc, store, _ := challengeFixture(now)

	// anchored 4.5 days ago: the authorized day is 5
	start := now.Add(-4*24*time.Hour - 12*time.Hour).UnixMilli()
	expectChallengeState(store, &start, nil, "")

	var persisted string
	store.On("Set", mock.Anything, challengeDaysKey(testDevice), mock.Anything).
		Run(func(args mock.Arguments) { persisted = args.String(2) }).
		Return(nil).Once()

	status := svc.Status(context.Background(), testDevice)

	assert.Equal(t, 5, status.CurrentDay)
	for d := 1; d <= 4; d++ {
		assert.True(t, status.Completion[d], "day %d should be backfilled", d)
	}
	assert.False(t, status.Completion[5], "today must not be auto-completed")
	assert.Equal(t, 4, status.CompletedCount)
	assert.False(t, status.Finished)

	var persistedDays map[int]bool
	assert.NoError(t, json.Unmarshal([]byte(persisted), &persistedDays))
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true, 4: true}, persistedDays)

	// second load is idempotent: same map, no further writes
	again := svc.Status(context.Background(), testDevice)
	assert.Equal(t, status.Completion, again.Completion)
	store.AssertNumberOfCalls(t, "Set", 1)
}

func TestChallengeService_ConcreteScenario(t *testing.T) {
	// startDate = T, now = T + 2.5 days => authorized day 3
	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local)
	now := start.Add(2*24*time.Hour + 12*time.Hour)
	svc, store, _ := challengeFixture(now)

	startMs := start.UnixMilli()
	expectChallengeState(store, &startMs, nil, "")
	store.On("Set", mock.Anything, challengeDaysKey(testDevice), mock.Anything).Return(nil)

	status := svc.Status(context.Background(), testDevice)
	assert.Equal(t, 3, status.CurrentDay)
	assert.True(t, status.Completion[1])
	assert.True(t, status.Completion[2])
	assert.False(t, status.Completion[3])

	_, err := svc.ToggleDay(context.Background(), testDevice, 4)
	assert.ErrorIs(t, err, ErrDayNotAvailable)
}

func TestChallengeService_ToggleDay(t *testing.T) {
	tests := []struct {
		name        string
		daysAgo     time.Duration
		stored      map[int]bool
		day         int
		wantErr     error
		wantToggled *bool
	}{
		{
			name:    "future day rejected",
			daysAgo: 2*24*time.Hour + 12*time.Hour, // authorized day 3
			day:     5,
			wantErr: ErrDayNotAvailable,
		},
		{
			name:        "authorized day toggled on",
			daysAgo:     2*24*time.Hour + 12*time.Hour,
			day:         3,
			wantToggled: boolPtr(true),
		},
		{
			name:        "completed day toggled off",
			daysAgo:     2*24*time.Hour + 12*time.Hour,
			stored:      map[int]bool{1: true, 2: true, 3: true},
			day:         3,
			wantToggled: boolPtr(false),
		},
		{
			name:    "day beyond challenge length ignored",
			daysAgo: 30 * 24 * time.Hour,
			day:     23,
		},
		{
			name:    "day two without anchor rejected",
			daysAgo: 0, // no start date stored
			day:     2,
			wantErr: ErrDayNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)
			svc, store, _ := challengeFixture(now)

			if tt.daysAgo > 0 {
				start := now.Add(-tt.daysAgo).UnixMilli()
				expectChallengeState(store, &start, tt.stored, "")
			} else {
				expectChallengeState(store, nil, tt.stored, "")
			}
			store.On("Set", mock.Anything, challengeDaysKey(testDevice), mock.Anything).Return(nil)

			status, err := svc.ToggleDay(context.Background(), testDevice, tt.day)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, status)
			if tt.wantToggled != nil {
				assert.Equal(t, *tt.wantToggled, status.Completion[tt.day])
			}
		})
	}
}

func boolPtr(b bool) *bool { return &b }

func TestChallengeService_ToggleReversibility(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)
	svc, store, _ := challengeFixture(now)

	start := now.Add(-2 * 24 * time.Hour).UnixMilli() // authorized day 3
	expectChallengeState(store, &start, map[int]bool{1: true, 2: true}, "")
	store.On("Set", mock.Anything, challengeDaysKey(testDevice), mock.Anything).Return(nil)

	first, err := svc.ToggleDay(context.Background(), testDevice, 3)
	assert.NoError(t, err)
	assert.True(t, first.Completion[3])

	second, err := svc.ToggleDay(context.Background(), testDevice, 3)
	assert.NoError(t, err)
	assert.False(t, second.Completion[3])
}

func TestChallengeService_FirstToggleAnchorsChallenge(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)
	svc, store, _ := challengeFixture(now)

	expectChallengeState(store, nil, nil, "")
	store.On("Set", mock.Anything, challengeStartKey(testDevice),
		strconv.FormatInt(now.UnixMilli(), 10)).Return(nil).Once()
	store.On("Set", mock.Anything, challengeDaysKey(testDevice), mock.Anything).Return(nil)

	status, err := svc.ToggleDay(context.Background(), testDevice, 1)

	assert.NoError(t, err)
	assert.NotNil(t, status.StartDate)
	assert.Equal(t, now.UnixMilli(), *status.StartDate)
	assert.Equal(t, 1, status.CurrentDay)
	assert.True(t, status.Completion[1])
	store.AssertExpectations(t)
}

func TestChallengeService_Reset(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)
	svc, store, _ := challengeFixture(now)

	start := now.Add(-5 * 24 * time.Hour).UnixMilli()
	expectChallengeState(store, &start, map[int]bool{1: true, 2: true, 3: true}, "")
	store.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	store.On("Remove", mock.Anything, challengeDaysKey(testDevice), challengeStartKey(testDevice)).
		Return(nil).Once()

	svc.Reset(context.Background(), testDevice)

	status := svc.Status(context.Background(), testDevice)
	assert.Nil(t, status.StartDate)
	assert.Empty(t, status.Completion)
	assert.Equal(t, 1, status.CurrentDay)

	// marking day 1 again re-anchors from scratch
	after, err := svc.ToggleDay(context.Background(), testDevice, 1)
	assert.NoError(t, err)
	assert.NotNil(t, after.StartDate)
	assert.Equal(t, now.UnixMilli(), *after.StartDate)
	assert.Equal(t, 1, after.CurrentDay)
	store.AssertExpectations(t)
}

func TestChallengeService_BriefingGate(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)
	svc, store, clock := challengeFixture(now)

	expectChallengeState(store, nil, nil, "")
	store.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	// not yet acknowledged today: due, day 1 message
	status := svc.Status(context.Background(), testDevice)
	assert.True(t, status.BriefingDue)
	assert.Equal(t, BriefingMessages[0], status.BriefingMessage)

	svc.AcknowledgeBriefing(context.Background(), testDevice)

	// same day: silenced
	status = svc.Status(context.Background(), testDevice)
	assert.False(t, status.BriefingDue)
	assert.Empty(t, status.BriefingMessage)

	// next calendar day: due again
	clock.Advance(24 * time.Hour)
	status = svc.Status(context.Background(), testDevice)
	assert.True(t, status.BriefingDue)
}

func TestChallengeService_BriefingMessageClamps(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)
	svc, store, _ := challengeFixture(now)

	// day 10 is past the message list, so the last message repeats
	start := now.Add(-9*24*time.Hour - time.Hour).UnixMilli()
	expectChallengeState(store, &start, nil, "")
	store.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	status := svc.Status(context.Background(), testDevice)
	assert.Equal(t, 10, status.CurrentDay)
	assert.True(t, status.BriefingDue)
	assert.Equal(t, BriefingMessages[len(BriefingMessages)-1], status.BriefingMessage)
}

func TestChallengeService_NoBriefingAfterFinish(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)
	svc, store, _ := challengeFixture(now)

	start := now.Add(-23 * 24 * time.Hour).UnixMilli() // authorized day 24
	expectChallengeState(store, &start, nil, "")
	store.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	status := svc.Status(context.Background(), testDevice)
	assert.Equal(t, 24, status.CurrentDay)
	assert.True(t, status.Finished)
	assert.False(t, status.BriefingDue)
	// backfill stops at the challenge length
	assert.Equal(t, model.ChallengeLength, status.CompletedCount)
}

func TestChallengeService_WriteFailureKeepsMemoryState(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)
	svc, store, _ := challengeFixture(now)

	start := now.Add(-2 * 24 * time.Hour).UnixMilli()
	expectChallengeState(store, &start, map[int]bool{1: true, 2: true}, "")
	store.On("Set", mock.Anything, challengeDaysKey(testDevice), mock.Anything).
		Return(assert.AnError)

	status, err := svc.ToggleDay(context.Background(), testDevice, 3)

	assert.NoError(t, err)
	assert.True(t, status.Completion[3], "session state must survive a failed write")
}

func TestChallengeService_CorruptStateTreatedAsAbsent(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)
	svc, store, _ := challengeFixture(now)

	store.On("Get", mock.Anything, challengeStartKey(testDevice)).Return("not-a-number", nil)
	store.On("Get", mock.Anything, challengeDaysKey(testDevice)).Return("{broken", nil)
	store.On("Get", mock.Anything, briefingSeenKey(testDevice)).Return("", repository.ErrNotFound)

	status := svc.Status(context.Background(), testDevice)

	assert.Nil(t, status.StartDate)
	assert.Empty(t, status.Completion)
	assert.Equal(t, 1, status.CurrentDay)
}
