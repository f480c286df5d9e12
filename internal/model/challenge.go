package model

// ChallengeLength is the number of days in the challenge.
const ChallengeLength = 22

// ChallengeStatus is the derived view of a device's challenge. CurrentDay
// is recomputed from StartDate and the wall clock on every load and is
// never persisted.
type ChallengeStatus struct {
	StartDate       *int64       // epoch ms, nil until day 1 is first marked
	CurrentDay      int          // authorized day, >= 1, may exceed ChallengeLength
	Completion      map[int]bool // day number -> completed, sparse
	CompletedCount  int
	Finished        bool // CurrentDay has moved past the last day
	BriefingDue     bool
	BriefingMessage string
}
