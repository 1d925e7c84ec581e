// services/unlock.go
package services

import (
	"flavorquest-system/models"
)

// MinCompletedForUnlock is how many distinct challenges of a stone must be
// completed before the next stone opens. One of a typically-3-challenge
// stone keeps the path moving.
const MinCompletedForUnlock = 1

// ShouldUnlockNext reports whether completing challenges of stone qualifies
// the user to open the stone after it. completed is the distinct
// completed-challenge-id set. Counting the stone's members in that set,
// never raw completion rows, means resubmission cannot double-unlock.
func ShouldUnlockNext(stone models.Stone, completed map[string]struct{}) bool {
	done := 0
	for _, chID := range stone.ChallengeIDs {
		if _, ok := completed[chID]; ok {
			done++
		}
	}
	return done >= MinCompletedForUnlock
}

// ApplyUnlock returns progress with nextStoneID appended to the unlocked
// set. When nextStoneID is empty or already unlocked the argument is
// returned untouched; callers compare against the input to detect a no-op.
// The unlocked set only ever grows.
func ApplyUnlock(progress models.UserProgress, nextStoneID string) models.UserProgress {
	if nextStoneID == "" {
		return progress
	}
	if progress.HasUnlocked(nextStoneID) {
		return progress
	}
	updated := progress
	updated.UnlockedStoneIDs = append(append([]string(nil), progress.UnlockedStoneIDs...), nextStoneID)
	return updated
}
