package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProgress is the per-(user, path) progression record. It is derived
// state: CompletedChallengeIDs and Points are recomputed from the completion
// log on every write, never incremented in place, so the record can always be
// rebuilt from the log alone. UnlockedStoneIDs only ever grows.
type UserProgress struct {
	UserID                string   `json:"user_id" gorm:"primaryKey"`
	PathID                string   `json:"path_id" gorm:"primaryKey"`
	UnlockedStoneIDs      []string `json:"unlocked_stone_ids" gorm:"serializer:json"`
	CompletedChallengeIDs []string `json:"completed_challenge_ids" gorm:"serializer:json"`
	Points                int      `json:"points" gorm:"default:0"`

	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// HasUnlocked reports whether stoneID is in the unlocked set.
func (p UserProgress) HasUnlocked(stoneID string) bool {
	for _, id := range p.UnlockedStoneIDs {
		if id == stoneID {
			return true
		}
	}
	return false
}

// CompletedSet returns the distinct completed challenge ids as a set.
func (p UserProgress) CompletedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.CompletedChallengeIDs))
	for _, id := range p.CompletedChallengeIDs {
		set[id] = struct{}{}
	}
	return set
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
