package models

import "time"

// Completion records one user finishing one challenge instance. The log is
// append-only: rows are never mutated or deleted, and the same challenge may
// appear more than once per user. Scoring and unlocks work off the distinct
// challenge-id set, so resubmission is harmless.
type Completion struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID       string    `json:"user_id" gorm:"index;not null"`
	ChallengeID  string    `json:"challenge_id" gorm:"index;not null"` // canonical form
	DisplayTitle string    `json:"display_title"`
	DisplayType  string    `json:"display_type,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty" gorm:"type:text"` // opaque handle owned by the upload layer
	Caption      string    `json:"caption,omitempty" gorm:"type:text"`
	Rating       int       `json:"rating,omitempty"` // 1-5 stars, 0 = unrated
	PlaceName    string    `json:"place_name,omitempty"`
	UsedAIHint   bool      `json:"used_ai_hint,omitempty"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}
