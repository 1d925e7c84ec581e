package models

// ChallengeType classifies how a challenge is completed.
type ChallengeType string

const (
	ChallengeEat   ChallengeType = "eat"
	ChallengeDrink ChallengeType = "drink"
	ChallengeCook  ChallengeType = "cook"
)

// Stone is an ordered, themed group of challenges. Stones are catalog
// content: defined at build time, immutable at runtime, never persisted
// per user. Only their ids appear in progress records.
type Stone struct {
	ID           string   `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"not null"`
	Theme        string   `json:"theme" gorm:"type:text"` // prompt material for the challenge generator
	Order        int      `json:"order" gorm:"column:sort_order;not null"`
	PathID       string   `json:"path_id" gorm:"index;not null"`
	Emoji        string   `json:"emoji,omitempty"`
	ChallengeIDs []string `json:"challenge_ids" gorm:"serializer:json"`
}

// Challenge is a single completable task belonging to one stone.
type Challenge struct {
	ID                    string        `json:"id" gorm:"primaryKey"`
	StoneID               string        `json:"stone_id" gorm:"index;not null"` // must agree with the id-derived prefix
	Type                  ChallengeType `json:"type" gorm:"type:varchar(8);default:'eat'"`
	Title                 string        `json:"title" gorm:"not null"`
	Description           string        `json:"description" gorm:"type:text"`
	Points                int           `json:"points" gorm:"not null"`
	AIHintEligible        bool          `json:"ai_hint_eligible"`
	LocationHintAvailable bool          `json:"location_hint_available"`
	AIGenerated           bool          `json:"ai_generated"`
}

// Path is a named sequence of stones within a country.
type Path struct {
	ID        string `json:"id" gorm:"primaryKey"` // e.g. "sg_general"
	CountryID string `json:"country_id" gorm:"index;not null"`
	Name      string `json:"name" gorm:"not null"`
	Order     int    `json:"order" gorm:"column:sort_order;not null"`
}

// Country groups paths into a regional track.
type Country struct {
	ID   string `json:"id" gorm:"primaryKey"` // e.g. "sg"
	Name string `json:"name" gorm:"not null"`
}
