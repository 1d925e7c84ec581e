package models

import "time"

// Post is the feed entry created from a completion. Like and comment counts
// are filled at read time, not stored on the row.
type Post struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	UserID         string    `json:"user_id" gorm:"index;not null"`
	UserName       string    `json:"user_name"`
	UserPhoto      string    `json:"user_photo,omitempty" gorm:"type:text"`
	ChallengeID    string    `json:"challenge_id" gorm:"index;not null"`
	ChallengeTitle string    `json:"challenge_title"`
	ChallengeType  string    `json:"challenge_type,omitempty"`
	Photo          string    `json:"photo,omitempty" gorm:"type:text"`
	Caption        string    `json:"caption,omitempty" gorm:"type:text"`
	Rating         int       `json:"rating,omitempty"`
	PlaceName      string    `json:"place_name,omitempty"`
	PathID         string    `json:"path_id,omitempty" gorm:"index"`
	CountryID      string    `json:"country_id,omitempty" gorm:"index"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime;index"`

	// Read-time enrichment
	Likes              int  `json:"likes" gorm:"-"`
	LikedByCurrentUser bool `json:"liked_by_current_user" gorm:"-"`
	CommentCount       int  `json:"comment_count" gorm:"-"`
}

// Like marks one user's like on one post.
type Like struct {
	PostID    string    `json:"post_id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Comment is a flat comment on a post; ParentCommentID reserves threading.
type Comment struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	PostID          string    `json:"post_id" gorm:"index;not null"`
	UserID          string    `json:"user_id" gorm:"index;not null"`
	Body            string    `json:"body" gorm:"type:text;not null"`
	ParentCommentID string    `json:"parent_comment_id,omitempty"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}
