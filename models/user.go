package models

// AppUser is a local snapshot of user data needed for feed rendering and
// dietary-aware challenge generation. In demo mode it is seeded in-memory;
// in production it is populated by the profile sync worker from the remote
// auth/profile service.
type AppUser struct {
	ID          string   `gorm:"primaryKey" json:"id"`
	DisplayName string   `gorm:"index;not null" json:"display_name"`
	Email       string   `json:"email,omitempty"`
	Photo       string   `gorm:"type:text" json:"photo,omitempty"`
	Dietary     []string `gorm:"serializer:json" json:"dietary,omitempty"`
	IsDemo      bool     `gorm:"default:false" json:"is_demo"`
	IsAdmin     bool     `gorm:"default:false" json:"is_admin"`

	Timestamps
}
