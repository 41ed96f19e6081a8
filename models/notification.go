package models

import "time"

// Notification es personal: solo la ve su user_id. ReadAt a nil significa
// no leída.
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UserID    uint       `gorm:"index" json:"user_id"`
	Title     string     `json:"title"`
	Message   string     `gorm:"type:text" json:"message"`
	Type      string     `json:"type"`
	Link      string     `json:"link"`
	ReadAt    *time.Time `json:"read_at,omitempty"`

	User *User `json:"user,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:UserID;references:ID"`
}
