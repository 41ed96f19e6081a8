package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	Name          string         `gorm:"default:Nuevo Usuario" json:"name"`
	Email         string         `gorm:"unique" json:"email"`
	Password      string         `json:"password"`
	IsVerified    bool           `gorm:"default:false" json:"is_verified"`
	PhoneNumber   string         `gorm:"type:varchar(15)" json:"phoneNumber"`
	Avatar        string         `json:"avatar"`
	Role          int            `gorm:"default:0" json:"role"`
	Status        int            `gorm:"default:1" json:"status"`
	Position      string         `json:"position"`
	Bio           string         `gorm:"type:text" json:"bio"`
	StartedAt     *time.Time     `json:"startedAt,omitempty"`
	Specialties   pq.StringArray `gorm:"type:text[]" json:"specialties"`
	LastViewedAt  *time.Time     `json:"lastViewedAt,omitempty"`
	GoogleSubject string         `json:"-"`
}
