package models

import "time"

type Announcement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Title   string `json:"title"`
	Message string `gorm:"type:text" json:"message"`
	Type    string `json:"type"`
	// 0 informativo, 1 importante, 2 urgente
	Priority int `gorm:"default:0" json:"priority"`

	// all_team, only_coaches, only_closers
	TargetAudience string `gorm:"default:all_team" json:"target_audience"`
	// Con only_coaches, restringe el anuncio a un coach concreto.
	CoachFilter *uint `json:"coach_filter,omitempty"`

	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	ShowAsModal bool       `gorm:"default:false" json:"show_as_modal"`
	CreatedBy   *uint      `json:"created_by,omitempty"`
}

// Expired indica si el anuncio ya no debe aparecer en el feed.
func (a *Announcement) Expired(now time.Time) bool {
	return a.ExpiresAt != nil && !a.ExpiresAt.After(now)
}

// StaffRead es el acuse de lectura de un anuncio por un miembro del equipo.
type StaffRead struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UserID         uint      `gorm:"uniqueIndex:idx_staff_reads_user_announcement" json:"user_id"`
	AnnouncementID uint      `gorm:"uniqueIndex:idx_staff_reads_user_announcement" json:"announcement_id"`
}
