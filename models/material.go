package models

import (
	"time"

	"github.com/lib/pq"
)

// Material es un recurso de la biblioteca de materiales (guías, plantillas,
// vídeos) subido a Cloudinary.
type Material struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Title       string         `json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `json:"category"`
	FileURL     string         `json:"file_url"`
	FileType    string         `json:"file_type"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	UploadedBy  *uint          `json:"uploaded_by,omitempty"`
}

func (Material) TableName() string {
	return "materials_library"
}
