package models

import (
	"time"

	"github.com/lib/pq"
)

// RolePermission registra las pestañas visibles por rol. Lo edita dirección.
type RolePermission struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	Role        int            `gorm:"uniqueIndex" json:"role"`
	VisibleTabs pq.StringArray `gorm:"type:text[]" json:"visible_tabs"`
	UpdatedBy   *uint          `json:"updated_by,omitempty"`
}

func (RolePermission) TableName() string {
	return "role_permissions_registry"
}
