package controllers

import (
	"cuidarte/config"
	"cuidarte/models"
	"cuidarte/response"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm/clause"
)

// GetRolePermissions devuelve el registro de pestañas visibles por rol.
func GetRolePermissions(c *gin.Context) {
	var permissions []models.RolePermission
	if err := config.DB.Order("role asc").Find(&permissions).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, permissions)
}

// UpdateRolePermission fija las pestañas visibles de un rol. Hace upsert por
// rol para que la primera edición no necesite alta previa.
func UpdateRolePermission(c *gin.Context) {
	var req struct {
		Role        int      `json:"role" binding:"required"`
		VisibleTabs []string `json:"visible_tabs" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Rol y pestañas son obligatorios")
		return
	}

	userID := c.GetUint("userID")
	permission := models.RolePermission{
		Role:        req.Role,
		VisibleTabs: pq.StringArray(req.VisibleTabs),
		UpdatedBy:   &userID,
	}

	err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "role"}},
		DoUpdates: clause.AssignmentColumns([]string{"visible_tabs", "updated_by", "updated_at"}),
	}).Create(&permission).Error
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, permission)
}
