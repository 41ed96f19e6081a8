package controllers

import (
	"strconv"
	"strings"

	"cuidarte/config"
	"cuidarte/models"
	"cuidarte/response"
	"cuidarte/services"
	"cuidarte/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// loadScoringRules trae las reglas de puntuación activas.
func loadScoringRules(db *gorm.DB) ([]models.ScoringRule, error) {
	var rules []models.ScoringRule
	if err := db.Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// GetLeads lista los leads con filtros por estado y búsqueda.
func GetLeads(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := config.DB.Model(&models.Lead{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(email) LIKE ? OR phone LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var leads []models.Lead
	if err := query.Order("score desc, created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&leads).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.SuccessWithPagination(c, leads, page, limit, int(total))
}

// CreateLead da de alta un lead y le calcula la puntuación inicial.
func CreateLead(c *gin.Context) {
	var lead models.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		response.BadRequest(c, "Datos de lead no válidos")
		return
	}
	if err := lead.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	rules, err := loadScoringRules(config.DB)
	if err != nil {
		response.ServerError(c)
		return
	}
	lead.Score = services.CalculateScore(&lead, rules)

	if err := config.DB.Create(&lead).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, lead)
}

// UpdateLead modifica un lead y recalcula su puntuación con las reglas
// vigentes.
func UpdateLead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	var lead models.Lead
	if err := config.DB.First(&lead, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	var payload models.Lead
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "Datos no válidos")
		return
	}

	payload.ID = lead.ID
	payload.CreatedAt = lead.CreatedAt

	if err := payload.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	rules, err := loadScoringRules(config.DB)
	if err != nil {
		response.ServerError(c)
		return
	}
	payload.Score = services.CalculateScore(&payload, rules)

	if err := config.DB.Save(&payload).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, payload)
}

// DeleteLead elimina un lead.
func DeleteLead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	result := config.DB.Delete(&models.Lead{}, id)
	if result.Error != nil {
		response.ServerError(c)
		return
	}
	if result.RowsAffected == 0 {
		response.NotFound(c)
		return
	}

	response.Success(c, gin.H{"deleted": id})
}

// GetScoringRules lista las reglas de puntuación.
func GetScoringRules(c *gin.Context) {
	rules, err := loadScoringRules(config.DB)
	if err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, rules)
}

// CreateScoringRule da de alta una regla de puntuación.
func CreateScoringRule(c *gin.Context) {
	var rule models.ScoringRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		response.BadRequest(c, "Datos de regla no válidos")
		return
	}
	if err := validator.ValidateScoringRule(&rule); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := config.DB.Create(&rule).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, rule)
}

// UpdateScoringRule modifica una regla de puntuación.
func UpdateScoringRule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	var rule models.ScoringRule
	if err := config.DB.First(&rule, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	var payload models.ScoringRule
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "Datos no válidos")
		return
	}
	payload.ID = rule.ID
	payload.CreatedAt = rule.CreatedAt

	if err := validator.ValidateScoringRule(&payload); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := config.DB.Save(&payload).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, payload)
}

// DeleteScoringRule elimina una regla de puntuación.
func DeleteScoringRule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	result := config.DB.Delete(&models.ScoringRule{}, id)
	if result.Error != nil {
		response.ServerError(c)
		return
	}
	if result.RowsAffected == 0 {
		response.NotFound(c)
		return
	}

	response.Success(c, gin.H{"deleted": id})
}

// RecomputeLeadScores recalcula la puntuación de todos los leads tras cambiar
// las reglas.
func RecomputeLeadScores(c *gin.Context) {
	rules, err := loadScoringRules(config.DB)
	if err != nil {
		response.ServerError(c)
		return
	}

	var leads []models.Lead
	if err := config.DB.Find(&leads).Error; err != nil {
		response.ServerError(c)
		return
	}

	updated := 0
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		for i := range leads {
			score := services.CalculateScore(&leads[i], rules)
			if score == leads[i].Score {
				continue
			}
			if err := tx.Model(&leads[i]).Update("score", score).Error; err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{"recomputed": updated, "total": len(leads)})
}
