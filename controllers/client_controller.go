package controllers

import (
	"strconv"
	"strings"
	"time"

	"cuidarte/config"
	"cuidarte/constants"
	"cuidarte/models"
	"cuidarte/response"
	"cuidarte/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetClients lista los clientes con filtros por estado, coach y búsqueda por
// nombre o email.
func GetClients(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := config.DB.Model(&models.Client{}).Preload("Coach")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if coachID, err := strconv.Atoi(c.Query("coach_id")); err == nil {
		query = query.Where("coach_id = ?", coachID)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + services.NormalizeSearch(search) + "%"
		query = query.Where(
			"lower(first_name) LIKE ? OR lower(surname) LIKE ? OR lower(email) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var clients []models.Client
	if err := query.Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&clients).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.SuccessWithPagination(c, clients, page, limit, int(total))
}

// GetClientByID devuelve la ficha completa de un cliente.
func GetClientByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	var client models.Client
	if err := config.DB.Preload("Coach").First(&client, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, client)
}

// CreateClient da de alta un cliente. El email se normaliza siempre a
// minúsculas porque es la clave de cruce con las ventas.
func CreateClient(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		response.BadRequest(c, "Datos de cliente no válidos")
		return
	}

	client.Email = strings.ToLower(strings.TrimSpace(client.Email))
	if client.Email == "" || client.FirstName == "" {
		response.ValidationError(c, "Nombre y email son obligatorios")
		return
	}
	if client.Status == "" {
		client.Status = constants.ClientStatusActive
	}

	if err := config.DB.Create(&client).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, client)
}

// UpdateClient modifica los datos generales y las fases de renovación de un
// cliente.
func UpdateClient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	var client models.Client
	if err := config.DB.First(&client, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	var payload models.Client
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "Datos no válidos")
		return
	}

	payload.ID = client.ID
	payload.CreatedAt = client.CreatedAt
	if payload.Email != "" {
		payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	} else {
		payload.Email = client.Email
	}
	if payload.Status == "" {
		payload.Status = client.Status
	}

	if err := config.DB.Save(&payload).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, payload)
}

// ChangeClientStatus cambia el estado del ciclo de vida y estampa la fecha de
// salida que corresponda. La fecha de baja solo se estampa la primera vez.
func ChangeClientStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "El estado es obligatorio")
		return
	}

	valid := map[string]bool{
		constants.ClientStatusActive:   true,
		constants.ClientStatusPaused:   true,
		constants.ClientStatusDropout:  true,
		constants.ClientStatusInactive: true,
	}
	if !valid[req.Status] {
		response.ValidationError(c, "Estado no válido: "+req.Status)
		return
	}

	var client models.Client
	if err := config.DB.First(&client, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	now := time.Now()
	updates := map[string]interface{}{"status": req.Status}
	switch req.Status {
	case constants.ClientStatusPaused:
		updates["pause_date"] = now
	case constants.ClientStatusDropout:
		if client.AbandonmentDate == nil {
			updates["abandonment_date"] = now
		}
	case constants.ClientStatusInactive:
		if client.InactiveDate == nil {
			updates["inactive_date"] = now
		}
	case constants.ClientStatusActive:
		updates["pause_date"] = nil
	}

	if err := config.DB.Model(&client).Updates(updates).Error; err != nil {
		response.ServerError(c)
		return
	}

	config.DB.First(&client, id)
	response.Success(c, client)
}
