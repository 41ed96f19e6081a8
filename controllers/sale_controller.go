package controllers

import (
	"strconv"
	"strings"
	"time"

	"cuidarte/config"
	"cuidarte/constants"
	"cuidarte/dto"
	"cuidarte/models"
	"cuidarte/response"
	"cuidarte/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetSales lista las ventas con filtros por mes, año, estado y closer.
func GetSales(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := config.DB.Model(&models.Sale{}).Preload("Closer")

	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		if month, errM := strconv.Atoi(c.Query("month")); errM == nil && month >= 1 && month <= 12 {
			start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			query = query.Where("sale_date >= ? AND sale_date < ?", start, start.AddDate(0, 1, 0))
		} else {
			start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
			query = query.Where("sale_date >= ? AND sale_date < ?", start, start.AddDate(1, 0, 0))
		}
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if closerID, err := strconv.Atoi(c.Query("closer_id")); err == nil {
		query = query.Where("closer_id = ?", closerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var sales []models.Sale
	if err := query.Order("sale_date desc").Offset((page - 1) * limit).Limit(limit).Find(&sales).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.SuccessWithPagination(c, sales, page, limit, int(total))
}

// CreateSale registra una venta desde el formulario de cierre.
func CreateSale(c *gin.Context) {
	var req dto.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos de venta no válidos")
		return
	}
	if err := validator.ValidateAmount(req.SaleAmount); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	saleDate, err := time.Parse("2006-01-02", req.SaleDate)
	if err != nil {
		response.BadRequest(c, "La fecha debe tener formato YYYY-MM-DD")
		return
	}

	status := req.Status
	if status == "" {
		status = constants.SaleStatusPending
	}

	sale := models.Sale{
		ClientFirstName:  strings.TrimSpace(req.ClientFirstName),
		ClientLastName:   strings.TrimSpace(req.ClientLastName),
		ClientEmail:      strings.ToLower(strings.TrimSpace(req.ClientEmail)),
		SaleAmount:       req.SaleAmount,
		NetAmount:        req.NetAmount,
		CommissionAmount: req.CommissionAmount,
		Status:           status,
		SaleDate:         &saleDate,
		ContractDuration: req.ContractDuration,
		CloserID:         req.CloserID,
		CloserName:       constants.UnassignedCloser,
	}

	if req.CloserID != nil {
		var closer models.User
		if err := config.DB.First(&closer, *req.CloserID).Error; err == nil {
			sale.CloserName = closer.Name
		}
	}

	if err := config.DB.Create(&sale).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, sale)
}

// UpdateSale modifica una venta existente: importes, estado o justificante.
func UpdateSale(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	var sale models.Sale
	if err := config.DB.First(&sale, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "Datos no válidos")
		return
	}

	allowed := map[string]bool{
		"sale_amount": true, "net_amount": true, "commission_amount": true,
		"status": true, "payment_receipt_url": true, "contract_duration": true,
		"closer_id": true, "sale_date": true,
	}
	updates := map[string]interface{}{}
	for k, v := range payload {
		if allowed[k] {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		response.BadRequest(c, "Nada que actualizar")
		return
	}

	if err := config.DB.Model(&sale).Updates(updates).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, sale)
}

// ToggleCommission marca o desmarca la comisión de una venta como pagada.
func ToggleCommission(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	var sale models.Sale
	if err := config.DB.First(&sale, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	if err := config.DB.Model(&sale).Update("commission_paid", !sale.CommissionPaid).Error; err != nil {
		response.ServerError(c)
		return
	}

	sale.CommissionPaid = !sale.CommissionPaid
	response.Success(c, sale)
}
