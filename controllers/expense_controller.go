package controllers

import (
	"strconv"

	"cuidarte/config"
	"cuidarte/dto"
	"cuidarte/models"
	"cuidarte/response"
	"cuidarte/utils"
	"cuidarte/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetMarketingExpenses lista los gastos de marketing de un año, con filtro
// opcional por mes.
func GetMarketingExpenses(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.BadRequest(c, "El año es obligatorio")
		return
	}

	query := config.DB.Where("period_year = ?", year)
	if month, errM := strconv.Atoi(c.Query("month")); errM == nil && month >= 1 && month <= 12 {
		query = query.Where("period_month = ?", month)
	}

	var expenses []models.MarketingExpense
	if err := query.Order("period_month asc, channel asc").Find(&expenses).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, expenses)
}

// CreateMarketingExpense da de alta un gasto de marketing.
func CreateMarketingExpense(c *gin.Context) {
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos de gasto no válidos")
		return
	}

	userID := c.GetUint("userID")
	expense := models.MarketingExpense{
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		Channel:     req.Channel,
		Amount:      req.Amount,
		Description: req.Description,
		CreatedBy:   &userID,
	}

	if err := validator.ValidateMarketingExpense(&expense); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := config.DB.Create(&expense).Error; err != nil {
		utils.LogError("No se pudo guardar el gasto de marketing: %v", err)
		response.ServerError(c)
		return
	}

	response.Success(c, expense)
}

// UpdateMarketingExpense modifica un gasto existente.
func UpdateMarketingExpense(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	var expense models.MarketingExpense
	if err := config.DB.First(&expense, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos de gasto no válidos")
		return
	}

	expense.PeriodMonth = req.PeriodMonth
	expense.PeriodYear = req.PeriodYear
	expense.Channel = req.Channel
	expense.Amount = req.Amount
	expense.Description = req.Description

	if err := validator.ValidateMarketingExpense(&expense); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := config.DB.Save(&expense).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, expense)
}

// DeleteMarketingExpense elimina un gasto.
func DeleteMarketingExpense(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	result := config.DB.Delete(&models.MarketingExpense{}, id)
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

// GetExpenseSummary devuelve el total de gastos por mes y canal de un año.
func GetExpenseSummary(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.BadRequest(c, "El año es obligatorio")
		return
	}

	var expenses []models.MarketingExpense
	if err := config.DB.Where("period_year = ?", year).Find(&expenses).Error; err != nil {
		response.ServerError(c)
		return
	}

	summary := make([]dto.ExpenseMonthSummary, 12)
	for i := range summary {
		summary[i] = dto.ExpenseMonthSummary{Month: i + 1, ByChannel: map[string]float64{}}
	}
	for _, e := range expenses {
		if e.PeriodMonth < 1 || e.PeriodMonth > 12 {
			continue
		}
		s := &summary[e.PeriodMonth-1]
		s.Total += e.Amount
		s.ByChannel[e.Channel] += e.Amount
	}

	response.Success(c, summary)
}
