package controllers

import (
	"strconv"
	"strings"

	"cuidarte/config"
	"cuidarte/models"
	"cuidarte/response"
	"cuidarte/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetPaymentLinks lista los enlaces de pago registrados junto con el precio
// ya parseado a número.
func GetPaymentLinks(c *gin.Context) {
	var links []models.PaymentLink
	if err := config.DB.Order("created_at desc").Find(&links).Error; err != nil {
		response.ServerError(c)
		return
	}

	type linkRow struct {
		models.PaymentLink
		ParsedPrice float64 `json:"parsed_price"`
	}
	rows := make([]linkRow, 0, len(links))
	for _, l := range links {
		rows = append(rows, linkRow{PaymentLink: l, ParsedPrice: services.ParsePrice(l.Price)})
	}

	response.Success(c, rows)
}

// CreatePaymentLink da de alta un enlace de pago. El precio se guarda tal
// cual llega del backoffice de pagos, formato europeo incluido.
func CreatePaymentLink(c *gin.Context) {
	var link models.PaymentLink
	if err := c.ShouldBindJSON(&link); err != nil {
		response.BadRequest(c, "Datos de enlace no válidos")
		return
	}

	link.URL = strings.TrimSpace(link.URL)
	if link.URL == "" {
		response.ValidationError(c, "La URL es obligatoria")
		return
	}
	link.Active = true

	if err := config.DB.Create(&link).Error; err != nil {
		response.Conflict(c)
		return
	}

	response.Success(c, link)
}

// UpdatePaymentLink modifica nombre, precio o estado de un enlace.
func UpdatePaymentLink(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	var link models.PaymentLink
	if err := config.DB.First(&link, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	var payload struct {
		Name   *string `json:"name"`
		Price  *string `json:"price"`
		Active *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "Datos no válidos")
		return
	}

	updates := map[string]interface{}{}
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.Price != nil {
		updates["price"] = *payload.Price
	}
	if payload.Active != nil {
		updates["active"] = *payload.Active
	}
	if len(updates) == 0 {
		response.BadRequest(c, "Nada que actualizar")
		return
	}

	if err := config.DB.Model(&link).Updates(updates).Error; err != nil {
		response.ServerError(c)
		return
	}

	config.DB.First(&link, id)
	response.Success(c, link)
}
