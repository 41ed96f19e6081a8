package controllers

import (
	"context"
	"strconv"
	"time"

	"cuidarte/config"
	"cuidarte/constants"
	"cuidarte/models"
	"cuidarte/response"
	"cuidarte/utils"
	"cuidarte/validator"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"gorm.io/gorm"
)

// GetInvoices lista las facturas de coach. Un coach solo ve las suyas;
// dirección y contabilidad ven todas.
func GetInvoices(c *gin.Context) {
	query := config.DB.Model(&models.Invoice{}).Preload("Coach")

	role := c.GetInt("userRole")
	if role == constants.RoleCoach {
		userID := c.GetUint("userID")
		query = query.Where("coach_id = ?", userID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("period_date >= ? AND period_date < ?", start, start.AddDate(1, 0, 0))
	}

	var invoices []models.Invoice
	if err := query.Order("period_date desc").Find(&invoices).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, invoices)
}

// CreateInvoice registra la factura mensual de un coach con su justificante.
func CreateInvoice(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.PostForm("amount"), 64)
	if err != nil {
		response.BadRequest(c, "El importe es obligatorio")
		return
	}
	if err := validator.ValidateAmount(amount); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	periodDate, err := time.Parse("2006-01-02", c.PostForm("period_date"))
	if err != nil {
		response.BadRequest(c, "La fecha del periodo debe tener formato YYYY-MM-DD")
		return
	}

	userID := c.GetUint("userID")
	invoice := models.Invoice{
		CoachID:     &userID,
		Amount:      amount,
		Status:      constants.InvoiceStatusPending,
		PeriodDate:  &periodDate,
		Description: c.PostForm("description"),
	}

	// El PDF o la foto de la factura va a Cloudinary
	file, err := c.FormFile("file")
	if err == nil {
		src, errOpen := file.Open()
		if errOpen != nil {
			response.ServerError(c)
			return
		}
		defer src.Close()

		resp, errUp := config.Cloudinary.Upload.Upload(context.Background(), src, uploader.UploadParams{Folder: "facturas"})
		if errUp != nil {
			response.ServerError(c)
			return
		}
		invoice.FileURL = resp.SecureURL
	}

	if err := config.DB.Create(&invoice).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, invoice)
}

// UpdateInvoiceStatus aprueba o rechaza una factura. Solo dirección y
// contabilidad pasan por aquí. El coach recibe una notificación con el
// resultado.
func UpdateInvoiceStatus(m *melody.Melody) gin.HandlerFunc {
	return func(c *gin.Context) {
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
		if req.Status != constants.InvoiceStatusApproved && req.Status != constants.InvoiceStatusRejected && req.Status != constants.InvoiceStatusPending {
			response.ValidationError(c, "Estado no válido: "+req.Status)
			return
		}

		var invoice models.Invoice
		if err := config.DB.First(&invoice, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				response.NotFound(c)
				return
			}
			response.ServerError(c)
			return
		}

		if err := config.DB.Model(&invoice).Update("status", req.Status).Error; err != nil {
			response.ServerError(c)
			return
		}
		invoice.Status = req.Status

		if invoice.CoachID != nil && req.Status != constants.InvoiceStatusPending {
			title := "Factura aprobada"
			if req.Status == constants.InvoiceStatusRejected {
				title = "Factura rechazada"
			}
			msg := "Tu factura ha cambiado de estado"
			if invoice.PeriodDate != nil {
				msg = "Tu factura de " + invoice.PeriodDate.Format("01/2006") + " ha cambiado de estado"
			}
			n := models.Notification{
				UserID:  *invoice.CoachID,
				Title:   title,
				Message: msg,
				Type:    "invoice",
				Link:    "/facturas",
			}
			if err := NotifyUser(config.DB, m, &n); err != nil {
				utils.LogError("No se pudo notificar el cambio de estado de la factura: %v", err)
			}
		}

		response.Success(c, invoice)
	}
}
