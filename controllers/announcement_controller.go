package controllers

import (
	"strconv"

	"cuidarte/models"
	"cuidarte/response"
	"cuidarte/services/notification"
	"cuidarte/utils"
	"cuidarte/validator"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"gorm.io/gorm"
)

// AnnouncementController gestiona los anuncios del equipo. Las altas y
// ediciones se retransmiten por websocket para refrescar el feed en caliente.
type AnnouncementController struct {
	DB     *gorm.DB
	Melody *melody.Melody
}

func NewAnnouncementController(db *gorm.DB, m *melody.Melody) *AnnouncementController {
	return &AnnouncementController{DB: db, Melody: m}
}

func (ctrl *AnnouncementController) broadcast(event []byte, err error) {
	if err != nil {
		utils.LogError("No se pudo serializar el evento de anuncio: %v", err)
		return
	}
	svc := notification.NewMelodyService(ctrl.Melody)
	if err := svc.SendMessage(event); err != nil {
		utils.LogError("No se pudo emitir el evento de anuncio: %v", err)
	}
}

// GetAnnouncements lista los anuncios para administración. Incluye los
// caducados; el feed es quien los filtra.
func (ctrl *AnnouncementController) GetAnnouncements(c *gin.Context) {
	var announcements []models.Announcement
	if err := ctrl.DB.Order("created_at desc").Find(&announcements).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, announcements)
}

// CreateAnnouncement publica un anuncio y lo retransmite al equipo.
func (ctrl *AnnouncementController) CreateAnnouncement(c *gin.Context) {
	var a models.Announcement
	if err := c.ShouldBindJSON(&a); err != nil {
		response.BadRequest(c, "Datos de anuncio no válidos")
		return
	}

	if err := validator.ValidateAnnouncement(&a); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	userID := c.GetUint("userID")
	a.CreatedBy = &userID

	if err := ctrl.DB.Create(&a).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctrl.broadcast(notification.NewInsertEvent("announcements", a))
	response.Success(c, a)
}

// UpdateAnnouncement edita un anuncio existente.
func (ctrl *AnnouncementController) UpdateAnnouncement(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	var a models.Announcement
	if err := ctrl.DB.First(&a, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	var payload models.Announcement
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "Datos no válidos")
		return
	}

	payload.ID = a.ID
	payload.CreatedAt = a.CreatedAt
	payload.CreatedBy = a.CreatedBy

	if err := validator.ValidateAnnouncement(&payload); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	if err := ctrl.DB.Save(&payload).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctrl.broadcast(notification.NewUpdateEvent("announcements", payload))
	response.Success(c, payload)
}

// DeleteAnnouncement elimina un anuncio y sus acuses de lectura.
func (ctrl *AnnouncementController) DeleteAnnouncement(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("announcement_id = ?", id).Delete(&models.StaffRead{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Announcement{}, id).Error
	})
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{"deleted": id})
}
