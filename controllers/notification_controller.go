package controllers

import (
	"strconv"

	"cuidarte/models"
	"cuidarte/response"
	"cuidarte/services/notification"
	"cuidarte/utils"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"gorm.io/gorm"
)

// NotificationController crea notificaciones personales y las retransmite por
// websocket al equipo conectado.
type NotificationController struct {
	DB     *gorm.DB
	Melody *melody.Melody
}

func NewNotificationController(db *gorm.DB, m *melody.Melody) *NotificationController {
	return &NotificationController{DB: db, Melody: m}
}

// CreateNotification envía una notificación personal a un usuario.
func (ctrl *NotificationController) CreateNotification(c *gin.Context) {
	var n models.Notification
	if err := c.ShouldBindJSON(&n); err != nil {
		response.BadRequest(c, "Datos de notificación no válidos")
		return
	}
	if n.UserID == 0 || n.Title == "" {
		response.ValidationError(c, "user_id y título son obligatorios")
		return
	}
	n.ReadAt = nil

	if err := ctrl.DB.Create(&n).Error; err != nil {
		response.ServerError(c)
		return
	}

	event, err := notification.NewInsertEvent("notifications", n)
	if err != nil {
		utils.LogError("No se pudo serializar la notificación: %v", err)
	} else if err := notification.NewMelodyService(ctrl.Melody).SendMessage(event); err != nil {
		utils.LogError("No se pudo emitir la notificación: %v", err)
	}

	response.Success(c, n)
}

// DeleteNotification borra una notificación del propio usuario.
func (ctrl *NotificationController) DeleteNotification(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	userID := c.GetUint("userID")
	result := ctrl.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
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

// NotifyUser persiste y retransmite una notificación generada por el sistema,
// por ejemplo desde el barrido diario de renovaciones.
func NotifyUser(db *gorm.DB, m *melody.Melody, n *models.Notification) error {
	if err := db.Create(n).Error; err != nil {
		return err
	}

	event, err := notification.NewInsertEvent("notifications", n)
	if err != nil {
		return err
	}
	return notification.NewMelodyService(m).SendMessage(event)
}
