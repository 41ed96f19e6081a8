package controllers

import (
	"strconv"
	"time"

	"cuidarte/config"
	"cuidarte/dto"
	"cuidarte/models"
	"cuidarte/response"
	"cuidarte/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm/clause"
)

func viewerFromContext(c *gin.Context) services.Viewer {
	return services.Viewer{
		UserID: c.GetUint("userID"),
		Role:   c.GetInt("userRole"),
	}
}

// loadFeedState carga anuncios, notificaciones personales y acuses de lectura
// en paralelo y monta el estado del feed.
func loadFeedState(c *gin.Context, viewer services.Viewer, now time.Time) (*services.FeedState, error) {
	var (
		announcements []models.Announcement
		notifications []models.Notification
		reads         []models.StaffRead
	)

	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		return config.DB.WithContext(gctx).Order("created_at desc").Find(&announcements).Error
	})
	g.Go(func() error {
		return config.DB.WithContext(gctx).Where("user_id = ?", viewer.UserID).
			Order("created_at desc").Limit(200).Find(&notifications).Error
	})
	g.Go(func() error {
		return config.DB.WithContext(gctx).Where("user_id = ?", viewer.UserID).Find(&reads).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return services.NewFeedState(viewer, announcements, notifications, reads, now), nil
}

// GetFeed devuelve el feed unificado del usuario: anuncios dirigidos a su rol
// y sus notificaciones personales, con el contador de no leídos y el anuncio
// urgente a mostrar como modal si lo hay.
func GetFeed(c *gin.Context) {
	viewer := viewerFromContext(c)

	state, err := loadFeedState(c, viewer, time.Now())
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, dto.FeedResponse{
		Items:       state.Items(),
		UnreadCount: state.UnreadCount(),
		Urgent:      state.Urgent(),
	})
}

// MarkFeedRead marca un elemento del feed como leído. Es idempotente: marcar
// dos veces no cambia nada.
func MarkFeedRead(c *gin.Context) {
	viewer := viewerFromContext(c)

	kind := c.Param("kind")
	if kind != dto.FeedKindAnnouncement && kind != dto.FeedKindNotification {
		response.BadRequest(c, "Tipo de elemento no válido: "+kind)
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID no válido")
		return
	}

	now := time.Now()
	switch kind {
	case dto.FeedKindAnnouncement:
		read := models.StaffRead{UserID: viewer.UserID, AnnouncementID: uint(id)}
		err = config.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&read).Error
	case dto.FeedKindNotification:
		err = config.DB.Model(&models.Notification{}).
			Where("id = ? AND user_id = ? AND read_at IS NULL", id, viewer.UserID).
			Update("read_at", now).Error
	}
	if err != nil {
		response.ServerError(c)
		return
	}

	state, err := loadFeedState(c, viewer, now)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{"unreadCount": state.UnreadCount()})
}

// MarkAllFeedRead marca como leído todo el feed del usuario.
func MarkAllFeedRead(c *gin.Context) {
	viewer := viewerFromContext(c)
	now := time.Now()

	state, err := loadFeedState(c, viewer, now)
	if err != nil {
		response.ServerError(c)
		return
	}

	// IDs de anuncios que pasan de no leídos a leídos
	annIDs := state.MarkAllRead(now)

	if len(annIDs) > 0 {
		reads := make([]models.StaffRead, 0, len(annIDs))
		for _, id := range annIDs {
			reads = append(reads, models.StaffRead{UserID: viewer.UserID, AnnouncementID: id})
		}
		if err := config.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&reads).Error; err != nil {
			response.ServerError(c)
			return
		}
	}

	if err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", viewer.UserID).
		Update("read_at", now).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{"unreadCount": 0})
}
