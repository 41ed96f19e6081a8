package services

import (
	"fmt"
	"time"

	"cuidarte/constants"
	"cuidarte/models"
	"cuidarte/services/logger"
	"cuidarte/services/notification"

	"github.com/olahol/melody"
	"gorm.io/gorm"
)

// RenewalSweepService ejecuta el barrido diario: avisa de las renovaciones
// sin contratar y de los contratos que vencen en los próximos 7 días, y purga
// los anuncios caducados hace más de 30 días.
type RenewalSweepService struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewRenewalSweepService(db *gorm.DB, log logger.Logger) *RenewalSweepService {
	return &RenewalSweepService{db: db, logger: log}
}

// phaseLabels para los mensajes de aviso.
var phaseLabels = map[string]string{
	constants.PhaseF2: "F2",
	constants.PhaseF3: "F3",
	constants.PhaseF4: "F4",
	constants.PhaseF5: "F5",
}

// sweepReminder es un aviso generado por el barrido para un cliente.
type sweepReminder struct {
	Title   string
	Message string
	Type    string
}

// dueReminders devuelve los avisos que tocan hoy para un cliente: renovaciones
// sin contratar y fin de contrato dentro de la ventana de 7 días.
func dueReminders(client *models.Client, now time.Time) []sweepReminder {
	windowEnd := now.AddDate(0, 0, 7)
	var out []sweepReminder

	for _, r := range client.Program.Renewals() {
		if r.Contracted || r.RenewalDate == nil {
			continue
		}
		if r.RenewalDate.Before(now) || r.RenewalDate.After(windowEnd) {
			continue
		}
		out = append(out, sweepReminder{
			Title: fmt.Sprintf("Renovación %s pendiente: %s", phaseLabels[r.Phase], client.FullName()),
			Message: fmt.Sprintf(
				"La renovación %s de %s vence el %s y aún no está contratada.",
				phaseLabels[r.Phase], client.FullName(), r.RenewalDate.Format("02/01/2006"),
			),
			Type: "renewal_reminder",
		})
	}

	if end := client.ContractEndDate; end != nil && !end.Before(now) && !end.After(windowEnd) {
		out = append(out, sweepReminder{
			Title: fmt.Sprintf("Contrato a punto de vencer: %s", client.FullName()),
			Message: fmt.Sprintf(
				"El contrato de %s termina el %s.",
				client.FullName(), end.Format("02/01/2006"),
			),
			Type: "contract_end_reminder",
		})
	}

	return out
}

// Sweep recorre los clientes activos y notifica a dirección y al coach de
// cada renovación sin contratar o contrato que vence en la ventana de 7
// días. No avisa dos veces del mismo cliente y motivo el mismo día.
func (s *RenewalSweepService) Sweep(m *melody.Melody, now time.Time) error {
	var clients []models.Client
	if err := s.db.Preload("Coach").Where("status = ?", constants.ClientStatusActive).Find(&clients).Error; err != nil {
		return err
	}

	var direction []models.User
	if err := s.db.Where("role = ?", constants.RoleDireccion).Find(&direction).Error; err != nil {
		return err
	}

	notified := 0

	for i := range clients {
		client := &clients[i]
		for _, rem := range dueReminders(client, now) {
			targets := map[uint]bool{}
			for _, d := range direction {
				targets[d.ID] = true
			}
			if client.CoachID != nil {
				targets[*client.CoachID] = true
			}

			for userID := range targets {
				if s.alreadyNotifiedToday(userID, rem.Title, now) {
					continue
				}
				n := models.Notification{
					UserID:  userID,
					Title:   rem.Title,
					Message: rem.Message,
					Type:    rem.Type,
					Link:    fmt.Sprintf("/clients/%d", client.ID),
				}
				if err := s.db.Create(&n).Error; err != nil {
					s.logger.Error("No se pudo crear el aviso de renovación: %v", err)
					continue
				}
				if event, err := notification.NewInsertEvent("notifications", n); err == nil {
					notification.NewMelodyService(m).SendMessage(event)
				}
				notified++
			}
		}
	}

	purged, err := s.purgeExpiredAnnouncements(now)
	if err != nil {
		s.logger.Error("No se pudieron purgar los anuncios caducados: %v", err)
	}

	s.logger.Info("Barrido diario completado: %d avisos, %d anuncios purgados", notified, purged)
	return nil
}

func (s *RenewalSweepService) alreadyNotifiedToday(userID uint, title string, now time.Time) bool {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var count int64
	s.db.Model(&models.Notification{}).
		Where("user_id = ? AND title = ? AND created_at >= ?", userID, title, dayStart).
		Count(&count)
	return count > 0
}

// purgeExpiredAnnouncements borra los anuncios caducados hace más de 30 días
// junto con sus acuses de lectura.
func (s *RenewalSweepService) purgeExpiredAnnouncements(now time.Time) (int64, error) {
	cutoff := now.AddDate(0, 0, -30)

	var expired []models.Announcement
	if err := s.db.Where("expires_at IS NOT NULL AND expires_at < ?", cutoff).Find(&expired).Error; err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	ids := make([]uint, 0, len(expired))
	for _, a := range expired {
		ids = append(ids, a.ID)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("announcement_id IN ?", ids).Delete(&models.StaffRead{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Announcement{}).Error
	})
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}
