package services

import (
	"sort"
	"sync"
	"time"

	"cuidarte/constants"
	"cuidarte/dto"
	"cuidarte/models"
)

// Viewer identifica al miembro del equipo que consulta el feed.
type Viewer struct {
	UserID uint
	Role   int
}

// IsAnnouncementTargeted decide si un anuncio aplica al espectador:
// all_team siempre; only_coaches solo a coaches y, con coach_filter, solo al
// coach indicado; only_closers solo a closers.
func IsAnnouncementTargeted(a *models.Announcement, v Viewer) bool {
	switch a.TargetAudience {
	case constants.AudienceAllTeam:
		return true
	case constants.AudienceOnlyCoaches:
		if v.Role != constants.RoleCoach {
			return false
		}
		if a.CoachFilter != nil {
			return *a.CoachFilter == v.UserID
		}
		return true
	case constants.AudienceOnlyClosers:
		return v.Role == constants.RoleCloser
	default:
		return false
	}
}

// FeedState mantiene el feed unificado de un espectador. Los eventos en
// directo pueden llegar mientras una recarga completa está en vuelo, así que
// todas las mutaciones van bajo el mutex y la inserción deduplica por id.
// Un elemento solo transita de no leído a leído, nunca al revés.
type FeedState struct {
	mu          sync.Mutex
	viewer      Viewer
	items       []dto.FeedItem
	readAnnIDs  map[uint]bool
	unreadCount int
}

// NewFeedState construye el feed a partir de una carga completa: anuncios
// dirigidos al espectador y no caducados, sus notificaciones personales y el
// conjunto de acuses de lectura. El resultado queda ordenado por fecha
// descendente.
func NewFeedState(
	viewer Viewer,
	announcements []models.Announcement,
	notifications []models.Notification,
	reads []models.StaffRead,
	now time.Time,
) *FeedState {
	readIDs := make(map[uint]bool, len(reads))
	for _, r := range reads {
		if r.UserID == viewer.UserID {
			readIDs[r.AnnouncementID] = true
		}
	}

	var items []dto.FeedItem
	for i := range announcements {
		a := &announcements[i]
		if !IsAnnouncementTargeted(a, viewer) || a.Expired(now) {
			continue
		}
		items = append(items, dto.FeedItem{
			Kind:        dto.FeedKindAnnouncement,
			ID:          a.ID,
			Title:       a.Title,
			Message:     a.Message,
			Type:        a.Type,
			Priority:    a.Priority,
			ShowAsModal: a.ShowAsModal,
			CreatedAt:   a.CreatedAt,
			Read:        readIDs[a.ID],
		})
	}
	for i := range notifications {
		n := &notifications[i]
		if n.UserID != viewer.UserID {
			continue
		}
		items = append(items, dto.FeedItem{
			Kind:      dto.FeedKindNotification,
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			Link:      n.Link,
			CreatedAt: n.CreatedAt,
			ReadAt:    n.ReadAt,
			Read:      n.ReadAt != nil,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	s := &FeedState{
		viewer:     viewer,
		items:      items,
		readAnnIDs: readIDs,
	}
	s.unreadCount = s.countUnreadLocked()
	return s
}

func (s *FeedState) countUnreadLocked() int {
	count := 0
	for i := range s.items {
		if !s.items[i].Read {
			count++
		}
	}
	return count
}

// Items devuelve una copia del feed ordenado.
func (s *FeedState) Items() []dto.FeedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dto.FeedItem, len(s.items))
	copy(out, s.items)
	return out
}

// UnreadCount devuelve el contador de no leídos.
func (s *FeedState) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadCount
}

// Urgent devuelve el primer anuncio no leído marcado como modal con
// prioridad alta, si existe.
func (s *FeedState) Urgent() *dto.FeedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		it := s.items[i]
		if it.Kind == dto.FeedKindAnnouncement && !it.Read && it.ShowAsModal && it.Priority >= 1 {
			return &it
		}
	}
	return nil
}

// PushAnnouncement incorpora un anuncio llegado en directo. Devuelve false
// si no aplica al espectador o si el id ya estaba presente: una llegada
// duplicada no debe contar dos veces.
func (s *FeedState) PushAnnouncement(a *models.Announcement, now time.Time) bool {
	if !IsAnnouncementTargeted(a, s.viewer) || a.Expired(now) {
		return false
	}
	return s.push(dto.FeedItem{
		Kind:        dto.FeedKindAnnouncement,
		ID:          a.ID,
		Title:       a.Title,
		Message:     a.Message,
		Type:        a.Type,
		Priority:    a.Priority,
		ShowAsModal: a.ShowAsModal,
		CreatedAt:   a.CreatedAt,
	})
}

// PushNotification incorpora una notificación llegada en directo, con la
// misma deduplicación por id.
func (s *FeedState) PushNotification(n *models.Notification) bool {
	if n.UserID != s.viewer.UserID {
		return false
	}
	return s.push(dto.FeedItem{
		Kind:      dto.FeedKindNotification,
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Link:      n.Link,
		CreatedAt: n.CreatedAt,
		ReadAt:    n.ReadAt,
		Read:      n.ReadAt != nil,
	})
}

func (s *FeedState) push(item dto.FeedItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].Kind == item.Kind && s.items[i].ID == item.ID {
			return false
		}
	}
	if item.Kind == dto.FeedKindAnnouncement && s.readAnnIDs[item.ID] {
		item.Read = true
	}
	s.items = append([]dto.FeedItem{item}, s.items...)
	if !item.Read {
		s.unreadCount++
	}
	return true
}

// MarkRead marca un elemento como leído. Es idempotente: repetir la llamada
// sobre un elemento ya leído no vuelve a descontar del contador.
func (s *FeedState) MarkRead(kind string, id uint, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].Kind != kind || s.items[i].ID != id {
			continue
		}
		if s.items[i].Read {
			return false
		}
		s.items[i].Read = true
		if kind == dto.FeedKindAnnouncement {
			s.readAnnIDs[id] = true
		} else {
			t := now
			s.items[i].ReadAt = &t
		}
		if s.unreadCount > 0 {
			s.unreadCount--
		}
		return true
	}
	return false
}

// MarkAllRead marca todo el feed como leído y devuelve los ids de anuncio
// que faltaban por acusar, para persistir sus staff_reads.
func (s *FeedState) MarkAllRead(now time.Time) []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	var newlyRead []uint
	for i := range s.items {
		if s.items[i].Read {
			continue
		}
		s.items[i].Read = true
		if s.items[i].Kind == dto.FeedKindAnnouncement {
			s.readAnnIDs[s.items[i].ID] = true
			newlyRead = append(newlyRead, s.items[i].ID)
		} else {
			t := now
			s.items[i].ReadAt = &t
		}
	}
	s.unreadCount = 0
	return newlyRead
}
