package dto

import "time"

// Tipos de elemento del feed del equipo.
const (
	FeedKindAnnouncement = "announcement"
	FeedKindNotification = "notification"
)

// FeedItem es un elemento del feed unificado de anuncios y notificaciones.
type FeedItem struct {
	Kind        string     `json:"feedType"` // announcement | notification
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Type        string     `json:"type"`
	Priority    int        `json:"priority"`
	Link        string     `json:"link,omitempty"`
	ShowAsModal bool       `json:"show_as_modal,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	Read        bool       `json:"read"`
}

// FeedResponse es la respuesta del endpoint de feed.
type FeedResponse struct {
	Items       []FeedItem `json:"items"`
	UnreadCount int        `json:"unreadCount"`
	Urgent      *FeedItem  `json:"urgent,omitempty"`
}
