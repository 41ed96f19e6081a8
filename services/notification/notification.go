package notification

import (
	"encoding/json"
	"fmt"

	"github.com/olahol/melody"
)

// Service publica eventos del feed en tiempo real.
type Service interface {
	SendMessage(message []byte) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message []byte) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast(message)
}

// Event es el sobre que viaja por el websocket cuando se inserta un anuncio
// o una notificación. Los clientes deduplican por tabla + id.
type Event struct {
	EventType string      `json:"eventType"` // INSERT | UPDATE
	Table     string      `json:"table"`
	Row       interface{} `json:"row"`
}

// NewInsertEvent serializa un evento de inserción listo para emitir.
func NewInsertEvent(table string, row interface{}) ([]byte, error) {
	return json.Marshal(Event{
		EventType: "INSERT",
		Table:     table,
		Row:       row,
	})
}

// NewUpdateEvent serializa un evento de actualización listo para emitir.
func NewUpdateEvent(table string, row interface{}) ([]byte, error) {
	return json.Marshal(Event{
		EventType: "UPDATE",
		Table:     table,
		Row:       row,
	})
}
