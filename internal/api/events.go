package api

import (
	"encoding/json"
	"time"

	"github.com/nerrad567/plantshop-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/plantshop-core/internal/plant"
)

// Plant event actions. WebSocket channels are "plant." + action.
const (
	eventCreated = "created"
	eventUpdated = "updated"
	eventDeleted = "deleted"
)

// WebSocket channels carrying plant events.
const (
	ChannelPlantCreated = "plant." + eventCreated
	ChannelPlantUpdated = "plant." + eventUpdated
	ChannelPlantDeleted = "plant." + eventDeleted
)

// PlantEvent is the payload published for every plant mutation.
type PlantEvent struct {
	Action    string       `json:"action"`
	PlantID   int64        `json:"plant_id"`
	Plant     *plant.Plant `json:"plant,omitempty"`
	Timestamp string       `json:"timestamp"`
}

// emitPlantEvent fans a committed mutation out to WebSocket subscribers,
// MQTT and the price history. Failures are logged and never reach the client.
func (s *Server) emitPlantEvent(action string, p *plant.Plant) {
	evt := PlantEvent{
		Action:    action,
		PlantID:   p.ID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if action != eventDeleted {
		evt.Plant = p
	}

	s.hub.Broadcast("plant."+action, evt)

	if s.publisher != nil {
		s.publishPlantEvent(evt)
	}

	if s.prices != nil && action != eventDeleted {
		s.prices.WritePlantPrice(p.ID, p.Name, p.Price)
	}
}

// publishPlantEvent sends evt to plantshop/core/plant/{id}/{action}.
func (s *Server) publishPlantEvent(evt PlantEvent) {
	payload, err := json.Marshal(evt)
	if err != nil {
		s.logger.Error("failed to marshal plant event", "error", err)
		return
	}

	topic := mqtt.Topics{}.PlantEvent(evt.PlantID, evt.Action)
	if err := s.publisher.Publish(topic, payload, s.eventQoS, false); err != nil {
		s.logger.Warn("failed to publish plant event",
			"topic", topic,
			"error", err,
		)
	}
}
