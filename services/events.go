package services

import "time"

// EventsChannel is the Redis channel the live feed listens on.
const EventsChannel = "batterylab:events"

const (
	EventPredictionCompleted = "prediction_completed"
	EventCandidatesGenerated = "candidates_generated"
	EventMaterialCreated     = "material_created"
	EventMaterialDeleted     = "material_deleted"
)

type Event struct {
	Type      string    `json:"type"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEvent(eventType string, data any) Event {
	return Event{Type: eventType, Data: data, Timestamp: time.Now().UTC()}
}
