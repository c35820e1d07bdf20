package http

import (
	"time"

	"github.com/nekogravitycat/locaux-booking-backend/internal/audit"
)

type EntryResponse struct {
	ID             string    `json:"id"`
	ActorID        string    `json:"actor_id"`
	Action         string    `json:"action"`
	PreviousStatus *string   `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Comment        *string   `json:"comment"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewEntryResponse(e *audit.Entry) EntryResponse {
	var previous *string
	if e.PreviousStatus != "" {
		p := e.PreviousStatus
		previous = &p
	}
	return EntryResponse{
		ID:             e.ID,
		ActorID:        e.ActorID,
		Action:         e.Action,
		PreviousStatus: previous,
		NewStatus:      e.NewStatus,
		Comment:        e.Comment,
		CreatedAt:      e.CreatedAt,
	}
}

func NewEntryResponses(entries []*audit.Entry) []EntryResponse {
	items := make([]EntryResponse, len(entries))
	for i, e := range entries {
		items[i] = NewEntryResponse(e)
	}
	return items
}
