package http

import (
	"time"

	"github.com/nekogravitycat/locaux-booking-backend/internal/blackout"
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/request"
)

type ListBlackoutsRequest struct {
	request.ListParams
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

type CreateBlackoutRequest struct {
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
	Reason string `json:"reason" binding:"required"`
}

type BlackoutResponse struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Reason    string    `json:"reason"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBlackoutResponse(b *blackout.BlackoutDate) BlackoutResponse {
	return BlackoutResponse{
		ID:        b.ID,
		Date:      b.Date.Format(request.DateLayout),
		Reason:    b.Reason,
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt,
	}
}
