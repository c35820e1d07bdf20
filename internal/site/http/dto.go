package http

import (
	"time"

	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/locaux-booking-backend/internal/site"
)

type ListSitesRequest struct {
	request.ListParams
	Keyword string `form:"q"`
}

type SiteResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// SiteTag is a brief representation of a site.
type SiteTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewSiteResponse(s *site.Site) SiteResponse {
	return SiteResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
	}
}

type CreateSiteRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

type UpdateSiteRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}
