package http

import (
	"time"

	"github.com/nekogravitycat/locaux-booking-backend/internal/file"
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/locaux-booking-backend/internal/room"
)

type ListRoomsRequest struct {
	request.ListParams
	SiteID      string `form:"site_id" binding:"omitempty,uuid"`
	MinCapacity int    `form:"min_capacity" binding:"omitempty,min=1"`
	Status      string `form:"status" binding:"omitempty,oneof=available occupied maintenance"`
	ActiveOnly  bool   `form:"active_only"`
	SortBy      string `form:"sort_by" binding:"omitempty,oneof=name capacity created_at"`
}

type SiteTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoomResponse struct {
	ID           string    `json:"id"`
	Site         SiteTag   `json:"site"`
	Name         string    `json:"name"`
	Capacity     int       `json:"capacity"`
	IsActive     bool      `json:"is_active"`
	Status       string    `json:"status"`
	Bookable     bool      `json:"bookable"`
	PhotoURL     *string   `json:"photo_url,omitempty"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	resp := RoomResponse{
		ID:        r.ID,
		Site:      SiteTag{ID: r.SiteID, Name: r.SiteName},
		Name:      r.Name,
		Capacity:  r.Capacity,
		IsActive:  r.IsActive,
		Status:    string(r.Status),
		Bookable:  r.Bookable(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.PhotoID != nil {
		photo := file.FileURL(*r.PhotoID)
		thumb := file.ThumbnailURL(*r.PhotoID)
		resp.PhotoURL = &photo
		resp.ThumbnailURL = &thumb
	}
	return resp
}

type CreateRoomRequest struct {
	SiteID   string `json:"site_id" binding:"required,uuid"`
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	Status   string `json:"status" binding:"omitempty,oneof=available occupied maintenance"`
}

type UpdateRoomRequest struct {
	Name     *string `json:"name"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=1"`
	IsActive *bool   `json:"is_active"`
	Status   *string `json:"status" binding:"omitempty,oneof=available occupied maintenance"`
}
