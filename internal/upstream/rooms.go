package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/noah-isme/hostel-portal-api/internal/models"
	appErrors "github.com/noah-isme/hostel-portal-api/pkg/errors"
)

type roomPayload struct {
	ID         flexID     `json:"id"`
	Block      string     `json:"block"`
	RoomNumber string     `json:"roomNumber"`
	Capacity   int        `json:"capacity"`
	Occupied   int        `json:"occupied"`
	Gender     string     `json:"gender"`
	Active     *bool      `json:"active"`
	CreatedAt  *time.Time `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt"`
}

func (p *roomPayload) toRoom() models.Room {
	room := models.Room{
		ID:         p.ID.String(),
		Block:      p.Block,
		RoomNumber: p.RoomNumber,
		Capacity:   p.Capacity,
		Occupied:   p.Occupied,
		Gender:     p.Gender,
		Active:     true,
	}
	if p.Active != nil {
		room.Active = *p.Active
	}
	if p.CreatedAt != nil {
		room.CreatedAt = *p.CreatedAt
	}
	if p.UpdatedAt != nil {
		room.UpdatedAt = *p.UpdatedAt
	}
	return room
}

// Rooms lists all hostel rooms.
func (c *Client) Rooms(ctx context.Context) ([]models.Room, error) {
	var payload []roomPayload
	if err := c.doJSON(ctx, http.MethodGet, "/rooms", nil, nil, &payload); err != nil {
		return nil, err
	}
	rooms := make([]models.Room, 0, len(payload))
	for i := range payload {
		rooms = append(rooms, payload[i].toRoom())
	}
	return rooms, nil
}

// Blocks lists hostel blocks. A 404 means no blocks are configured yet and
// maps to an empty list.
func (c *Client) Blocks(ctx context.Context) ([]models.Block, error) {
	var payload []struct {
		Name       string `json:"name"`
		TotalRooms int    `json:"totalRooms"`
		Capacity   int    `json:"capacity"`
		Occupied   int    `json:"occupied"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/rooms/blocks", nil, nil, &payload)
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) && appErr.Status == http.StatusNotFound {
			return []models.Block{}, nil
		}
		return nil, err
	}
	blocks := make([]models.Block, 0, len(payload))
	for _, item := range payload {
		blocks = append(blocks, models.Block{
			Name:       item.Name,
			TotalRooms: item.TotalRooms,
			Capacity:   item.Capacity,
			Occupied:   item.Occupied,
		})
	}
	return blocks, nil
}

// CreateRoom registers a new room upstream.
func (c *Client) CreateRoom(ctx context.Context, fields map[string]interface{}) (*models.Room, error) {
	var payload roomPayload
	if err := c.doJSON(ctx, http.MethodPost, "/rooms", nil, fields, &payload); err != nil {
		return nil, err
	}
	room := payload.toRoom()
	return &room, nil
}

// UpdateRoom patches room attributes.
func (c *Client) UpdateRoom(ctx context.Context, roomID string, fields map[string]interface{}) (*models.Room, error) {
	var payload roomPayload
	path := "/rooms/" + url.PathEscape(roomID)
	if err := c.doJSON(ctx, http.MethodPatch, path, nil, fields, &payload); err != nil {
		return nil, err
	}
	room := payload.toRoom()
	return &room, nil
}

// DeleteRoom removes a room.
func (c *Client) DeleteRoom(ctx context.Context, roomID string) error {
	path := "/rooms/" + url.PathEscape(roomID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}
