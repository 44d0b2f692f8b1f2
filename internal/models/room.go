package models

import "time"

// Room represents a hostel room as reported by the upstream service.
type Room struct {
	ID         string    `json:"id"`
	Block      string    `json:"block"`
	RoomNumber string    `json:"room_number"`
	Capacity   int       `json:"capacity"`
	Occupied   int       `json:"occupied"`
	Gender     string    `json:"gender,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AvailableSpaces returns the remaining capacity, never negative.
func (r *Room) AvailableSpaces() int {
	free := r.Capacity - r.Occupied
	if free < 0 {
		return 0
	}
	return free
}

// Block is a named subdivision of the hostel containing rooms.
type Block struct {
	Name       string `json:"name"`
	TotalRooms int    `json:"total_rooms"`
	Capacity   int    `json:"capacity"`
	Occupied   int    `json:"occupied"`
}
