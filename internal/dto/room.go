package dto

// CreateRoomRequest registers a new room.
type CreateRoomRequest struct {
	Block      string `json:"block" validate:"required"`
	RoomNumber string `json:"room_number" validate:"required"`
	Capacity   int    `json:"capacity" validate:"required,gt=0"`
	Gender     string `json:"gender" validate:"omitempty,oneof=male female mixed"`
}

// UpdateRoomRequest patches room attributes; nil fields are left untouched.
type UpdateRoomRequest struct {
	Block      *string `json:"block,omitempty"`
	RoomNumber *string `json:"room_number,omitempty"`
	Capacity   *int    `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Gender     *string `json:"gender,omitempty" validate:"omitempty,oneof=male female mixed"`
	Active     *bool   `json:"active,omitempty"`
}
