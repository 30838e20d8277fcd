package room

// Floor may legitimately be 0 (ground floor), hence a pointer for presence checks.
type CreateRoomRequest struct {
	Name     string `json:"room_name" binding:"required,max=100"`
	Floor    *int   `json:"floor" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}
