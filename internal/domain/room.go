package domain

import "time"

type Room struct {
	ID        int64     `json:"id"`
	Name      string    `json:"room_name" validate:"required"`
	Floor     int       `json:"floor"`
	Capacity  int       `json:"capacity" validate:"required,gt=0"`
	CreatedAt time.Time `json:"created_at"`
}
