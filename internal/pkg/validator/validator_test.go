package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name     string `validate:"required"`
	Capacity int    `validate:"gt=0"`
	RoomID   int64  `validate:"gt=0"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(sample{Name: "A", Capacity: 1, RoomID: 1}))

	got := Validate(sample{})
	assert.Equal(t, map[string]string{
		"name":     "required",
		"capacity": "gt",
		"room_id":  "gt",
	}, got)
}

func TestDescribe_NonValidationError(t *testing.T) {
	assert.Nil(t, Describe(errors.New("boom")))
	assert.Nil(t, Describe(nil))
}
