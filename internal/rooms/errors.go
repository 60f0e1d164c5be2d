package rooms

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomFull        = errors.New("room is full")
	ErrInvalidCapacity = errors.New("max members must be at least 2")
	ErrMissingField    = errors.New("missing required field")
)
