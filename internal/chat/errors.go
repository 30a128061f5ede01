package chat

import "errors"

var (
	ErrEmptyMessage = errors.New("empty message")
	ErrUserNotFound = errors.New("user not found")
	ErrRoomNotFound = errors.New("room not found")
)
