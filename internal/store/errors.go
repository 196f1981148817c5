package store

import "errors"

// Common store errors
var (
	// ErrUserNotFound is returned when the named user cannot be resolved
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned when registering a duplicate username
	ErrUserExists = errors.New("user already exists")

	// ErrAdminProtected is returned when removing the admin account
	ErrAdminProtected = errors.New("the admin account cannot be removed")

	// ErrBoardNotFound is returned when a board is not found
	ErrBoardNotFound = errors.New("board not found")

	// ErrListNotFound is returned when a list is not found
	ErrListNotFound = errors.New("list not found")

	// ErrItemNotFound is returned when an item is not found
	ErrItemNotFound = errors.New("item not found")

	// ErrEmptyName is returned when a required name field is blank
	ErrEmptyName = errors.New("name must not be empty")

	// ErrEmptyPassword is returned when registering with an empty password
	ErrEmptyPassword = errors.New("password must not be empty")
)
