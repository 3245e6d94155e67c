package model

import "errors"

// Engine error taxonomy. Create paths fail loudly with one of these; remove
// paths report "nothing to remove" as a false result instead of an error.
var (
	// ErrSelfRelation is returned when a user relates to themself.
	ErrSelfRelation = errors.New("users cannot relate to themselves")

	// ErrAlreadyExists is returned when a unique pair constraint is violated.
	ErrAlreadyExists = errors.New("relation already exists")

	// ErrAlreadyFriends is returned when requesting friendship between users
	// who are already mutual friends.
	ErrAlreadyFriends = errors.New("users are already friends")

	// ErrAlreadyRequested is returned when a live friendship request already
	// exists between the pair in either direction.
	ErrAlreadyRequested = errors.New("friendship already requested")

	// ErrRequestNotFound is returned when a friendship request id does not
	// resolve to a row.
	ErrRequestNotFound = errors.New("friendship request not found")

	// ErrUserNotFound is returned when an id does not resolve to a user.
	ErrUserNotFound = errors.New("user not found")
)
