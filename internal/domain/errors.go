package domain

import "errors"

var (
	// ErrPlayerNotFound is returned when a tracked player does not exist
	ErrPlayerNotFound = errors.New("player not found")

	// ErrNameChangeNotFound is returned when a name-change request does not exist
	ErrNameChangeNotFound = errors.New("name change not found")

	// ErrDuplicateNameChange is returned when a pending request already exists
	// for the same (old name, new name) pair
	ErrDuplicateNameChange = errors.New("name change already pending")

	// ErrInvalidStatus is returned when a request is not in the status the
	// operation requires
	ErrInvalidStatus = errors.New("name change is not pending")

	// ErrInvalidName is returned when a submitted name is empty or the old and
	// new names standardize to the same value
	ErrInvalidName = errors.New("invalid name")

	// ErrNameBlocked is returned when the requested new name is on the
	// curated block list
	ErrNameBlocked = errors.New("name is blocked")

	// ErrUnauthorized is returned when the admin credential is invalid
	ErrUnauthorized = errors.New("invalid admin credential")

	// ErrPlayerVanished is returned when the donor player referenced by a
	// pending request no longer exists. This indicates store corruption, not
	// a caller mistake.
	ErrPlayerVanished = errors.New("player referenced by pending name change no longer exists")
)
