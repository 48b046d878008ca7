package domain

import (
	"errors"
)

const RoleUser = "user"

var (
	MessageFailedBodyRequest  = "failed to parse request body"
	MessageFailedGetToken     = "failed to get token"
	MessageFailedTokenInvalid = "failed to token invalid"

	ErrParseUUID     = errors.New("failed to parse UUID")
	ErrTokenNotFound = errors.New("failed to token not found")
	ErrTokenInvalid  = errors.New("token invalid")
	ErrTokenExpired  = errors.New("token expired")

	// ErrRelationConflict is returned when a duplicate relation insert loses
	// the check-then-write race and the unique index rejects the row.
	ErrRelationConflict = errors.New("relation already created concurrently")
)
