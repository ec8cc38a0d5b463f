package acl

import "errors"

var (
	ErrInvalidAddress      = errors.New("acl: address must be 0x followed by 40 hex characters")
	ErrInvalidRoleBytes    = errors.New("acl: role bytes must be 0x followed by 64 hex characters")
	ErrAppEntityWithoutApp = errors.New("acl: app entity has no app")
)
