package errdefs

import "fmt"

type ErrNotFound struct {
	model string
}

func NewErrNotFound(model string) ErrNotFound {
	return ErrNotFound{
		model: model,
	}
}

func (err ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", err.model)
}

// ErrInvalid reports a malformed value found at a data boundary.
type ErrInvalid struct {
	field  string
	value  string
	reason string
}

func NewErrInvalid(field, value, reason string) ErrInvalid {
	return ErrInvalid{
		field:  field,
		value:  value,
		reason: reason,
	}
}

func (err ErrInvalid) Field() string {
	return err.field
}

func (err ErrInvalid) Value() string {
	return err.value
}

func (err ErrInvalid) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", err.field, err.value, err.reason)
}
