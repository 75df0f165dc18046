package core

import "errors"

var (
	// ErrMissingRequiredField is returned when a property that has no
	// usable default (nameserver address, consumer group, consumer topic)
	// is absent or empty.
	ErrMissingRequiredField = errors.New("mqconf: missing required field")

	// ErrInvalidConfiguration is returned when a property is present but
	// unusable: a numeric or boolean value that does not parse, or a
	// topic subscription the target rejects.
	ErrInvalidConfiguration = errors.New("mqconf: invalid configuration")
)
