package schedule

import "errors"

var (
	ErrInvalidConfig   = errors.New("invalid schedule config")
	ErrOutOfRange      = errors.New("date is outside the training schedule")
	ErrAthleteMismatch = errors.New("activity athlete does not match the schedule athlete")
	ErrUnsupportedKind = errors.New("unsupported activity kind")
)
