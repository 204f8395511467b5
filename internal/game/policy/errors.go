package policy

import "errors"

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrNoActiveUnit    = errors.New("no unit at active position")
	ErrNoBoard         = errors.New("no board")
)
