package snapshot

import "errors"

var ErrInvalidSnapshot = errors.New("invalid snapshot")
