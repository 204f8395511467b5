package events

import "errors"

// ErrUnknownEventType is returned when subscribing to a type no agent publishes
var ErrUnknownEventType = errors.New("unknown event type")
