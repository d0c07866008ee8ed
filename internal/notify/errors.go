package notify

import "errors"

var (
	ErrNotConfigured    = errors.New("smtp host and sender address are required")
	ErrInvalidRecipient = errors.New("invalid recipient address")
)
