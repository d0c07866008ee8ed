package research

import "errors"

var (
	ErrAPIKeyRequired = errors.New("gemini api key is required")
	ErrEmptyResponse  = errors.New("model returned no text")
	ErrNoAudio        = errors.New("model returned no audio")
)
