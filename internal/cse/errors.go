package cse

import "errors"

var ErrNotConfigured = errors.New("custom search api key and engine id are required")
