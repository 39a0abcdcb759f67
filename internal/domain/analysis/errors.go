package analysis

import "errors"

// ErrInvalidContentType is returned for any type other than "url" or "text".
var ErrInvalidContentType = errors.New("type must be either 'url' or 'text'")

// ErrEmptyContent is returned when the submitted content is blank.
var ErrEmptyContent = errors.New("content is required")
