package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidDeclaration = errors.New("invalid declaration")

// ErrInvalidTravelerCount is a kind of ErrInvalidDeclaration; errors.Is matches both.
var ErrInvalidTravelerCount = fmt.Errorf("%w: traveler count must be positive", ErrInvalidDeclaration)

// ErrUnknownCategory means a category is missing from the quota or fine tables.
var ErrUnknownCategory = errors.New("unknown category")
