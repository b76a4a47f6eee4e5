package model

import "errors"

// ErrInvalidTransaction is returned when a transaction record does not satisfy
// its declared shape. Callers wrap it with the offending field.
var ErrInvalidTransaction = errors.New("invalid transaction")
