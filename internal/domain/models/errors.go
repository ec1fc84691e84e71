package models

import "errors"

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

// ErrInsufficientStock is returned when a sale asks for more units than are on hand.
var ErrInsufficientStock = errors.New("insufficient stock")
