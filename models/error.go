package models

import "errors"

// ErrVehicleNotFound is returned by every vehicle source when a detail
// lookup matches nothing
var ErrVehicleNotFound = errors.New("vehicle not found")

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Response MessageError
}

// MessageError contains the inner details for the error message response
type MessageError struct {
	Message string
	Error   string
}
