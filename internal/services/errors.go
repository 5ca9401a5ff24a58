package services

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownClient   = errors.New("client not found in directory")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrDispatchFailed  = errors.New("order could not be sent")
)
