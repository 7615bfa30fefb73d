package services

import "errors"

// Business-level failures the handlers translate into status codes.
var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
	ErrMealNotFound = errors.New("meal not found")
	ErrNoMeals      = errors.New("no meals registered")
)
