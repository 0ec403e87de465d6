package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrEmptyInput     = errors.New("empty input")
	ErrDuplicateDrink = errors.New("drink already on the menu")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrEmptyOrder     = errors.New("order has no items")
	ErrCorruptLog     = errors.New("order log is corrupt")
	ErrCorruptMenu    = errors.New("menu file is corrupt")
	ErrIO             = errors.New("storage failure")
	ErrAuthFailure    = errors.New("wrong pin")
)
