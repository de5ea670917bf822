package keno

import "errors"

var (
	ErrInvalidRange      = errors.New("number out of range; must be 1..80")
	ErrDuplicateNumber   = errors.New("duplicate number in selection")
	ErrTooManySelections = errors.New("too many numbers selected; max 10")
	ErrEmptySelection    = errors.New("select at least one number")
	ErrInvalidBet        = errors.New("bet must be a positive amount")

	// ErrInsufficientBalance is raised by the balance owner, never by the engine.
	ErrInsufficientBalance = errors.New("insufficient balance for bet")

	ErrPayoutTable = errors.New("invalid payout table")
	ErrInvalidDraw = errors.New("invalid draw; need 20 distinct numbers in 1..80")
)
