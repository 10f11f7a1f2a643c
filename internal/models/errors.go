package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Envelope errors
var (
	ErrEnvelopeNameEmpty = errors.New("the envelope name must not be empty")
	ErrInvalidWeight     = errors.New("the envelope weight must be a number between 0 and 1")
	ErrInvalidThreshold  = errors.New("the envelope minimum threshold must not be negative")
)

// Transaction errors
var (
	ErrInvalidTransactionKind = errors.New("the transaction kind must be one of income, expense, adjustment")
	ErrInvalidAmount          = errors.New("the transaction amount must be larger than zero")
	ErrAdjustmentAmountZero   = errors.New("an adjustment must not have an amount of zero")
	ErrMissingEnvelope        = errors.New("this transaction kind requires an envelope")
	ErrAutoSplitEnvelope      = errors.New("an automatic-split income cannot target a single envelope")
	ErrAutoSplitKind          = errors.New("only income can be split automatically")
)

// Goal errors
var ErrInvalidGoal = errors.New("the goal target amount must be larger than zero")
