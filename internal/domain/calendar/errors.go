package calendar

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrWrongChannel is returned when a real-channel accessor reaches a
	// demo calendar or vice versa.
	ErrWrongChannel = errors.New("wrong channel")

	// ErrValidation is the base for all integrity-rule rejections; wrap it
	// with the specific detail.
	ErrValidation = errors.New("validation failed")

	// ErrNotYetEligible is returned when a picture is opened before its
	// scheduled day.
	ErrNotYetEligible = errors.New("picture not yet eligible for reveal")
)
