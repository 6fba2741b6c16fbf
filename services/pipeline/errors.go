// Package pipeline turns per-class directories of IMU recordings into a
// labelled, augmented window tensor.
package pipeline

import "errors"

var (
	// ErrNoData means a recording could not be turned into a table.
	ErrNoData = errors.New("no data")
	// ErrTooShort means a table has fewer rows than one window.
	ErrTooShort = errors.New("recording shorter than window")
	// ErrBadParams means an extractor or assembler was configured with
	// unusable sizes or a class labelled twice.
	ErrBadParams = errors.New("invalid parameters")
)
