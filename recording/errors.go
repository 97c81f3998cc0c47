package recording

import "errors"

var (
	// ErrNoBatch is returned by a draw call that has no selected batch.
	ErrNoBatch = errors.New("recording: draw without a selected batch")

	// ErrBatchTooLarge is returned when a batch or a draw call exceeds the
	// maximum batch size.
	ErrBatchTooLarge = errors.New("recording: batch exceeds maximum batch size")

	// ErrOutOfBatch is returned when a draw call addresses vertices or
	// indices outside the selected batch.
	ErrOutOfBatch = errors.New("recording: draw range outside selected batch")

	// ErrTopologyMismatch is returned when the selected kind of batch does
	// not match the draw call (indexed draw on a non-indexed batch).
	ErrTopologyMismatch = errors.New("recording: indexed draw on non-indexed batch")
)
