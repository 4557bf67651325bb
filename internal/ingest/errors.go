package ingest

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrNoBlocks indicates a block source that produced no usable records.
	ErrNoBlocks = constError("no block records found")

	// ErrEmptyCatalog indicates a mix catalog that is empty after applying
	// the percentage ceiling filters.
	ErrEmptyCatalog = constError("no mixes available after applying percentage filters")

	// ErrMissingColumn indicates a CSV source missing a required column.
	ErrMissingColumn = constError("missing required column")
)
