package metrics

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for input normalization. Comparable with errors.Is().
var (
	// ErrUnknownCellType indicates a cell type string outside ground/roof/any.
	ErrUnknownCellType = constError("unknown cell type")

	// ErrNonPositiveArea indicates a block area that is zero or negative.
	ErrNonPositiveArea = constError("block area must be positive")
)
