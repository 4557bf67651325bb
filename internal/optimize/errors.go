package optimize

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrInvalidScale indicates a non-positive scale factor.
	ErrInvalidScale = constError("scale factors must be positive")

	// ErrNoBlocks indicates an assignment problem with no blocks.
	ErrNoBlocks = constError("no blocks to optimize")

	// ErrNoOptions indicates a block whose option list is empty, which can
	// never satisfy the exactly-one constraint.
	ErrNoOptions = constError("block has no applicable options")
)
