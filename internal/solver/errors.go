package solver

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrEmptyModel indicates a model with no variable groups.
	ErrEmptyModel = constError("model has no variable groups")

	// ErrEmptyGroup indicates a group with no options, which can never
	// satisfy its exactly-one constraint.
	ErrEmptyGroup = constError("group has no options")

	// ErrShapeMismatch indicates an expression whose coefficient layout
	// does not match the model's variable layout.
	ErrShapeMismatch = constError("expression shape does not match model variables")
)

func errGroup(g int, err error) error {
	return fmt.Errorf("group %d: %w", g, err)
}
