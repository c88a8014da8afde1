package flow

import "errors"

var (
	// ErrNotRegistered marks an operation that needs a registered seller.
	ErrNotRegistered = errors.New("seller not registered")

	// ErrNotOwner marks a mutation attempted on somebody else's code.
	ErrNotOwner = errors.New("not the code owner")
)
