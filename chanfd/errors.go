package chanfd

import "github.com/pkg/errors"

// ErrInvalidElementSize is returned by Create when elementSize is not
// greater than zero (spec §3: "element_size: ... must be > 0").
var ErrInvalidElementSize = errors.New("chanfd: element size must be > 0")

// ErrElementSizeMismatch is returned by Send/Recv when the caller's
// buffer does not match the element size the channel was created with.
var ErrElementSizeMismatch = errors.New("chanfd: buffer length does not match channel element size")
