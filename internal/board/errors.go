package board

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFEN      = errors.New("invalid FEN")
	ErrInvalidArgument = errors.New("invalid FEN argument")
	ErrInvalidSquare   = errors.New("invalid square")
	ErrIllegalMove     = errors.New("illegal move")
)

// FenDecodeError reports which FEN field failed to decode.
type FenDecodeError struct {
	Field string
	Value string
	Err   error
}

func (e *FenDecodeError) Error() string {
	return fmt.Sprintf("fen %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FenDecodeError) Unwrap() error {
	return e.Err
}
