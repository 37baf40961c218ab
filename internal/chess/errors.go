package chess

import "fmt"

// FENError reports a malformed FEN string, naming the field at fault.
type FENError struct {
	msg string
}

func (e *FENError) Error() string {
	return e.msg
}

func (e *FENError) Is(target error) bool {
	t, ok := target.(*FENError)
	if !ok {
		return false
	}
	return e.msg == t.msg
}

func fenErrorf(format string, args ...any) error {
	return &FENError{msg: fmt.Sprintf(format, args...)}
}
