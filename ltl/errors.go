// SPDX-License-Identifier: MIT
// Package ltl: sentinel errors.

package ltl

import (
	"errors"
	"fmt"
)

// ErrSyntax is matched (via errors.Is) by every error Parse returns.
var ErrSyntax = errors.New("ltl: syntax error")

// SyntaxError reports malformed input together with the byte offset at which
// the parser gave up.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("ltl: syntax error at offset %d: %s", e.Offset, e.Msg)
}

// Is makes errors.Is(err, ErrSyntax) hold for every *SyntaxError.
func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }
