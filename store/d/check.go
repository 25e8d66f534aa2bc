// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package d holds the panics raised on invariant violations, which only
// arise from caller bugs.
package d

import (
	"fmt"

	"github.com/stretchr/testify/assert"
)

// Exp exposes testify's assertion API for runtime invariants. Failed
// assertions panic with an InvariantError, which Try recovers.
var Exp = assert.New(&recoverablePanicker{})

// InvariantError is the panic payload raised by Panic and Exp.
type InvariantError struct {
	msg string
}

func (e InvariantError) Error() string {
	return e.msg
}

type recoverablePanicker struct{}

func (s recoverablePanicker) Errorf(format string, args ...interface{}) {
	panic(InvariantError{fmt.Sprintf(format, args...)})
}

// Panic raises an InvariantError.
func Panic(format string, args ...interface{}) {
	panic(InvariantError{fmt.Sprintf(format, args...)})
}

// PanicIfTrue raises an InvariantError if |b| is true.
func PanicIfTrue(b bool, format string, args ...interface{}) {
	if b {
		Panic(format, args...)
	}
}

// PanicIfFalse raises an InvariantError if |b| is false.
func PanicIfFalse(b bool, format string, args ...interface{}) {
	if !b {
		Panic(format, args...)
	}
}

// Try calls |f| and returns any InvariantError it raises. Other panics
// are propagated.
func Try(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(InvariantError); ok {
				err = ie
				return
			}
			panic(r)
		}
	}()
	f()
	return nil
}
