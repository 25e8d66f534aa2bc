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

package sabot

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrBadType is returned when an accessor is invoked against a
	// mismatched shape.
	ErrBadType = errors.NewKind("bad type: expected %s, found %s")

	// ErrIndexOutOfRange is returned by index-based navigation beyond the
	// element count.
	ErrIndexOutOfRange = errors.NewKind("index %d out of range for %s with %d elements")

	// ErrShapeMismatch is returned by ToNative when the target cannot hold
	// the state.
	ErrShapeMismatch = errors.NewKind("cannot convert %s into %s")

	// ErrUnsupportedNative is returned by FromNative for host values with
	// no shape in the grammar.
	ErrUnsupportedNative = errors.NewKind("no sabot shape for native type %s")
)
