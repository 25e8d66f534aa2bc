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

package core

import (
	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/sabot/store/sabot"
)

var (
	// ErrBadType is returned when an accessor is invoked against a
	// mismatched tag.
	ErrBadType = sabot.ErrBadType

	// ErrIndexOutOfRange is returned by index-based navigation beyond the
	// element count.
	ErrIndexOutOfRange = sabot.ErrIndexOutOfRange

	// ErrCorrupt is returned when arena-resident data fails a size or shape
	// check.
	ErrCorrupt = errors.NewKind("corrupt data: %s")

	// ErrNotFound is returned when an arena cannot resolve an offset.
	ErrNotFound = errors.NewKind("no note at offset %d")

	// ErrNoArena is returned when a value needs a note but no arena was
	// supplied.
	ErrNoArena = errors.NewKind("no arena to hold %s")

	// ErrTruncatedView is returned by operations that require a full tuple
	// but were handed a view shortened by TryTruncateTuple.
	ErrTruncatedView = errors.NewKind("%s requires a full view")
)
