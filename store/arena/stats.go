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

package arena

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Stats summarizes the contents of a MemArena.
type Stats struct {
	Notes        int
	Bytes        uint64
	Pins         int
	Unreferenced int
}

func (s Stats) String() string {
	return fmt.Sprintf("%s notes, %s, %d pins, %s unreferenced",
		humanize.Comma(int64(s.Notes)),
		humanize.Bytes(s.Bytes),
		s.Pins,
		humanize.Comma(int64(s.Unreferenced)))
}

func (a *MemArena) Stats() Stats {
	return Stats{
		Notes:        a.notes.Len(),
		Bytes:        a.bytes,
		Pins:         a.npins,
		Unreferenced: len(a.dead),
	}
}
