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
	"github.com/dolthub/sabot/store/sabot"
)

// MatchType reports whether |a| and |b| have the same structural type,
// ignoring their values. Strs and blobs match across direct and indirect
// encodings. A tombstone in either position panics.
func MatchType(a Value, aa Arena, b Value, ba Arena) (bool, error) {
	at, err := a.GetType(aa)
	if err != nil {
		return false, err
	}
	bt, err := b.GetType(ba)
	if err != nil {
		return false, err
	}
	return sabot.MatchTypes(at, bt), nil
}
