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
	"bytes"
	"io"
	"testing"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/require"
)

func decodeImage(t *testing.T, img []byte) []byte {
	raw, err := io.ReadAll(snappy.NewReader(bytes.NewReader(img)))
	require.NoError(t, err)
	return raw
}

func encodeImage(t *testing.T, raw []byte) []byte {
	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	_, err := w.Write(raw)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}
