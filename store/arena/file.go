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
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// SaveFile writes a snapshot image of |a| to |path|. The image is written
// to a temporary file in the same directory and renamed into place, so
// readers never observe a partial image.
func SaveFile(a *MemArena, path string) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".arena-*")
	if err != nil {
		return errors.Wrap(err, "creating snapshot file")
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if _, err = a.WriteTo(f); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "closing snapshot file")
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return errors.Wrapf(err, "moving snapshot to %s", path)
	}
	return nil
}

// LoadFile reads the snapshot image at |path| into a new arena.
func LoadFile(path string, cfg Config) (*MemArena, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening snapshot file")
	}
	defer f.Close()
	return Load(f, cfg)
}
