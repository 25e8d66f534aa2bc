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
	"encoding/binary"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/pkg/errors"

	"github.com/dolthub/sabot/store/core"
)

// A snapshot image is a snappy framed stream holding:
//
//	magic        [4]byte "SBTA"
//	version      uint8
//	flags        uint8 (bit 0: ordered)
//	note count   uint64
//
// followed, for each note in offset order, by:
//
//	offset       uint64
//	tag          uint8
//	form         uint8
//	unreferenced uint8
//	size         uint32
//	data         [size]byte
//
// Integers are little endian. Offsets are preserved, so values that
// reference the arena stay valid across a write and a load.
const (
	snapshotMagic   = "SBTA"
	snapshotVersion = 1

	orderedFlag = 1

	snapshotHeaderSize = len(snapshotMagic) + 2 + 8
	recordHeaderSize   = 8 + 3 + 4

	// maxNotePrealloc caps the buffer allocated up front for note data.
	maxNotePrealloc = 64 << 10
)

// WriteTo writes a snapshot image of the arena to |w|.
func (a *MemArena) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	sw := snappy.NewBufferedWriter(cw)

	var hdr [snapshotHeaderSize]byte
	copy(hdr[:], snapshotMagic)
	hdr[4] = snapshotVersion
	if a.cfg.Ordered {
		hdr[5] = orderedFlag
	}
	binary.LittleEndian.PutUint64(hdr[6:], uint64(a.notes.Len()))
	if _, err := sw.Write(hdr[:]); err != nil {
		return cw.n, errors.Wrap(err, "writing snapshot header")
	}

	var err error
	var rec [recordHeaderSize]byte
	a.notes.Ascend(func(e entry) bool {
		binary.LittleEndian.PutUint64(rec[0:8], uint64(e.off))
		rec[8] = byte(e.note.Tag())
		rec[9] = byte(e.note.Form())
		rec[10] = 0
		if a.IsUnreferenced(e.off) {
			rec[10] = 1
		}
		binary.LittleEndian.PutUint32(rec[11:15], uint32(e.note.Size()))
		if _, err = sw.Write(rec[:]); err != nil {
			return false
		}
		_, err = sw.Write(e.note.Data())
		return err == nil
	})
	if err != nil {
		return cw.n, errors.Wrap(err, "writing snapshot notes")
	}

	if err := sw.Close(); err != nil {
		return cw.n, errors.Wrap(err, "flushing snapshot")
	}
	return cw.n, nil
}

// ReadFrom loads a snapshot image into an empty arena. The arena adopts
// the image's ordered flag. On error the arena is left empty.
func (a *MemArena) ReadFrom(r io.Reader) (_ int64, err error) {
	if a.notes.Len() > 0 {
		return 0, errors.New("cannot load a snapshot into a non-empty arena")
	}
	ordered := a.cfg.Ordered
	defer func() {
		if err != nil {
			a.reset()
			a.cfg.Ordered = ordered
		}
	}()

	cr := &countingReader{r: r}
	sr := snappy.NewReader(cr)

	var hdr [snapshotHeaderSize]byte
	if _, err := io.ReadFull(sr, hdr[:]); err != nil {
		return cr.n, corruptOr(err, "reading snapshot header")
	}
	if string(hdr[:4]) != snapshotMagic {
		return cr.n, core.ErrCorrupt.New(fmt.Sprintf("bad snapshot magic %q", hdr[:4]))
	}
	if hdr[4] != snapshotVersion {
		return cr.n, core.ErrCorrupt.New(fmt.Sprintf("unknown snapshot version %d", hdr[4]))
	}
	a.cfg.Ordered = hdr[5]&orderedFlag != 0
	count := binary.LittleEndian.Uint64(hdr[6:])

	var rec [recordHeaderSize]byte
	for i := uint64(0); i < count; i++ {
		if _, err := io.ReadFull(sr, rec[:]); err != nil {
			return cr.n, corruptOr(err, "reading note header")
		}
		off := core.Offset(binary.LittleEndian.Uint64(rec[0:8]))
		tag := core.Tag(rec[8])
		form := core.NoteForm(rec[9])
		size := binary.LittleEndian.Uint32(rec[11:15])

		if off < a.next {
			return cr.n, core.ErrCorrupt.New(fmt.Sprintf("note offset %d overlaps previous note ending at %d", off, a.next))
		}
		if !tag.IsIndirect() || form > core.NoteExemplar {
			return cr.n, core.ErrCorrupt.New(fmt.Sprintf("note at offset %d has tag %s and form %d", off, tag, form))
		}

		// |size| is untrusted; the buffer grows as data arrives
		buf := bytes.NewBuffer(make([]byte, 0, min(int(size), maxNotePrealloc)))
		if _, err := io.CopyN(buf, sr, int64(size)); err != nil {
			return cr.n, corruptOr(err, "reading note data")
		}
		n := core.NewNote(tag, form, buf.Bytes())
		if _, err := n.ElemCount(); err != nil {
			return cr.n, err
		}

		a.insert(off, n)
		if rec[10] != 0 {
			a.dead[off] = struct{}{}
		}
		if a.interned != nil && rec[10] == 0 {
			a.interned.Add(internKeyOf(n), off)
		}
	}

	a.log.Debugf("arena: loaded %d notes", count)
	a.observe()
	return cr.n, nil
}

// Load reads a snapshot image into a new arena.
func Load(r io.Reader, cfg Config) (*MemArena, error) {
	a, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := a.ReadFrom(r); err != nil {
		return nil, err
	}
	return a, nil
}

// corruptOr reports a truncated image as corruption and wraps other read
// errors.
func corruptOr(err error, msg string) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return core.ErrCorrupt.New(msg + ": unexpected end of snapshot")
	}
	return errors.Wrap(err, msg)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}
