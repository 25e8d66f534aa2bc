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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/attic-labs/kingpin"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/dolthub/sabot/store/arena"
	"github.com/dolthub/sabot/store/core"
	"github.com/dolthub/sabot/store/sabot"
)

func addImageArg(cmd *kingpin.CmdClause) *string {
	return cmd.Arg("image", "an arena snapshot image").Required().String()
}

func notedumpStats(app *kingpin.Application, e *env) (*kingpin.CmdClause, kingpinHandler) {
	cmd := app.Command("stats", "Prints a summary of the notes in one or more images")
	images := cmd.Arg("images", "arena snapshot images").Required().Strings()
	return cmd, func(string) int {
		return e.exitCode(runStats(os.Stdout, *images, e.arenaConfig()))
	}
}

func notedumpList(app *kingpin.Application, e *env) (*kingpin.CmdClause, kingpinHandler) {
	cmd := app.Command("list", "Lists the notes in an image in offset order")
	image := addImageArg(cmd)
	limit := cmd.Flag("limit", "stop after this many notes (0 for all)").Short('n').Default("0").Int()
	dead := cmd.Flag("unreferenced", "only list unreferenced notes").Bool()
	return cmd, func(string) int {
		return e.exitCode(runList(os.Stdout, *image, e.arenaConfig(), *limit, *dead))
	}
}

func notedumpShow(app *kingpin.Application, e *env) (*kingpin.CmdClause, kingpinHandler) {
	cmd := app.Command("show", "Prints the value held by one note")
	image := addImageArg(cmd)
	off := cmd.Arg("offset", "offset of the note").Required().Uint64()
	return cmd, func(string) int {
		return e.exitCode(runShow(os.Stdout, *image, e.arenaConfig(), core.Offset(*off)))
	}
}

func notedumpCompact(app *kingpin.Application, e *env) (*kingpin.CmdClause, kingpinHandler) {
	cmd := app.Command("compact", "Drops unreferenced notes and renumbers the rest")
	image := addImageArg(cmd)
	out := cmd.Flag("out", "write the result here instead of in place").Short('o').String()
	return cmd, func(string) int {
		dst := *out
		if dst == "" {
			dst = *image
		}
		return e.exitCode(runCompact(os.Stdout, *image, dst, e.arenaConfig()))
	}
}

func (e *env) arenaConfig() arena.Config {
	return e.cfg.ArenaConfig(e.log)
}

// imageStats summarizes one image by note tag.
type imageStats struct {
	total  arena.Stats
	counts map[core.Tag]int
	sizes  map[core.Tag]uint64
}

func loadStats(image string, cfg arena.Config) (imageStats, error) {
	a, err := arena.LoadFile(image, cfg)
	if err != nil {
		return imageStats{}, err
	}

	st := imageStats{
		total:  a.Stats(),
		counts: make(map[core.Tag]int),
		sizes:  make(map[core.Tag]uint64),
	}
	a.Ascend(func(_ core.Offset, n *core.Note) bool {
		st.counts[n.Tag()]++
		st.sizes[n.Tag()] += uint64(n.Size())
		return true
	})
	return st, nil
}

// runStats loads |images| concurrently and prints their summaries in
// argument order.
func runStats(w io.Writer, images []string, cfg arena.Config) error {
	stats := make([]imageStats, len(images))
	var eg errgroup.Group
	for i, image := range images {
		i, image := i, image
		eg.Go(func() error {
			st, err := loadStats(image, cfg)
			if err != nil {
				return errors.Wrapf(err, "%s", image)
			}
			stats[i] = st
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for i, st := range stats {
		if len(images) > 1 {
			fmt.Fprintf(w, "%s:\n", images[i])
		}
		fmt.Fprintf(w, "%s\n", st.total)
		for t := core.BlobTag; t <= core.TupleTag; t++ {
			if st.counts[t] == 0 {
				continue
			}
			fmt.Fprintf(w, "  %-8s %10s notes %10s\n", t, humanize.Comma(int64(st.counts[t])), humanize.Bytes(st.sizes[t]))
		}
	}
	return nil
}

var unreferenced = color.New(color.FgYellow).Sprint("unreferenced")

func runList(w io.Writer, image string, cfg arena.Config, limit int, deadOnly bool) error {
	a, err := arena.LoadFile(image, cfg)
	if err != nil {
		return err
	}

	n := 0
	a.Ascend(func(off core.Offset, note *core.Note) bool {
		dead := a.IsUnreferenced(off)
		if deadOnly && !dead {
			return true
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s", off, note.Tag(), note.Form(), humanize.Bytes(uint64(note.Size())))
		if dead {
			fmt.Fprint(w, "\t", unreferenced)
		}
		fmt.Fprintln(w)
		n++
		return limit <= 0 || n < limit
	})
	return nil
}

func runShow(w io.Writer, image string, cfg arena.Config, off core.Offset) error {
	a, err := arena.LoadFile(image, cfg)
	if err != nil {
		return err
	}
	pin, err := core.NewPin(a, off, 0)
	if err != nil {
		return err
	}
	tag := pin.Note().Tag()
	pin.Release()

	v, err := core.FromOffset(tag, off, a)
	if err != nil {
		return err
	}
	s, err := v.NewState(a)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\n%s\n", s.Type(), sabot.Format(s))
	return nil
}

func runCompact(w io.Writer, image, dst string, cfg arena.Config) error {
	a, err := arena.LoadFile(image, cfg)
	if err != nil {
		return err
	}
	before := a.Stats()

	if _, err := a.Reclaim(); err != nil {
		return err
	}
	if _, err := a.Compact(); err != nil {
		return err
	}
	if err := arena.SaveFile(a, dst); err != nil {
		return err
	}

	after := a.Stats()
	fmt.Fprintf(w, "before: %s\nafter:  %s\n", before, after)
	return nil
}
