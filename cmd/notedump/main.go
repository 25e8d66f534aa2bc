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

// notedump inspects arena snapshot images written by arena.SaveFile.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/attic-labs/kingpin"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/sabot/store/config"
)

type kingpinHandler func(input string) (exitCode int)
type kingpinCommand func(*kingpin.Application, *env) (*kingpin.CmdClause, kingpinHandler)

var kingpinCommands = []kingpinCommand{
	notedumpStats,
	notedumpList,
	notedumpShow,
	notedumpCompact,
}

// env carries the settings every command shares.
type env struct {
	cfg *config.Config
	log *logrus.Logger
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// allow short (-h) help
	kingpin.EnableFileExpansion = false
	app := kingpin.New("notedump", "Inspects and compacts arena snapshot images.")
	app.HelpFlag.Short('h')

	cfgPath := app.Flag("config", "TOML or YAML config file").Short('c').String()
	verbose := app.Flag("verbose", "log at debug level").Short('v').Bool()
	cpuProf := app.Flag("cpuprofile", "write a cpu profile").Bool()
	memProf := app.Flag("memprofile", "write a memory profile").Bool()
	profPath := app.Flag("profpath", "directory for profiles").Default(".").String()

	e := &env{}
	handlers := map[string]kingpinHandler{}
	for _, cmdFunction := range kingpinCommands {
		command, handler := cmdFunction(app, e)
		handlers[command.FullCommand()] = handler
	}

	input := kingpin.MustParse(app.Parse(args))

	if err := e.setup(*cfgPath, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *cpuProf {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profPath), profile.Quiet).Stop()
	} else if *memProf {
		defer profile.Start(profile.MemProfile, profile.ProfilePath(*profPath), profile.Quiet).Stop()
	}

	if handler := handlers[strings.Split(input, " ")[0]]; handler != nil {
		return handler(input)
	}
	return 0
}

func (e *env) setup(cfgPath string, verbose bool) error {
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}
	}
	log, err := cfg.Logger()
	if err != nil {
		return err
	}
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	e.cfg, e.log = cfg, log
	return nil
}

// exitCode reports |err| and maps it to a process exit code.
func (e *env) exitCode(err error) int {
	if err == nil {
		return 0
	}
	e.log.Errorf("%v", err)
	return 1
}
