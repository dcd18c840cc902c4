// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command n3p drives the proof engine from the command line: it runs a
// JSON run spec or a built-in demo scenario and prints the resulting
// proof.
package main

import (
	"context"

	docopt "github.com/docopt/docopt-go"
	"github.com/ebay/n3proof/util/debuglog"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var fmtr = message.NewPrinter(language.English)

const usage = `n3p runs the N3 proof engine.

Usage:
  n3p run <runspec.json> [--trace] [--dot=FILE]
  n3p demo (symmetry|subclass) [--dot=FILE] [--spec=FILE]
  n3p parse <file.n3>

Options:
  --trace       Log rule applications and unification outcomes.
  --dot=FILE    Write the proof graph to FILE (pdf, png, svg, or dot).
  --spec=FILE   Write the demo's run spec to FILE, to edit and rerun.

Examples:
  # Run a reasoning job described by a run spec.
  n3p run job.json

  # Run it again and keep the proof graph.
  n3p run job.json --dot=proof.svg

  # Prove that bob knows alice because alice knows bob.
  n3p demo symmetry

  # Saturate the classic subclass syllogism, saving its run spec.
  n3p demo subclass --spec=job.json

  # Check an N3 file and list what it declares.
  n3p parse axioms.n3

`

type options struct {
	Trace   bool
	DotFile string `docopt:"--dot"`

	// Run
	Run         bool
	RunSpecFile string `docopt:"<runspec.json>"`

	// Demo
	Demo     bool
	Symmetry bool
	Subclass bool
	SpecFile string `docopt:"--spec"`

	// Parse
	Parse  bool
	N3File string `docopt:"<file.n3>"`
}

func parseArgs() *options {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		log.Fatalf("Error parsing command-line arguments: %v", err)
	}
	var options options
	err = opts.Bind(&options)
	if err != nil {
		log.Fatalf("Error binding command-line arguments: %v\nfrom: %+v", err, opts)
	}
	return &options
}

func main() {
	debuglog.Configure(debuglog.Options{})
	options := parseArgs()
	if options.Trace {
		log.SetLevel(log.DebugLevel)
	}
	ctx := context.Background()

	switch {
	case options.Run:
		if err := run(ctx, options); err != nil {
			log.Fatalf("Error executing run: %v", err)
		}
	case options.Demo:
		if err := demo(ctx, options); err != nil {
			log.Fatalf("Error executing demo: %v", err)
		}
	case options.Parse:
		if err := parseFile(options); err != nil {
			log.Fatalf("Error executing parse: %v", err)
		}
	default:
		log.Fatalf("command not implemented")
	}
}
