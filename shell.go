// Copyright 2025 Naren Yellavula
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
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cybrota/bidtree/records"
	"github.com/cybrota/bidtree/tree"
	"github.com/mattn/go-shellwords"
)

// Shell is the line-oriented menu. It accepts the classic numbered choices
// as well as words such as `find 98223` or `list pre`.
type Shell struct {
	catalog Catalog
	config  *Config
	opts    records.LoadOptions
	order   tree.Order

	in  *bufio.Scanner
	out io.Writer
}

func NewShell(catalog Catalog, config *Config, opts records.LoadOptions, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		catalog: catalog,
		config:  config,
		opts:    opts,
		order:   tree.InOrder,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out, "Menu:")
	fmt.Fprintln(s.out, "  1. Load Data")
	fmt.Fprintf(s.out, "  2. Display All (%s-order)\n", s.order)
	fmt.Fprintln(s.out, "  3. Find")
	fmt.Fprintln(s.out, "  4. Remove")
	fmt.Fprintln(s.out, "  5. Stats")
	fmt.Fprintln(s.out, "  9. Exit")
	fmt.Fprint(s.out, "Enter choice: ")
}

// readLine returns false once input is exhausted.
func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *Shell) prompt(label, fallback string) (string, bool) {
	if fallback != "" {
		fmt.Fprintf(s.out, "%s [%s]: ", label, fallback)
	} else {
		fmt.Fprintf(s.out, "%s: ", label)
	}
	line, ok := s.readLine()
	if !ok {
		return "", false
	}
	if strings.TrimSpace(line) == "" {
		return fallback, true
	}
	return line, true
}

// Run loops until the user exits or input ends.
func (s *Shell) Run() error {
	for {
		s.printMenu()
		line, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out)
			break
		}
		fmt.Fprintln(s.out)

		words, err := shellwords.Parse(line)
		if err != nil {
			fmt.Fprintf(s.out, "Input was not understood: %v\n\n", err)
			continue
		}
		if len(words) == 0 {
			continue
		}
		if !s.dispatch(words) {
			break
		}
		fmt.Fprintln(s.out)
	}
	fmt.Fprintln(s.out, "Good bye.")
	return s.in.Err()
}

// dispatch runs one command and reports whether the loop should continue.
func (s *Shell) dispatch(words []string) bool {
	cmd, args := strings.ToLower(words[0]), words[1:]

	switch cmd {
	case "9", "exit", "quit":
		return false
	case "1", "load":
		path := s.config.DataFile()
		if len(args) > 0 {
			path = args[0]
		}
		s.load(path)
	case "2", "list", "display":
		if len(args) > 0 {
			order, err := tree.ParseOrder(args[0])
			if err != nil {
				fmt.Fprintln(s.out, err)
				return true
			}
			s.order = order
		}
		s.list()
	case "3", "find":
		keys := args
		if len(keys) == 0 {
			key, ok := s.prompt("Enter key", s.defaultKey())
			if !ok {
				return false
			}
			keys = []string{key}
		}
		for _, key := range keys {
			s.find(key)
		}
	case "4", "remove":
		keys := args
		if len(keys) == 0 {
			key, ok := s.prompt("Enter key", s.defaultKey())
			if !ok {
				return false
			}
			keys = []string{key}
		}
		for _, key := range keys {
			s.remove(key)
		}
	case "5", "stats":
		printStats(s.out, s.catalog)
	case "order":
		if len(args) == 0 {
			fmt.Fprintf(s.out, "Traversal order is %s\n", s.order)
			return true
		}
		order, err := tree.ParseOrder(args[0])
		if err != nil {
			fmt.Fprintln(s.out, err)
			return true
		}
		s.order = order
		fmt.Fprintf(s.out, "Traversal order set to %s\n", s.order)
	case "help":
		fmt.Fprintln(s.out, "Commands: load [file], list [in|pre|post], find KEY..., remove KEY..., order [in|pre|post], stats, exit")
	default:
		fmt.Fprintf(s.out, "%s is not a valid option.\n", words[0])
	}
	return true
}

func (s *Shell) defaultKey() string {
	if s.catalog.Kind() == kindBids {
		return s.config.Data.DefaultBidKey
	}
	return ""
}

func (s *Shell) requireLoaded() bool {
	if !s.catalog.Loaded() {
		fmt.Fprintln(s.out, "Please load data first (Option 1).")
		return false
	}
	return true
}

func (s *Shell) load(path string) {
	fmt.Fprintf(s.out, "Loading file: %s\n", path)
	report, err := s.catalog.Load(path, s.opts)
	if err != nil {
		fmt.Fprintf(s.out, "%sError:%s %v\n", Error, Reset, err)
		return
	}
	fmt.Fprintf(s.out, "%s\n", report)
	printElapsed(s.out, report.Elapsed)
}

func (s *Shell) list() {
	if !s.requireLoaded() {
		return
	}
	for _, line := range s.catalog.Lines(s.order) {
		fmt.Fprintln(s.out, line)
	}
}

func (s *Shell) find(key string) {
	if !s.requireLoaded() {
		return
	}
	start := time.Now()
	text, ok := s.catalog.Describe(key)
	elapsed := time.Since(start)
	if ok {
		fmt.Fprintln(s.out, text)
	} else {
		fmt.Fprintf(s.out, "%s %s not found.\n", keyLabel(s.catalog.Kind()), strings.TrimSpace(key))
	}
	printElapsed(s.out, elapsed)
}

func (s *Shell) remove(key string) {
	if !s.requireLoaded() {
		return
	}
	if s.catalog.Remove(key) {
		fmt.Fprintf(s.out, "%s %s removed.\n", keyLabel(s.catalog.Kind()), strings.TrimSpace(key))
	} else {
		fmt.Fprintf(s.out, "%s %s not found.\n", keyLabel(s.catalog.Kind()), strings.TrimSpace(key))
	}
}
