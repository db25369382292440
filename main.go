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
	"fmt"
	"io"
	"os"

	"github.com/cybrota/bidtree/records"
	"github.com/cybrota/bidtree/tree"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "v0.3.0"

// globalFlags are shared by every subcommand and override the config file.
type globalFlags struct {
	configPath string
	file       string
	kind       string
	duplicates string
	debug      bool
	progress   bool
}

func setupLogging(debug bool) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// resolveConfig loads the config file and applies flags the user set.
func resolveConfig(cmd *cobra.Command, gf *globalFlags) *Config {
	config, err := LoadConfig(gf.configPath)
	if err != nil {
		logrus.Warnf("%v. Using default settings.", err)
	}

	flags := cmd.Flags()
	if flags.Changed("kind") {
		config.Data.Kind = gf.kind
	}
	if flags.Changed("file") {
		if config.Data.Kind == kindCourses {
			config.Data.CoursesFile = gf.file
		} else {
			config.Data.BidsFile = gf.file
		}
	}
	if flags.Changed("duplicates") {
		config.Tree.Duplicates = gf.duplicates
	}
	if flags.Changed("debug") {
		config.Log.Debug = gf.debug
	}
	if flags.Changed("progress") {
		config.UI.Progress = gf.progress
	}
	if err := config.Validate(); err != nil {
		logrus.Fatalf("Invalid settings: %v", err)
	}

	setupLogging(config.Log.Debug)
	logrus.WithFields(logrus.Fields{
		"kind":       config.Data.Kind,
		"file":       config.DataFile(),
		"duplicates": config.Tree.Duplicates,
	}).Debug("configuration resolved")
	return config
}

func loadOptions(config *Config) records.LoadOptions {
	opts := records.LoadOptions{Logger: logrus.StandardLogger()}
	if config.UI.Progress {
		opts.Progress = os.Stderr
	}
	return opts
}

// mustLoad builds the catalog and loads the configured file, exiting on failure.
func mustLoad(config *Config) Catalog {
	catalog, err := newCatalog(config)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	report, err := catalog.Load(config.DataFile(), loadOptions(config))
	if err != nil {
		logrus.Fatalf("Error loading %s: %v", config.DataFile(), err)
	}
	logrus.WithField("elapsed", report.Elapsed).Infof("%s", report)
	return catalog
}

func printLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}

func main() {
	asciiLogo := `
 _     _     _ _
| |__ (_) __| | |_ _ __ ___  ___
| '_ \| |/ _' | __| '__/ _ \/ _ \
| |_) | | (_| | |_| | |  __/  __/
|_.__/|_|\__,_|\__|_|  \___|\___|
Bids and courses in a binary search tree [Version: %s%s%s]

`
	asciiLogo = fmt.Sprintf(asciiLogo, Green, version, Reset)

	gf := &globalFlags{}

	runUI := func(cmd *cobra.Command, args []string) {
		config := resolveConfig(cmd, gf)
		catalog, err := newCatalog(config)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runBubbleTeaApp(catalog, config); err != nil {
			logrus.Fatalf("Error running menu: %v", err)
		}
	}

	var cmdRun = &cobra.Command{
		Use:   "run",
		Short: "Opens the menu UI",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Run opens the interactive menu to load, display, find and remove records`),
		Args:  cobra.NoArgs,
		Run:   runUI,
	}

	var cmdShell = &cobra.Command{
		Use:   "shell",
		Short: "Starts the numbered text menu",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Shell reads menu choices and commands such as "find 98223" from standard input`),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			config := resolveConfig(cmd, gf)
			catalog, err := newCatalog(config)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Welcome to bidtree.")
			shell := NewShell(catalog, config, loadOptions(config), cmd.InOrStdin(), cmd.OutOrStdout())
			if err := shell.Run(); err != nil {
				logrus.Fatalf("Error reading input: %v", err)
			}
		},
	}

	var cmdList = &cobra.Command{
		Use:   "list",
		Short: "Prints every record",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			order, err := tree.ParseOrder(cmd.Flag("order").Value.String())
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			config := resolveConfig(cmd, gf)
			catalog := mustLoad(config)
			printLines(cmd.OutOrStdout(), catalog.Lines(order))
		},
	}
	cmdList.Flags().String("order", "in", "traversal order: in, pre or post")

	var cmdFind = &cobra.Command{
		Use:   "find KEY...",
		Short: "Prints the records stored under the given keys",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			config := resolveConfig(cmd, gf)
			catalog := mustLoad(config)
			out := cmd.OutOrStdout()
			for _, key := range args {
				if text, ok := catalog.Describe(key); ok {
					fmt.Fprintln(out, text)
				} else {
					fmt.Fprintf(out, "%s %s not found.\n", keyLabel(catalog.Kind()), key)
				}
			}
		},
	}

	var cmdRemove = &cobra.Command{
		Use:   "remove KEY...",
		Short: "Removes records and prints what is left",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			config := resolveConfig(cmd, gf)
			catalog := mustLoad(config)
			for _, key := range args {
				if !catalog.Remove(key) {
					logrus.WithField("key", key).Warn("not found, nothing removed")
				}
			}
			printLines(cmd.OutOrStdout(), catalog.Lines(tree.InOrder))
		},
	}

	var cmdCourse = &cobra.Command{
		Use:   "course KEY",
		Short: "Prints a course and its prerequisites",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if !cmd.Flags().Changed("kind") {
				_ = cmd.Flags().Set("kind", kindCourses)
			}
			config := resolveConfig(cmd, gf)
			catalog := mustLoad(config)
			if text, ok := catalog.Describe(args[0]); ok {
				fmt.Fprintln(cmd.OutOrStdout(), text)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Course not found.")
			}
		},
	}

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print bidtree usage guide",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Usage displays the bidtree CLI usage guide`),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getHelpMessage())
		},
	}

	var cmdSettings = &cobra.Command{
		Use:   "settings",
		Short: "Show the configuration, creating the default file if missing",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := displaySettings(cmd.OutOrStdout(), gf.configPath); err != nil {
				logrus.Fatalf("%v", err)
			}
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print bidtree version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	var rootCmd = &cobra.Command{
		Use:     "bidtree",
		Version: version,
		Long:    asciiLogo,
		Args:    cobra.NoArgs,
		// Default to the menu UI when no subcommand is provided
		Run: runUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&gf.configPath, "config", "", "config file (default ~/"+configFileName+")")
	pf.StringVar(&gf.file, "file", "", "CSV file to load")
	pf.StringVar(&gf.kind, "kind", kindBids, "data set kind: bids or courses")
	pf.StringVar(&gf.duplicates, "duplicates", "reject", "duplicate key policy: reject, allow or replace")
	pf.BoolVar(&gf.debug, "debug", false, "enable debug logging")
	pf.BoolVar(&gf.progress, "progress", true, "show a progress bar while loading")

	rootCmd.AddCommand(cmdRun, cmdShell, cmdList, cmdFind, cmdRemove, cmdCourse, cmdUsage, cmdSettings, cmdVersion)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
