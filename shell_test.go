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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cybrota/bidtree/records"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

const testBids = `Title,ArticleID,Department,Close Date,Winning Bid,Inventory ID,Vehicle ID,Receipt Number,Fund
Table,98109,General Fund,11/15/2016,$37.00,,,,General Fund
Chair,98223,Enterprise,11/16/2016,$12.50,,,,Enterprise
Lamp,98001,General Fund,11/17/2016,$5,,,,General Fund
`

const testCourses = `CSCI100,Introduction to Computer Science
CSCI200,Data Structures,CSCI100
CSCI300,Introduction to Algorithms,CSCI200,MATH201
MATH201,Discrete Mathematics
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func testConfig(kind, path string) *Config {
	config := defaultConfig()
	config.Data.Kind = kindBids
	config.Data.BidsFile = path
	if kind == kindCourses {
		config.Data.Kind = kindCourses
		config.Data.CoursesFile = path
	}
	config.UI.Progress = false
	return &config
}

func quietOptions() records.LoadOptions {
	logger, _ := logtest.NewNullLogger()
	return records.LoadOptions{Logger: logger}
}

func runShell(t *testing.T, config *Config, input string) string {
	t.Helper()
	catalog, err := newCatalog(config)
	if err != nil {
		t.Fatalf("newCatalog: %v", err)
	}
	var out strings.Builder
	if err := NewShell(catalog, config, quietOptions(), strings.NewReader(input), &out).Run(); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	return out.String()
}

func TestShellRequiresLoad(t *testing.T) {
	out := runShell(t, testConfig(kindBids, "unused.csv"), "2\n3\n\n9\n")
	if strings.Count(out, "Please load data first") != 2 {
		t.Errorf("expected two load-first notices, got:\n%s", out)
	}
	if !strings.Contains(out, "Good bye.") {
		t.Errorf("missing farewell:\n%s", out)
	}
}

func TestShellBidSession(t *testing.T) {
	path := writeTemp(t, "bids.csv", testBids)
	out := runShell(t, testConfig(kindBids, path), strings.Join([]string{
		"1",
		"2",
		"3",
		"", // accept the default key 98223
		"find 99999",
		"4",
		"98223",
		"list",
		"7",
		"9",
	}, "\n")+"\n")

	for _, want := range []string{
		"3 rows read, 3 inserted, 0 duplicates skipped",
		"98001: Lamp | 5 | General Fund\n98109: Table | 37 | General Fund\n98223: Chair | 12.5 | Enterprise\n",
		"Bid Id 99999 not found.",
		"Bid Id 98223 removed.",
		"98001: Lamp | 5 | General Fund\n98109: Table | 37 | General Fund\n\n",
		"7 is not a valid option.",
		"time: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShellTraversalOrders(t *testing.T) {
	path := writeTemp(t, "bids.csv", testBids)
	out := runShell(t, testConfig(kindBids, path), "load\nlist pre\nlist post\nexit\n")

	pre := "98109: Table | 37 | General Fund\n98001: Lamp | 5 | General Fund\n98223: Chair | 12.5 | Enterprise\n"
	post := "98001: Lamp | 5 | General Fund\n98223: Chair | 12.5 | Enterprise\n98109: Table | 37 | General Fund\n"
	if !strings.Contains(out, pre) {
		t.Errorf("pre-order listing missing:\n%s", out)
	}
	if !strings.Contains(out, post) {
		t.Errorf("post-order listing missing:\n%s", out)
	}
}

func TestShellCourses(t *testing.T) {
	path := writeTemp(t, "courses.csv", testCourses)
	out := runShell(t, testConfig(kindCourses, path), "1\nfind ' csci300 '\n2\n9\n")

	want := "CSCI300, Introduction to Algorithms\nPrerequisites: CSCI200 (Data Structures), MATH201 (Discrete Mathematics)"
	if !strings.Contains(out, want) {
		t.Errorf("course description missing:\n%s", out)
	}
	if !strings.Contains(out, "CSCI100, Introduction to Computer Science\nCSCI200, Data Structures\nCSCI300, Introduction to Algorithms\nMATH201, Discrete Mathematics\n") {
		t.Errorf("course listing missing:\n%s", out)
	}
}

func TestShellLoadFailureKeepsDataUnloaded(t *testing.T) {
	path := writeTemp(t, "courses.csv", "CSCI100,Intro\nBROKEN\n")
	out := runShell(t, testConfig(kindCourses, path), "1\n2\n9\n")
	if !strings.Contains(out, "malformed row") {
		t.Errorf("missing load error:\n%s", out)
	}
	if !strings.Contains(out, "Please load data first") {
		t.Errorf("display ran after a failed load:\n%s", out)
	}
}

func TestShellEndOfInput(t *testing.T) {
	out := runShell(t, testConfig(kindBids, "unused.csv"), "order pre\n")
	if !strings.Contains(out, "Traversal order set to pre") || !strings.Contains(out, "Good bye.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
