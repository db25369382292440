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
	"time"

	"github.com/cybrota/bidtree/tree"
	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig returned %v", err)
	}
	if diff := cmp.Diff(defaultConfig(), *config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeTemp(t, "bidtree.yaml", `
data:
  kind: courses
  courses_file: catalog.csv
tree:
  duplicates: allow
search:
  cache_ttl: 90s
log:
  debug: true
`)
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned %v", err)
	}

	want := defaultConfig()
	want.Data.Kind = kindCourses
	want.Data.CoursesFile = "catalog.csv"
	want.Tree.Duplicates = "allow"
	want.Search.CacheTTL = 90 * time.Second
	want.Log.Debug = true
	if diff := cmp.Diff(want, *config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	if config.DataFile() != "catalog.csv" {
		t.Errorf("DataFile() = %q", config.DataFile())
	}
	sc := config.StoreConfig()
	if sc.Duplicates != tree.AllowDuplicates || sc.CacheTTL != 90*time.Second {
		t.Errorf("StoreConfig() = %+v", sc)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	testCases := []struct {
		Name    string
		Content string
	}{
		{"Bad YAML", "data: [unclosed"},
		{"Unknown Kind", "data:\n  kind: cars\n"},
		{"Unknown Policy", "tree:\n  duplicates: merge\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			config, err := LoadConfig(writeTemp(t, "bad.yaml", tc.Content))
			if err == nil {
				t.Fatal("LoadConfig returned no error")
			}
			if diff := cmp.Diff(defaultConfig(), *config); diff != "" {
				t.Errorf("fallback config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDisplaySettingsCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	var out strings.Builder
	if err := displaySettings(&out, path); err != nil {
		t.Fatalf("displaySettings returned %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if !strings.Contains(out.String(), "newly created") || !strings.Contains(out.String(), "duplicates: reject") {
		t.Errorf("unexpected settings output:\n%s", out.String())
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if diff := cmp.Diff(defaultConfig(), *config); diff != "" {
		t.Errorf("written config mismatch (-want +got):\n%s", diff)
	}
}
