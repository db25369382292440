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
	"path/filepath"
	"time"

	"github.com/cybrota/bidtree/store"
	"github.com/cybrota/bidtree/tree"
	"gopkg.in/yaml.v3"
)

const (
	kindBids    = "bids"
	kindCourses = "courses"

	configFileName = ".bidtree.yaml"
)

type DataConfig struct {
	Kind          string `yaml:"kind"`
	BidsFile      string `yaml:"bids_file"`
	CoursesFile   string `yaml:"courses_file"`
	DefaultBidKey string `yaml:"default_bid_key"`
}

type TreeConfig struct {
	Duplicates string `yaml:"duplicates"`
}

type SearchConfig struct {
	BloomSize   uint          `yaml:"bloom_size"`
	BloomHashes uint          `yaml:"bloom_hashes"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
}

type LogConfig struct {
	Debug bool `yaml:"debug"`
}

type UIConfig struct {
	Progress bool `yaml:"progress"`
}

type Config struct {
	Data   DataConfig   `yaml:"data"`
	Tree   TreeConfig   `yaml:"tree"`
	Search SearchConfig `yaml:"search"`
	Log    LogConfig    `yaml:"log"`
	UI     UIConfig     `yaml:"ui"`
}

func defaultConfig() Config {
	return Config{
		Data: DataConfig{
			Kind:          kindBids,
			BidsFile:      "eBid_Monthly_Sales.csv",
			CoursesFile:   "CS 300 ABCU_Advising_Program_Input.csv",
			DefaultBidKey: "98223",
		},
		Tree: TreeConfig{
			Duplicates: tree.RejectDuplicates.String(),
		},
		Search: SearchConfig{
			BloomSize:   store.DefaultBloomSize,
			BloomHashes: store.DefaultBloomHashes,
			CacheTTL:    store.DefaultCacheTTL,
		},
		UI: UIConfig{
			Progress: true,
		},
	}
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

// LoadConfig reads the YAML file at path, or ~/.bidtree.yaml when path is
// empty. A missing file yields the defaults. Keys absent from the file keep
// their default values.
func LoadConfig(path string) (*Config, error) {
	config := defaultConfig()

	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return &config, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &config, nil
	}
	if err != nil {
		return &config, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		fallback := defaultConfig()
		return &fallback, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		fallback := defaultConfig()
		return &fallback, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &config, nil
}

// Validate checks the values that have a closed set of choices.
func (c *Config) Validate() error {
	if c.Data.Kind != kindBids && c.Data.Kind != kindCourses {
		return fmt.Errorf("data.kind must be %q or %q, got %q", kindBids, kindCourses, c.Data.Kind)
	}
	if _, err := tree.ParseDuplicatePolicy(c.Tree.Duplicates); err != nil {
		return fmt.Errorf("tree.duplicates: %w", err)
	}
	return nil
}

// DataFile is the CSV file loaded for the configured kind.
func (c *Config) DataFile() string {
	if c.Data.Kind == kindCourses {
		return c.Data.CoursesFile
	}
	return c.Data.BidsFile
}

func (c *Config) StoreConfig() store.Config {
	policy, _ := tree.ParseDuplicatePolicy(c.Tree.Duplicates)
	return store.Config{
		Duplicates:  policy,
		BloomSize:   c.Search.BloomSize,
		BloomHashes: c.Search.BloomHashes,
		CacheTTL:    c.Search.CacheTTL,
	}
}

func writeConfigFile(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// displaySettings prints the effective configuration, creating the default
// file first when none exists.
func displaySettings(w io.Writer, path string) error {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	created := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		def := defaultConfig()
		if err := writeConfigFile(path, &def); err != nil {
			return err
		}
		created = true
	}

	config, err := LoadConfig(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "🔧 bidtree configuration\n")
	fmt.Fprintf(w, "═══════════════════════\n\n")
	if created {
		fmt.Fprintf(w, "📍 Config file: %s (newly created)\n\n", path)
	} else {
		fmt.Fprintf(w, "📍 Config file: %s\n\n", path)
	}

	out, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s", out)
	fmt.Fprintf(w, "\n💡 tree.duplicates accepts %s%s%s, %s%s%s or %s%s%s\n",
		Green, tree.RejectDuplicates, Reset,
		Green, tree.AllowDuplicates, Reset,
		Green, tree.ReplaceDuplicates, Reset)
	return nil
}
