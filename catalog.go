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

	"github.com/cybrota/bidtree/records"
	"github.com/cybrota/bidtree/store"
	"github.com/cybrota/bidtree/tree"
)

// Catalog is what the menus and commands see of a loaded data set.
type Catalog interface {
	Kind() string
	// Load replaces the contents with the records read from path. On error
	// the catalog is left empty and not loaded.
	Load(path string, opts records.LoadOptions) (records.LoadReport, error)
	Loaded() bool
	// Lines renders every record, one line each, in the given order.
	Lines(order tree.Order) []string
	// Describe renders the record under key, or reports false.
	Describe(key string) (string, bool)
	Remove(key string) bool
	Stats() store.Stats
}

func newCatalog(config *Config) (Catalog, error) {
	switch config.Data.Kind {
	case kindBids:
		return &bidCatalog{store: store.New[records.Bid](config.StoreConfig())}, nil
	case kindCourses:
		return &courseCatalog{store: store.New[records.Course](config.StoreConfig())}, nil
	}
	return nil, fmt.Errorf("unknown data kind %q", config.Data.Kind)
}

type bidCatalog struct {
	store  *store.Store[records.Bid]
	loaded bool
}

func (c *bidCatalog) Kind() string { return kindBids }

func (c *bidCatalog) Loaded() bool { return c.loaded }

func (c *bidCatalog) Load(path string, opts records.LoadOptions) (records.LoadReport, error) {
	c.store.Reset()
	report, err := records.LoadBidsFile(path, c.store, opts)
	if err != nil {
		c.store.Reset()
		c.loaded = false
		return report, err
	}
	c.loaded = true
	return report, nil
}

func (c *bidCatalog) Lines(order tree.Order) []string {
	bids := c.store.Records(order)
	lines := make([]string, 0, len(bids))
	for _, b := range bids {
		lines = append(lines, b.String())
	}
	return lines
}

func (c *bidCatalog) Describe(key string) (string, bool) {
	b, ok := c.store.Search(records.NormalizeKey(key))
	if !ok {
		return "", false
	}
	return b.String(), true
}

func (c *bidCatalog) Remove(key string) bool {
	return c.store.Remove(records.NormalizeKey(key))
}

func (c *bidCatalog) Stats() store.Stats { return c.store.Stats() }

type courseCatalog struct {
	store  *store.Store[records.Course]
	loaded bool
}

func (c *courseCatalog) Kind() string { return kindCourses }

func (c *courseCatalog) Loaded() bool { return c.loaded }

func (c *courseCatalog) Load(path string, opts records.LoadOptions) (records.LoadReport, error) {
	c.store.Reset()
	report, err := records.LoadCoursesFile(path, c.store, opts)
	if err != nil {
		c.store.Reset()
		c.loaded = false
		return report, err
	}
	c.loaded = true
	return report, nil
}

func (c *courseCatalog) Lines(order tree.Order) []string {
	courses := c.store.Records(order)
	lines := make([]string, 0, len(courses))
	for _, course := range courses {
		lines = append(lines, course.String())
	}
	return lines
}

// Describe resolves each prerequisite against the same store.
func (c *courseCatalog) Describe(key string) (string, bool) {
	course, ok := c.store.Search(records.NormalizeKey(key))
	if !ok {
		return "", false
	}
	return records.DescribeCourse(course, c.store.Search), true
}

func (c *courseCatalog) Remove(key string) bool {
	return c.store.Remove(records.NormalizeKey(key))
}

func (c *courseCatalog) Stats() store.Stats { return c.store.Stats() }
