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
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	config := testConfig(kindBids, writeTemp(t, "bids.csv", testBids))
	catalog, err := newCatalog(config)
	if err != nil {
		t.Fatalf("newCatalog: %v", err)
	}
	m := InitialModel(catalog, config)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	m = press(t, m, "1")
	if !m.loading {
		t.Fatal("model not loading after choosing Load Data")
	}
	msg := loadCmd(catalog, config.DataFile())()
	next, _ = m.Update(msg)
	m = next.(Model)
	if m.loading || !catalog.Loaded() {
		t.Fatal("load did not complete")
	}
	return m
}

func TestModelRequiresLoad(t *testing.T) {
	config := testConfig(kindBids, "unused.csv")
	catalog, _ := newCatalog(config)
	m := InitialModel(catalog, config)
	m = press(t, m, "2")
	if !strings.Contains(m.status, "Please load data first") {
		t.Errorf("status = %q", m.status)
	}
}

func TestModelDisplayAndCycleOrder(t *testing.T) {
	m := loadedModel(t)

	m = press(t, m, "2")
	want := "98001: Lamp | 5 | General Fund\n98109: Table | 37 | General Fund\n98223: Chair | 12.5 | Enterprise"
	if m.lastText != want {
		t.Errorf("in-order output = %q, want %q", m.lastText, want)
	}

	m = press(t, m, "o")
	if !strings.HasPrefix(m.lastText, "98109: Table") {
		t.Errorf("pre-order output should start at the root, got %q", m.lastText)
	}

	if view := m.View(); !strings.Contains(view, "(pre)") {
		t.Errorf("view does not show the current order:\n%s", view)
	}
}

func TestModelFindAndRemove(t *testing.T) {
	m := loadedModel(t)

	m = press(t, m, "3")
	if !m.asking {
		t.Fatal("Find did not ask for a key")
	}
	if m.keyInput.Value() != "98223" {
		t.Errorf("default key = %q, want 98223", m.keyInput.Value())
	}
	m = press(t, m, "enter")
	if m.lastText != "98223: Chair | 12.5 | Enterprise" {
		t.Errorf("found text = %q", m.lastText)
	}

	m = press(t, m, "4")
	m.keyInput.SetValue("98109")
	m = press(t, m, "enter")
	if !strings.Contains(m.status, "98109 removed") {
		t.Errorf("status = %q", m.status)
	}
	if strings.Contains(m.lastText, "98109") {
		t.Errorf("listing still shows the removed bid: %q", m.lastText)
	}

	m = press(t, m, "3")
	m.keyInput.SetValue("98109")
	m = press(t, m, "enter")
	if !strings.Contains(m.status, "not found") {
		t.Errorf("status = %q", m.status)
	}
}

func TestModelEscapeCancelsKeyInput(t *testing.T) {
	m := loadedModel(t)
	m = press(t, m, "4")
	m = press(t, m, "esc")
	if m.asking {
		t.Error("esc did not cancel the key prompt")
	}
	if m.catalog.Stats().Records != 3 {
		t.Error("cancelled remove changed the catalog")
	}
}
