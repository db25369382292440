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
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/cybrota/bidtree/records"
	"github.com/cybrota/bidtree/tree"
	"github.com/sirupsen/logrus"
)

type menuAction int

const (
	actionLoad menuAction = iota
	actionDisplay
	actionFind
	actionRemove
	actionStats
	actionExit
)

var menuItems = []struct {
	action menuAction
	label  string
}{
	{actionLoad, "Load Data"},
	{actionDisplay, "Display All"},
	{actionFind, "Find"},
	{actionRemove, "Remove"},
	{actionStats, "Stats"},
	{actionExit, "Exit"},
}

// loadDoneMsg carries the result of a load started from the menu.
type loadDoneMsg struct {
	report   records.LoadReport
	err      error
	warnings string
}

// Model is the Bubble Tea state of the menu UI.
type Model struct {
	catalog Catalog
	config  *Config

	cursor   int
	order    tree.Order
	pending  menuAction // action waiting for a key in keyInput
	asking   bool
	loading  bool
	status   string
	lastText string

	keyInput textinput.Model
	output   viewport.Model

	styles          *Styles
	glamourRenderer *glamour.TermRenderer

	width  int
	height int
}

// InitialModel creates the menu model around catalog
func InitialModel(catalog Catalog, config *Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a key and press enter..."
	ti.CharLimit = 64
	ti.Width = 40

	vp := viewport.New(0, 0)
	vp.SetContent("Choose \"Load Data\" to read " + config.DataFile())

	glamourRenderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)

	return Model{
		catalog:         catalog,
		config:          config,
		order:           tree.InOrder,
		keyInput:        ti,
		output:          vp,
		styles:          NewStyles(),
		glamourRenderer: glamourRenderer,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.asking {
			return m.updateKeyInput(msg)
		}
		return m.updateMenu(msg)

	case loadDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.status = m.styles.ErrorMessage.Render("Load failed: " + msg.err.Error())
			m.setOutput(msg.warnings)
			return m, nil
		}
		m.status = m.styles.SuccessMessage.Render(msg.report.String())
		if msg.warnings != "" {
			m.setOutput(msg.warnings)
		} else {
			m.setOutput("Data loaded successfully.")
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
	}

	var cmd tea.Cmd
	m.output, cmd = m.output.Update(msg)
	return m, cmd
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
		return m, nil
	case "o":
		m.order = (m.order + 1) % 3
		if !m.loading && m.catalog.Loaded() {
			m.showListing()
		}
		return m, nil
	case "ctrl+y":
		if m.lastText != "" {
			if err := clipboard.WriteAll(m.lastText); err != nil {
				m.status = m.styles.ErrorMessage.Render("Copy failed: " + err.Error())
			} else {
				m.status = m.styles.SuccessMessage.Render("Copied to clipboard")
			}
		}
		return m, nil
	case "1", "2", "3", "4", "5", "9":
		m.cursor = menuIndexForKey(msg.String())
		return m.runAction(menuItems[m.cursor].action)
	case "enter":
		return m.runAction(menuItems[m.cursor].action)
	}

	var cmd tea.Cmd
	m.output, cmd = m.output.Update(msg)
	return m, cmd
}

func menuIndexForKey(k string) int {
	if k == "9" {
		return len(menuItems) - 1
	}
	return int(k[0] - '1')
}

func (m Model) runAction(action menuAction) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	switch action {
	case actionExit:
		return m, tea.Quit
	case actionLoad:
		m.loading = true
		m.status = m.styles.Muted.Render("Loading " + m.config.DataFile() + "...")
		return m, loadCmd(m.catalog, m.config.DataFile())
	}

	if !m.catalog.Loaded() {
		m.status = m.styles.ErrorMessage.Render("Please load data first.")
		return m, nil
	}

	switch action {
	case actionDisplay:
		m.showListing()
	case actionStats:
		var buf bytes.Buffer
		printStats(&buf, m.catalog)
		m.setOutput(buf.String())
	case actionFind, actionRemove:
		m.pending = action
		m.asking = true
		if m.catalog.Kind() == kindBids {
			m.keyInput.SetValue(m.config.Data.DefaultBidKey)
		} else {
			m.keyInput.SetValue("")
		}
		m.keyInput.CursorEnd()
		return m, m.keyInput.Focus()
	}
	return m, nil
}

func (m Model) updateKeyInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.asking = false
		m.keyInput.Blur()
		return m, nil
	case "enter":
		key := strings.TrimSpace(m.keyInput.Value())
		m.asking = false
		m.keyInput.Blur()
		if key == "" {
			return m, nil
		}
		label := keyLabel(m.catalog.Kind())
		switch m.pending {
		case actionFind:
			start := time.Now()
			text, ok := m.catalog.Describe(key)
			elapsed := time.Since(start).Round(time.Microsecond)
			if !ok {
				m.status = m.styles.ErrorMessage.Render(fmt.Sprintf("%s %s not found.", label, key))
				return m, nil
			}
			m.status = m.styles.Muted.Render(fmt.Sprintf("time: %s", elapsed))
			m.showRecord(text)
		case actionRemove:
			if m.catalog.Remove(key) {
				m.status = m.styles.SuccessMessage.Render(fmt.Sprintf("%s %s removed.", label, key))
				m.showListing()
			} else {
				m.status = m.styles.ErrorMessage.Render(fmt.Sprintf("%s %s not found.", label, key))
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

// loadCmd runs the load off the update loop. Warnings are collected instead
// of written to the terminal, which belongs to the UI.
func loadCmd(catalog Catalog, path string) tea.Cmd {
	return func() tea.Msg {
		var buf bytes.Buffer
		logger := logrus.New()
		logger.SetOutput(&buf)
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

		report, err := catalog.Load(path, records.LoadOptions{Logger: logger})
		return loadDoneMsg{report: report, err: err, warnings: buf.String()}
	}
}

func (m *Model) setOutput(text string) {
	m.lastText = text
	m.output.SetContent(text)
	m.output.GotoTop()
}

func (m *Model) showListing() {
	lines := m.catalog.Lines(m.order)
	if len(lines) == 0 {
		m.setOutput("No records.")
		return
	}
	m.setOutput(strings.Join(lines, "\n"))
}

// showRecord renders a found record as markdown when a renderer is available.
func (m *Model) showRecord(text string) {
	m.lastText = text
	if m.glamourRenderer != nil {
		md := "### " + strings.ReplaceAll(text, "\n", "\n\n")
		if rendered, err := m.glamourRenderer.Render(md); err == nil {
			m.output.SetContent(rendered)
			m.output.GotoTop()
			return
		}
	}
	m.output.SetContent(text)
	m.output.GotoTop()
}

func (m *Model) updateLayout() {
	menuWidth := 26
	outputWidth := m.width - menuWidth - 4
	if outputWidth < 10 {
		outputWidth = 10
	}
	m.output.Width = outputWidth - 2
	m.output.Height = max(m.height-8, 3)
	m.keyInput.Width = menuWidth - 4
}

func (m Model) View() string {
	if m.width < 40 || m.height < 12 {
		return "Terminal too small. Please resize your terminal."
	}

	menuWidth := 26
	bodyHeight := m.height - 6

	var items []string
	for i, item := range menuItems {
		n := i + 1
		if item.action == actionExit {
			n = 9
		}
		label := fmt.Sprintf("%d. %s", n, item.label)
		if item.action == actionDisplay {
			label = fmt.Sprintf("%d. %s (%s)", n, item.label, m.order)
		}
		if i == m.cursor {
			items = append(items, m.styles.MenuSelected.Render("▸ "+label))
		} else {
			items = append(items, m.styles.MenuItem.Render(label))
		}
	}
	menuContent := strings.Join(items, "\n")
	if m.asking {
		menuContent += "\n\n" + m.keyInput.View()
	}

	menuStyle := m.styles.BorderFocused
	outputStyle := m.styles.BorderBlurred
	if m.asking {
		menuStyle, outputStyle = m.styles.BorderBlurred, m.styles.BorderFocused
	}

	menuBox := menuStyle.
		Width(menuWidth).
		Height(bodyHeight).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Render(" 🌳 "+strings.ToUpper(m.catalog.Kind()[:1])+m.catalog.Kind()[1:]+" "),
			menuContent,
		))

	outputBox := outputStyle.
		Width(m.width - menuWidth - 4).
		Height(bodyHeight).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Render(" 📋 Output "),
			m.output.View(),
		))

	main := lipgloss.JoinHorizontal(lipgloss.Top, menuBox, outputBox)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		main,
		" "+m.status,
		m.renderHelp(),
	)
}

func (m Model) renderHelp() string {
	keys := []string{"enter", "1-5/9", "o", "ctrl+y", "pgup/pgdn", "esc"}
	descs := []string{"run", "choose", "cycle order", "copy output", "scroll", "quit"}

	var helpEntries []string
	for i, key := range keys {
		helpEntries = append(helpEntries,
			fmt.Sprintf("%s %s",
				m.styles.HelpKey.Render(key),
				m.styles.HelpDesc.Render(descs[i])))
	}

	return lipgloss.NewStyle().
		Padding(0, 0, 0, 1).
		Render(strings.Join(helpEntries, " • "))
}

// runBubbleTeaApp starts the menu UI
func runBubbleTeaApp(catalog Catalog, config *Config) error {
	InitializeColors()

	program := tea.NewProgram(
		InitialModel(catalog, config),
		tea.WithAltScreen(),
		tea.WithOutput(os.Stdout),
	)

	_, err := program.Run()
	return err
}
