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

// Package records holds the payloads stored in the tree and the CSV loaders
// that produce them.
package records

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Bid is one row of the eBid monthly sales export.
type Bid struct {
	ID     string
	Title  string
	Fund   string
	Amount float64
}

func (b Bid) Key() string { return b.ID }

// String renders the classic one-line listing: "id: title | amount | fund".
func (b Bid) String() string {
	return fmt.Sprintf("%s: %s | %s | %s", b.ID, b.Title, strconv.FormatFloat(b.Amount, 'f', -1, 64), b.Fund)
}

// Course is one row of the advising program catalog.
type Course struct {
	Number        string
	Title         string
	Prerequisites []string
}

func (c Course) Key() string { return c.Number }

// String renders "NUMBER, Title".
func (c Course) String() string {
	return c.Number + ", " + c.Title
}

// NormalizeKey trims surrounding whitespace and upper-cases s so keys typed by
// a user compare equal to keys read from a file.
func NormalizeKey(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}

// ParseAmount reads a currency string such as "$1,234.50". Text that still is
// not a number yields 0 together with the parse error.
func ParseAmount(s string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return v, nil
}

// DescribeCourse renders a course followed by its prerequisites. Each
// prerequisite is resolved through lookup; unknown ones are printed by number.
func DescribeCourse(c Course, lookup func(string) (Course, bool)) string {
	var sb strings.Builder
	sb.WriteString(c.String())
	sb.WriteString("\nPrerequisites: ")
	if len(c.Prerequisites) == 0 {
		sb.WriteString("None")
		return sb.String()
	}
	for i, num := range c.Prerequisites {
		if i > 0 {
			sb.WriteString(", ")
		}
		if pre, ok := lookup(num); ok {
			fmt.Fprintf(&sb, "%s (%s)", pre.Number, pre.Title)
		} else {
			sb.WriteString(num)
		}
	}
	return sb.String()
}
