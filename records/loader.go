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

package records

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cybrota/bidtree/tree"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

// ErrMalformedRow aborts a load: a row did not carry the required fields.
var ErrMalformedRow = errors.New("malformed row")

// Bid export column positions.
const (
	bidTitleColumn  = 0
	bidIDColumn     = 1
	bidAmountColumn = 4
	bidFundColumn   = 8
	bidMinColumns   = bidFundColumn + 1
)

// Inserter accepts one record at a time. A duplicate key is reported with an
// error wrapping tree.ErrDuplicateKey.
type Inserter[R any] interface {
	Insert(r R) error
}

// LoadOptions tunes logging and progress output of a load.
type LoadOptions struct {
	// Logger receives duplicate and amount warnings. Defaults to the logrus
	// standard logger.
	Logger logrus.FieldLogger
	// Progress, when set, receives a progress spinner.
	Progress io.Writer
}

// LoadReport summarizes a finished or aborted load.
type LoadReport struct {
	Rows       int
	Inserted   int
	Duplicates int
	Elapsed    time.Duration
}

func (r LoadReport) String() string {
	return fmt.Sprintf("%d rows read, %d inserted, %d duplicates skipped in %s",
		r.Rows, r.Inserted, r.Duplicates, r.Elapsed.Round(time.Microsecond))
}

type loadRun struct {
	log    logrus.FieldLogger
	bar    *progressbar.ProgressBar
	start  time.Time
	report LoadReport
}

func newLoadRun(desc string, opts LoadOptions) *loadRun {
	run := &loadRun{log: opts.Logger, start: time.Now()}
	if run.log == nil {
		run.log = logrus.StandardLogger()
	}
	if opts.Progress != nil {
		run.bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription(desc),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	return run
}

// insert hands r to the sink and counts the outcome. Duplicates are logged
// and skipped; any other error stops the load.
func insert[R any](run *loadRun, sink Inserter[R], r R, key string, line int) error {
	run.report.Rows++
	if run.bar != nil {
		_ = run.bar.Add(1)
	}
	err := sink.Insert(r)
	switch {
	case err == nil:
		run.report.Inserted++
		return nil
	case errors.Is(err, tree.ErrDuplicateKey):
		run.report.Duplicates++
		run.log.WithFields(logrus.Fields{"line": line, "key": key}).Warn("duplicate key, skipping row")
		return nil
	default:
		return fmt.Errorf("line %d: %w", line, err)
	}
}

func (run *loadRun) finish() LoadReport {
	if run.bar != nil {
		_ = run.bar.Finish()
	}
	run.report.Elapsed = time.Since(run.start)
	return run.report
}

// LoadBids reads a bid export with a header row. Each row needs at least
// bidMinColumns fields; a shorter row aborts the whole load with
// ErrMalformedRow. Rows inserted before the failure stay in sink.
func LoadBids(r io.Reader, sink Inserter[Bid], opts LoadOptions) (LoadReport, error) {
	run := newLoadRun("Loading bids", opts)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return run.finish(), nil
		}
		return run.finish(), fmt.Errorf("reading header: %w", err)
	}

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return run.finish(), err
		}
		line, _ := cr.FieldPos(0)
		if len(fields) < bidMinColumns {
			return run.finish(), fmt.Errorf("line %d: %w: want at least %d fields, got %d",
				line, ErrMalformedRow, bidMinColumns, len(fields))
		}

		bid := Bid{
			ID:    NormalizeKey(fields[bidIDColumn]),
			Title: strings.TrimSpace(fields[bidTitleColumn]),
			Fund:  strings.TrimSpace(fields[bidFundColumn]),
		}
		amount, err := ParseAmount(fields[bidAmountColumn])
		if err != nil {
			run.log.WithFields(logrus.Fields{"line": line, "key": bid.ID}).Warnf("%v, using 0", err)
		}
		bid.Amount = amount

		if err := insert(run, sink, bid, bid.ID, line); err != nil {
			return run.finish(), err
		}
	}
	return run.finish(), nil
}

// LoadCourses reads the advising catalog: "NUMBER,Title[,PREREQ...]" per
// line, no header, blank lines ignored. A line with fewer than two fields
// aborts the load with ErrMalformedRow.
func LoadCourses(r io.Reader, sink Inserter[Course], opts LoadOptions) (LoadReport, error) {
	run := newLoadRun("Loading courses", opts)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		tokens := strings.Split(text, ",")
		if len(tokens) < 2 {
			return run.finish(), fmt.Errorf("line %d: %w: each row needs at least a course number and title",
				line, ErrMalformedRow)
		}

		course := Course{
			Number: NormalizeKey(tokens[0]),
			Title:  strings.TrimSpace(tokens[1]),
		}
		for _, tok := range tokens[2:] {
			if pre := NormalizeKey(tok); pre != "" {
				course.Prerequisites = append(course.Prerequisites, pre)
			}
		}

		if err := insert(run, sink, course, course.Number, line); err != nil {
			return run.finish(), err
		}
	}
	if err := scanner.Err(); err != nil {
		return run.finish(), err
	}
	return run.finish(), nil
}

// LoadBidsFile opens path and loads it with LoadBids.
func LoadBidsFile(path string, sink Inserter[Bid], opts LoadOptions) (LoadReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return LoadReport{}, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer file.Close()
	return LoadBids(file, sink, opts)
}

// LoadCoursesFile opens path and loads it with LoadCourses.
func LoadCoursesFile(path string, sink Inserter[Course], opts LoadOptions) (LoadReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return LoadReport{}, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer file.Close()
	return LoadCourses(file, sink, opts)
}
