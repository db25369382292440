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
	"time"
)

func keyLabel(kind string) string {
	if kind == kindCourses {
		return "Course"
	}
	return "Bid Id"
}

func printElapsed(w io.Writer, d time.Duration) {
	fmt.Fprintf(w, "time: %s\n", d.Round(time.Microsecond))
}

func printStats(w io.Writer, c Catalog) {
	st := c.Stats()
	fmt.Fprintf(w, "%sKind:%s %s\n", Info, Reset, c.Kind())
	fmt.Fprintf(w, "%sRecords:%s %d\n", Info, Reset, st.Records)
	fmt.Fprintf(w, "%sTree height:%s %d\n", Info, Reset, st.Height)
	fmt.Fprintf(w, "%sDuplicate policy:%s %s\n", Info, Reset, st.Duplicates)
	fmt.Fprintf(w, "%sCached lookups:%s %d (%d cache hits, %d filtered)\n", Info, Reset, st.CachedItems, st.CacheHits, st.Filtered)
}
