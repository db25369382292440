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
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
)

func getHelpMessage() string {
	message := fmt.Sprintf(`

 **bidtree %s**

Load bids or courses from a CSV file into a binary search tree, then list, find and remove them.

Built with Go %s

# 1. Commands
* **run** (default) opens the menu UI
* **shell** starts the numbered text menu (1 load, 2 display, 3 find, 4 remove, 5 stats, 9 exit)
* **list --order in|pre|post** prints every record
* **find KEY...** prints matching records
* **remove KEY...** removes records and prints what is left
* **course KEY** prints a course with its prerequisites
* **settings** shows (and creates) ~/.bidtree.yaml

# 2. Data files
* Bids: eBid monthly sales export with a header row. Columns used: title (1st), id (2nd), amount (5th), fund (9th)
* Courses: one course per line, "NUMBER,Title[,PREREQ...]"

# 3. Keys
Keys are trimmed and upper-cased on load and on lookup, so "csci300" finds "CSCI300".

# 4. Duplicates
By default a repeated key is reported and skipped. Set tree.duplicates to "allow" to keep both copies or "replace" to keep the last one.

# License
Licensed under the Apache License, Version 2.0

`, version, runtime.Version())
	result := markdown.Render(message, 80, 3)
	return string(result)
}
