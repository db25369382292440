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

package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/cybrota/bidtree/tree"
	"github.com/google/go-cmp/cmp"
)

type entry struct {
	id    string
	title string
}

func (e entry) Key() string { return e.id }

func ids(es []entry) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.id)
	}
	return out
}

func TestStoreSearchAndRemove(t *testing.T) {
	s := New[entry](Config{})
	for _, id := range []string{"50", "30", "70", "20", "40", "60", "80"} {
		if err := s.Insert(entry{id: id, title: "t" + id}); err != nil {
			t.Fatalf("Insert(%q) returned %v", id, err)
		}
	}

	// Warm the cache, then remove and make sure the cached hit is gone.
	if e, ok := s.Search("60"); !ok || e.title != "t60" {
		t.Fatalf("Search(60) = %v, %v", e, ok)
	}
	if _, ok := s.Search("60"); !ok {
		t.Fatal("second Search(60) missed")
	}
	if !s.Remove("60") {
		t.Fatal("Remove(60) reported not found")
	}
	if _, ok := s.Search("60"); ok {
		t.Error("Search(60) answered from a stale cache entry")
	}

	if diff := cmp.Diff([]string{"20", "30", "40", "50", "70", "80"}, ids(s.Records(tree.InOrder))); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}

	st := s.Stats()
	if st.CacheHits != 1 || st.Records != 6 {
		t.Errorf("Stats() = %+v, want 1 cache hit and 6 records", st)
	}
}

func TestStoreFilterShortCircuitsAbsentKeys(t *testing.T) {
	s := New[entry](Config{BloomSize: 1 << 12, BloomHashes: 3})
	if err := s.Insert(entry{id: "A"}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		if _, ok := s.Search(fmt.Sprintf("missing-%d", i)); ok {
			t.Fatalf("Search found a key that was never inserted")
		}
	}
	if s.Stats().Filtered == 0 {
		t.Error("no lookup was answered by the filter")
	}
}

func TestStoreDuplicates(t *testing.T) {
	s := New[entry](Config{})
	if err := s.Insert(entry{id: "A", title: "first"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Insert(entry{id: "A", title: "second"}); !errors.Is(err, tree.ErrDuplicateKey) {
		t.Fatalf("duplicate Insert = %v, want ErrDuplicateKey", err)
	}

	r := New[entry](Config{Duplicates: tree.ReplaceDuplicates})
	_ = r.Insert(entry{id: "A", title: "first"})
	if e, _ := r.Search("A"); e.title != "first" {
		t.Fatalf("Search(A) = %q", e.title)
	}
	_ = r.Insert(entry{id: "A", title: "second"})
	if e, _ := r.Search("A"); e.title != "second" {
		t.Errorf("Search(A) after replace = %q, want second", e.title)
	}
}

func TestStoreReset(t *testing.T) {
	s := New[entry](Config{})
	_ = s.Insert(entry{id: "A"})
	_, _ = s.Search("A")
	s.Reset()
	if !s.IsEmpty() || s.Len() != 0 {
		t.Fatal("store not empty after Reset")
	}
	if _, ok := s.Search("A"); ok {
		t.Error("Search found a record after Reset")
	}
	if s.Stats().CachedItems != 0 {
		t.Error("cache not flushed by Reset")
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := New[entry](Config{})
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				id := fmt.Sprintf("%d-%03d", w, i)
				_ = s.Insert(entry{id: id})
				if _, ok := s.Search(id); !ok {
					t.Errorf("Search(%q) missed right after Insert", id)
				}
				if i%2 == 0 {
					s.Remove(id)
				}
			}
		}(w)
	}
	wg.Wait()
	if s.Len() != 400 {
		t.Errorf("Len() = %d, want 400", s.Len())
	}
}
