package search

import (
	"reflect"
	"testing"
)

func TestFindAll(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  []int
	}{
		{"two matches", "abc def abc", "abc", []int{0, 8}},
		{"single match", "hello world", "world", []int{6}},
		{"no match", "hello world", "xyz", nil},
		{"empty query", "hello", "", nil},
		{"empty text", "", "abc", nil},
		{"query longer than text", "ab", "abc", nil},
		{"match at every position", "aaa", "a", []int{0, 1, 2}},
		{"non-overlapping", "aaaa", "aa", []int{0, 2}},
		{"full text match", "abc", "abc", []int{0}},
		{"multibyte text", "日本語abc日本語", "日本語", []int{0, 6}},
		{"multibyte query offsets", "x日本y日本", "日本", []int{1, 4}},
		{"newlines in text", "foo\nbar\nfoo", "foo", []int{0, 8}},
		{"query spans newline", "ab\ncd", "b\nc", []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindAll(tt.text, tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindAll(%q, %q) = %v, want %v", tt.text, tt.query, got, tt.want)
			}
		})
	}
}

func TestNext(t *testing.T) {
	matches := FindAll("abc def abc", "abc") // [0, 8]

	tests := []struct {
		from int
		want int
	}{
		{0, 0},
		{1, 8},
		{8, 8},
		{9, 0},  // wraps past the last match
		{100, 0},
	}

	for _, tt := range tests {
		got, ok := Next(matches, tt.from)
		if !ok {
			t.Fatalf("Next(%v, %d) reported no matches", matches, tt.from)
		}
		if got != tt.want {
			t.Errorf("Next(%v, %d) = %d, want %d", matches, tt.from, got, tt.want)
		}
	}
}

func TestPrev(t *testing.T) {
	matches := FindAll("abc def abc", "abc") // [0, 8]

	tests := []struct {
		from int
		want int
	}{
		{0, 8}, // wraps before the first match
		{1, 0},
		{8, 0},
		{9, 8},
		{100, 8},
	}

	for _, tt := range tests {
		got, ok := Prev(matches, tt.from)
		if !ok {
			t.Fatalf("Prev(%v, %d) reported no matches", matches, tt.from)
		}
		if got != tt.want {
			t.Errorf("Prev(%v, %d) = %d, want %d", matches, tt.from, got, tt.want)
		}
	}
}

func TestNextPrevEmpty(t *testing.T) {
	if _, ok := Next(nil, 0); ok {
		t.Error("Next(nil, 0) reported a match")
	}
	if _, ok := Prev(nil, 0); ok {
		t.Error("Prev(nil, 0) reported a match")
	}
}

func TestNextPrevCycle(t *testing.T) {
	matches := []int{3, 10, 25}

	// Repeated Next from just past each match visits every match and wraps.
	pos := 0
	var visited []int
	for i := 0; i < 4; i++ {
		m, ok := Next(matches, pos)
		if !ok {
			t.Fatal("Next reported no matches")
		}
		visited = append(visited, m)
		pos = m + 1
	}
	want := []int{3, 10, 25, 3}
	if !reflect.DeepEqual(visited, want) {
		t.Errorf("forward cycle = %v, want %v", visited, want)
	}

	// Repeated Prev from each match walks backward and wraps.
	pos = 25
	visited = nil
	for i := 0; i < 3; i++ {
		m, ok := Prev(matches, pos)
		if !ok {
			t.Fatal("Prev reported no matches")
		}
		visited = append(visited, m)
		pos = m
	}
	want = []int{10, 3, 25}
	if !reflect.DeepEqual(visited, want) {
		t.Errorf("backward cycle = %v, want %v", visited, want)
	}
}

func TestCurrentIndex(t *testing.T) {
	matches := []int{0, 8} // query length 3

	tests := []struct {
		name   string
		cursor int
		want   int
	}{
		{"at first match", 0, 1},
		{"inside first match", 2, 1},
		{"between matches", 5, 2},
		{"at second match", 8, 2},
		{"inside second match", 10, 2},
		{"past all matches", 11, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentIndex(matches, tt.cursor, 3)
			if got != tt.want {
				t.Errorf("CurrentIndex(%v, %d, 3) = %d, want %d", matches, tt.cursor, got, tt.want)
			}
		})
	}

	if got := CurrentIndex(nil, 5, 3); got != 0 {
		t.Errorf("CurrentIndex(nil, 5, 3) = %d, want 0", got)
	}
}
