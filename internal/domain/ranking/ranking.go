// Package ranking orders students by overall average and assigns ranks.
//
// Ranks are distinct positions 1..N. Equal averages are broken
// deterministically by student ID ascending, so rank assignment is
// reproducible across runs. Shared ("1224") ranks are intentionally not
// used; the tie-break already makes the order total.
package ranking

import (
	"errors"
	"fmt"
	"sort"
)

// Rank represents a position in the standings, starting at 1.
type Rank int

// IsValid reports whether the rank is positive.
func (r Rank) IsValid() bool {
	return r > 0
}

// IsTop reports whether the rank is within the top n positions.
func (r Rank) IsTop(n int) bool {
	return r >= 1 && int(r) <= n
}

// String returns the display form of the rank.
func (r Rank) String() string {
	return fmt.Sprintf("#%d", r)
}

// Entry is one student's position in the standings.
type Entry struct {
	// Rank is the assigned position.
	Rank Rank

	// StudentID identifies the student.
	StudentID string

	// DisplayName is the student's display name.
	DisplayName string

	// Average is the overall average the standings are sorted by.
	Average float64
}

// Gap returns the score distance to another entry.
func (e *Entry) Gap(other *Entry) float64 {
	if other == nil {
		return 0
	}
	diff := e.Average - other.Average
	if diff < 0 {
		return -diff
	}
	return diff
}

// Clone returns a copy of the entry.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

// String returns a representation for logging.
func (e *Entry) String() string {
	return fmt.Sprintf("Entry{Rank: %d, StudentID: %s, Average: %.2f}", e.Rank, e.StudentID, e.Average)
}

// Standings errors.
var (
	// ErrNilEntry - attempted to add a nil entry.
	ErrNilEntry = errors.New("cannot add nil entry")

	// ErrDuplicateStudent - the student is already in the standings.
	ErrDuplicateStudent = errors.New("student already exists in standings")
)

// Standings is the full ordered list of students. Build it with Add,
// then call Sort once; the query methods assume sorted entries.
type Standings struct {
	entries []*Entry
	byID    map[string]*Entry
}

// NewStandings creates empty Standings.
func NewStandings() *Standings {
	return &Standings{
		entries: make([]*Entry, 0),
		byID:    make(map[string]*Entry),
	}
}

// Add appends an entry without sorting.
func (s *Standings) Add(entry *Entry) error {
	if entry == nil {
		return ErrNilEntry
	}
	if _, exists := s.byID[entry.StudentID]; exists {
		return ErrDuplicateStudent
	}

	s.entries = append(s.entries, entry)
	s.byID[entry.StudentID] = entry
	return nil
}

// Sort orders entries by average descending, ties by student ID
// ascending, and assigns distinct ranks 1..N.
func (s *Standings) Sort() {
	sort.Slice(s.entries, func(i, j int) bool {
		if s.entries[i].Average != s.entries[j].Average {
			return s.entries[i].Average > s.entries[j].Average
		}
		return s.entries[i].StudentID < s.entries[j].StudentID
	})

	for i, entry := range s.entries {
		entry.Rank = Rank(i + 1)
	}
}

// GetByID returns the entry for a student, or nil.
func (s *Standings) GetByID(studentID string) *Entry {
	return s.byID[studentID]
}

// Top returns the first n entries. n exceeding the population returns
// the full population.
func (s *Standings) Top(n int) []*Entry {
	if n <= 0 {
		return nil
	}
	if n > len(s.entries) {
		n = len(s.entries)
	}
	result := make([]*Entry, n)
	copy(result, s.entries[:n])
	return result
}

// Bottom returns the last n entries, worst last. n exceeding the
// population returns the full population.
func (s *Standings) Bottom(n int) []*Entry {
	if n <= 0 {
		return nil
	}
	if n > len(s.entries) {
		n = len(s.entries)
	}
	result := make([]*Entry, n)
	copy(result, s.entries[len(s.entries)-n:])
	return result
}

// Slice returns entries [from:to).
func (s *Standings) Slice(from, to int) []*Entry {
	if from < 0 {
		from = 0
	}
	if to > len(s.entries) {
		to = len(s.entries)
	}
	if from >= to {
		return nil
	}
	result := make([]*Entry, to-from)
	copy(result, s.entries[from:to])
	return result
}

// All returns all entries in rank order.
func (s *Standings) All() []*Entry {
	result := make([]*Entry, len(s.entries))
	copy(result, s.entries)
	return result
}

// Count returns the number of entries.
func (s *Standings) Count() int {
	return len(s.entries)
}

// Build creates sorted Standings from per-student entries in one call.
func Build(students []Entry) (*Standings, error) {
	standings := NewStandings()
	for i := range students {
		entry := students[i]
		if err := standings.Add(&entry); err != nil {
			return nil, err
		}
	}
	standings.Sort()
	return standings, nil
}
