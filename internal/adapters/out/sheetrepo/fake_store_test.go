package sheetrepo_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// fakeTabularStore holds sheets in memory with the same positional semantics
// as the real store.
type fakeTabularStore struct {
	mu     sync.Mutex
	sheets map[string][]ports.Row
}

func newFakeTabularStore() *fakeTabularStore {
	return &fakeTabularStore{sheets: make(map[string][]ports.Row)}
}

func (s *fakeTabularStore) seed(sheet string, rows ...ports.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[sheet] = append(s.sheets[sheet], rows...)
}

func (s *fakeTabularStore) Read(_ context.Context, sheet string) ([]ports.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]ports.Row, 0, len(s.sheets[sheet]))
	for _, row := range s.sheets[sheet] {
		rows = append(rows, append(ports.Row(nil), row...))
	}
	return rows, nil
}

func (s *fakeTabularStore) Append(_ context.Context, sheet string, rows []ports.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range rows {
		s.sheets[sheet] = append(s.sheets[sheet], append(ports.Row(nil), row...))
	}
	return nil
}

func (s *fakeTabularStore) WriteCell(_ context.Context, sheet string, row, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.sheets[sheet]
	if row < 0 || row >= len(rows) {
		return errs.NewObjectNotFoundError(fmt.Sprintf("row %d of sheet %s", row, sheet), row)
	}
	for len(rows[row]) <= col {
		rows[row] = append(rows[row], "")
	}
	rows[row][col] = value
	s.sheets[sheet] = rows
	return nil
}

func (s *fakeTabularStore) DeleteRows(_ context.Context, sheet string, rows []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := append([]int(nil), rows...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, index := range sorted {
		if index <= 0 || index >= len(s.sheets[sheet]) {
			continue
		}
		s.sheets[sheet] = append(s.sheets[sheet][:index], s.sheets[sheet][index+1:]...)
	}
	return nil
}
