package shell

import (
	"sync"

	"github.com/hoppxi/wigo-calc/pkg/calc"
)

const keepResults = 16

// resultStore remembers recent results so the shell can fetch their metas and
// activate them by ID. Latest only moves forward: a slow query finishing after
// a newer one never replaces it.
type resultStore struct {
	mu     sync.Mutex
	byID   map[string]calc.DisplayResult
	order  []string
	latest calc.DisplayResult
}

func newResultStore() *resultStore {
	return &resultStore{byID: make(map[string]calc.DisplayResult)}
}

func (s *resultStore) put(res calc.DisplayResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[res.ID]; !ok {
		s.order = append(s.order, res.ID)
		if len(s.order) > keepResults {
			delete(s.byID, s.order[0])
			s.order = s.order[1:]
		}
	}
	s.byID[res.ID] = res

	if res.Seq > s.latest.Seq {
		s.latest = res
	}
}

func (s *resultStore) get(id string) (calc.DisplayResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.byID[id]
	return res, ok
}

// Latest returns the newest result by sequence number.
func (s *resultStore) Latest() (calc.DisplayResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.latest.ID != ""
}
