package schedule

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Roster is the fixed, ordered list of recruiter contact addresses eligible
// for assignment. It is read-only once loaded from configuration.
type Roster []string

// Validate checks that the roster is non-empty and carries no blank entries.
func (r Roster) Validate() error {
	if len(r) == 0 {
		return errors.New("recruiter roster must not be empty")
	}
	for i, addr := range r {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("recruiter roster entry %d is blank", i)
		}
	}
	return nil
}

// Selector picks a recruiter from the roster. Implementations must be safe
// for concurrent use since the hosting server handles submissions in
// parallel.
type Selector interface {
	Name() string
	Pick(roster Roster) (string, bool)
}

// NewSelector returns the selector registered under the given name. The
// empty name maps to the default first-in-roster policy.
func NewSelector(name string) (Selector, error) {
	switch strings.TrimSpace(strings.ToLower(name)) {
	case "", "first":
		return &firstInRoster{}, nil
	case "round-robin":
		return &roundRobin{}, nil
	default:
		return nil, fmt.Errorf("unknown selection policy: %s", name)
	}
}

// firstInRoster always assigns the first recruiter. This mirrors the
// observed placeholder policy; real load balancing would slot in behind the
// same interface.
type firstInRoster struct{}

func (*firstInRoster) Name() string { return "first" }

func (*firstInRoster) Pick(roster Roster) (string, bool) {
	if len(roster) == 0 {
		return "", false
	}
	return roster[0], true
}

// roundRobin cycles through the roster across submissions.
type roundRobin struct {
	mu   sync.Mutex
	next int
}

func (*roundRobin) Name() string { return "round-robin" }

func (s *roundRobin) Pick(roster Roster) (string, bool) {
	if len(roster) == 0 {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recruiter := roster[s.next%len(roster)]
	s.next++
	return recruiter, true
}
