package schedule

// OutcomeKind enumerates the two terminal decisions for a submission.
type OutcomeKind int

const (
	// KindNoAvailability means no usable availability was extracted, or no
	// recruiter could be assigned.
	KindNoAvailability OutcomeKind = iota
	// KindScheduled means a recruiter was assigned to the resolved slot.
	KindScheduled
)

func (k OutcomeKind) String() string {
	if k == KindScheduled {
		return "scheduled"
	}
	return "no_availability"
}

// Outcome is the terminal decision of the pipeline for one submission. It is
// produced exactly once and immediately consumed by the dispatcher.
type Outcome struct {
	Kind         OutcomeKind
	Candidate    string
	Recruiter    string
	Availability *Availability
}

// Decide selects a recruiter for the resolved availability, or produces the
// no-availability outcome when the record is absent or the roster yields no
// recruiter. Pure decision logic, no I/O.
func Decide(candidate string, avail *Availability, selector Selector, roster Roster) Outcome {
	if avail == nil {
		return Outcome{Kind: KindNoAvailability, Candidate: candidate}
	}

	recruiter, ok := selector.Pick(roster)
	if !ok {
		return Outcome{Kind: KindNoAvailability, Candidate: candidate}
	}

	return Outcome{
		Kind:         KindScheduled,
		Candidate:    candidate,
		Recruiter:    recruiter,
		Availability: avail,
	}
}
