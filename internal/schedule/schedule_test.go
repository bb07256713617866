package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ikodinhi/interview-scheduler/internal/extract"
	"github.com/ikodinhi/interview-scheduler/internal/timeparse"
)

// anchor is a known Wednesday.
var anchor = time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)

func newResolver(t *testing.T, threshold int) *Resolver {
	t.Helper()
	return NewResolver(timeparse.NewParser(time.UTC), threshold, zap.NewNop())
}

func TestResolveProducesRecord(t *testing.T) {
	resolver := newResolver(t, 0)

	avail := resolver.Resolve(extract.Tokens{
		Date:  "next Monday",
		Times: []string{"2:00 PM", "3:00 PM"},
	}, anchor)

	require.NotNil(t, avail)
	assert.Equal(t, "02-02-2026", avail.DateString())
	assert.Equal(t, "14:00", avail.Start.String())
}

func TestResolveTimeMentionThreshold(t *testing.T) {
	tests := []struct {
		name       string
		threshold  int
		times      []string
		wantRecord bool
	}{
		{"zero times", 0, nil, false},
		{"one time below default threshold", 0, []string{"2:00 PM"}, false},
		{"exactly two times", 0, []string{"2:00 PM", "3:00 PM"}, true},
		{"threshold of one accepts single time", 1, []string{"2:00 PM"}, true},
		{"threshold of three rejects two times", 3, []string{"2:00 PM", "3:00 PM"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := newResolver(t, tt.threshold)
			avail := resolver.Resolve(extract.Tokens{Date: "Friday", Times: tt.times}, anchor)
			assert.Equal(t, tt.wantRecord, avail != nil)
		})
	}
}

func TestResolveNoDatePhrase(t *testing.T) {
	resolver := newResolver(t, 0)

	avail := resolver.Resolve(extract.Tokens{Times: []string{"2:00 PM", "3:00 PM"}}, anchor)
	assert.Nil(t, avail)
}

func TestResolveUnparseableDate(t *testing.T) {
	resolver := newResolver(t, 0)

	avail := resolver.Resolve(extract.Tokens{
		Date:  "whenever suits",
		Times: []string{"2:00 PM", "3:00 PM"},
	}, anchor)
	assert.Nil(t, avail)
}

func TestResolveUsesFirstParseableTime(t *testing.T) {
	resolver := newResolver(t, 0)

	avail := resolver.Resolve(extract.Tokens{
		Date:  "Friday",
		Times: []string{"99:99 XM", "9:30 AM", "11 AM"},
	}, anchor)

	require.NotNil(t, avail)
	assert.Equal(t, "09:30", avail.Start.String())
}

func TestResolveAllTimesUnparseable(t *testing.T) {
	resolver := newResolver(t, 0)

	avail := resolver.Resolve(extract.Tokens{
		Date:  "Friday",
		Times: []string{"99 XM", "0:99 YM"},
	}, anchor)
	assert.Nil(t, avail)
}

func TestRosterValidate(t *testing.T) {
	assert.Error(t, Roster{}.Validate())
	assert.Error(t, Roster{"a@example.com", "  "}.Validate())
	assert.NoError(t, Roster{"a@example.com"}.Validate())
}

func TestFirstInRosterSelector(t *testing.T) {
	selector, err := NewSelector("first")
	require.NoError(t, err)

	roster := Roster{"r1@example.com", "r2@example.com"}
	for i := 0; i < 3; i++ {
		recruiter, ok := selector.Pick(roster)
		require.True(t, ok)
		assert.Equal(t, "r1@example.com", recruiter)
	}

	_, ok := selector.Pick(nil)
	assert.False(t, ok)
}

func TestRoundRobinSelector(t *testing.T) {
	selector, err := NewSelector("round-robin")
	require.NoError(t, err)

	roster := Roster{"r1@example.com", "r2@example.com"}
	var picks []string
	for i := 0; i < 4; i++ {
		recruiter, ok := selector.Pick(roster)
		require.True(t, ok)
		picks = append(picks, recruiter)
	}

	assert.Equal(t, []string{"r1@example.com", "r2@example.com", "r1@example.com", "r2@example.com"}, picks)
}

func TestNewSelectorUnknownPolicy(t *testing.T) {
	_, err := NewSelector("least-loaded")
	assert.Error(t, err)

	selector, err := NewSelector("")
	require.NoError(t, err)
	assert.Equal(t, "first", selector.Name())
}

func TestDecide(t *testing.T) {
	selector, err := NewSelector("first")
	require.NoError(t, err)
	roster := Roster{"r1@example.com"}

	avail := &Availability{Date: anchor, Start: timeparse.Clock{Hour: 14}}

	scheduled := Decide("candidate@example.com", avail, selector, roster)
	assert.Equal(t, KindScheduled, scheduled.Kind)
	assert.Equal(t, "r1@example.com", scheduled.Recruiter)
	assert.Equal(t, avail, scheduled.Availability)

	none := Decide("candidate@example.com", nil, selector, roster)
	assert.Equal(t, KindNoAvailability, none.Kind)
	assert.Empty(t, none.Recruiter)
	assert.Nil(t, none.Availability)

	emptyRoster := Decide("candidate@example.com", avail, selector, Roster{})
	assert.Equal(t, KindNoAvailability, emptyRoster.Kind)
}
