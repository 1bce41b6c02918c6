package discovery

import (
	"events-discovery/data/models"
	"time"
)

// Engine evaluates criteria against event snapshots. It holds no state besides
// its clock and is safe for concurrent use.
type Engine struct {
	clock Clock
}

// New returns an Engine reading time from clock, or from the system clock
// when clock is nil.
func New(clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Engine{clock: clock}
}

// Now reports the engine's current instant.
func (en *Engine) Now() time.Time {
	return en.clock.Now()
}

// Filter returns the records matching c, in input order.
func (en *Engine) Filter(records []models.Event, c Criteria) ([]models.Event, error) {
	return FilterAt(records, c, en.clock.Now())
}

// Query filters records by c and sorts the matches by c.SortKey, or by date
// when no key is set.
func (en *Engine) Query(records []models.Event, c Criteria) ([]models.Event, error) {
	return QueryAt(records, c, en.clock.Now())
}

// FilterAt is Filter evaluated as of now. Every record is checked for its
// mandatory fields, matching or not, and the first malformed one aborts the
// call with an *EventError.
func FilterAt(records []models.Event, c Criteria, now time.Time) ([]models.Event, error) {
	pred, err := Build(c, now)
	if err != nil {
		return nil, err
	}
	return Apply(records, pred)
}

// Apply keeps the records satisfying pred, preserving their order.
func Apply(records []models.Event, pred Predicate) ([]models.Event, error) {
	out := make([]models.Event, 0, len(records))
	for _, r := range records {
		if err := checkRecord(r); err != nil {
			return nil, err
		}
		if pred(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// QueryAt is Query evaluated as of now.
func QueryAt(records []models.Event, c Criteria, now time.Time) ([]models.Event, error) {
	key := c.SortKey
	if key == "" {
		key = SortByDate
	}
	filtered, err := FilterAt(records, c, now)
	if err != nil {
		return nil, err
	}
	return Sort(filtered, key)
}

func checkRecord(e models.Event) error {
	if e.Date.IsZero() {
		return &EventError{ID: e.ID, Field: "date"}
	}
	if e.Capacity <= 0 {
		return &EventError{ID: e.ID, Field: "capacity"}
	}
	return nil
}
