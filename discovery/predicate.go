package discovery

import (
	"events-discovery/data/models"
	"strings"
	"time"
)

// Predicate decides whether a single event is included.
type Predicate func(e models.Event) bool

// True admits every event. Inactive criteria contribute True rather than
// being left out.
func True(models.Event) bool { return true }

// And returns the conjunction of preds. And() is True.
func And(preds ...Predicate) Predicate {
	return func(e models.Event) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

// Build validates c and combines its sub-criteria into one predicate. Every
// time-relative test uses now, so a whole batch is judged as of one instant.
func Build(c Criteria, now time.Time) (Predicate, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	dateRange, err := dateRangePredicate(c.DateRange, now)
	if err != nil {
		return nil, err
	}
	capacity, err := capacityPredicate(c.CapacityBucket)
	if err != nil {
		return nil, err
	}
	scope, err := scopePredicate(c.Scope, now)
	if err != nil {
		return nil, err
	}

	return And(
		searchPredicate(c.SearchTerm),
		dateRange,
		locationPredicate(c.Location),
		categoryPredicate(c.Category),
		capacity,
		scope,
	), nil
}

// searchPredicate matches the term case-insensitively against title,
// description and location.
func searchPredicate(term string) Predicate {
	if term == "" {
		return True
	}
	term = strings.ToLower(term)
	return func(e models.Event) bool {
		return strings.Contains(strings.ToLower(e.Title), term) ||
			strings.Contains(strings.ToLower(e.Description), term) ||
			strings.Contains(strings.ToLower(e.Location), term)
	}
}

func dateRangePredicate(r DateRange, now time.Time) (Predicate, error) {
	switch r {
	case "", AnyDate:
		return True, nil
	case Today:
		return onDay(now), nil
	case Tomorrow:
		return onDay(now.AddDate(0, 0, 1)), nil
	case NextWeek:
		return within(now, now.AddDate(0, 0, 7)), nil
	case NextMonth:
		return within(now, now.AddDate(0, 0, 30)), nil
	}
	return nil, &CriteriaError{Field: fieldDateRange, Value: string(r)}
}

// onDay matches events on the same calendar date as day, in day's location.
func onDay(day time.Time) Predicate {
	y, m, d := day.Date()
	loc := day.Location()
	return func(e models.Event) bool {
		ey, em, ed := e.Date.In(loc).Date()
		return ey == y && em == m && ed == d
	}
}

// within matches from <= date <= to.
func within(from, to time.Time) Predicate {
	return func(e models.Event) bool {
		return !e.Date.Before(from) && !e.Date.After(to)
	}
}

// locationPredicate is a case-insensitive substring match, the same rule the
// text search applies.
func locationPredicate(location string) Predicate {
	if isAny(location) {
		return True
	}
	location = strings.ToLower(location)
	return func(e models.Event) bool {
		return strings.Contains(strings.ToLower(e.Location), location)
	}
}

func categoryPredicate(category string) Predicate {
	if isAny(category) {
		return True
	}
	return func(e models.Event) bool {
		return strings.EqualFold(e.Category, category)
	}
}

func capacityPredicate(b CapacityBucket) (Predicate, error) {
	switch b {
	case "", AnySize:
		return True, nil
	case Small:
		return func(e models.Event) bool { return e.Capacity < mediumMin }, nil
	case Medium:
		return func(e models.Event) bool { return e.Capacity >= mediumMin && e.Capacity < largeMin }, nil
	case Large:
		return func(e models.Event) bool { return e.Capacity >= largeMin }, nil
	}
	return nil, &CriteriaError{Field: fieldCapacityBucket, Value: string(b)}
}

func scopePredicate(s Scope, now time.Time) (Predicate, error) {
	switch s {
	case "", AllEvents:
		return True, nil
	case Upcoming:
		return func(e models.Event) bool { return !e.Date.Before(now) }, nil
	}
	return nil, &CriteriaError{Field: fieldScope, Value: string(s)}
}

// EarliestDate reports the earliest event date c can admit as of now, so a
// store can be asked for a narrower snapshot. ok is false when c admits
// events at any date. c must already be valid.
func EarliestDate(c Criteria, now time.Time) (from time.Time, ok bool) {
	switch c.DateRange {
	case Today:
		from, ok = startOfDay(now), true
	case Tomorrow:
		from, ok = startOfDay(now.AddDate(0, 0, 1)), true
	case NextWeek, NextMonth:
		from, ok = now, true
	}
	if c.Scope == Upcoming && (!ok || from.Before(now)) {
		from, ok = now, true
	}
	return from, ok
}

// startOfDay is midnight of t's calendar date in t's location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
