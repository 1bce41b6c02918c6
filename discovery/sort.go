package discovery

import (
	"cmp"
	"events-discovery/data/models"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Compare returns the comparator for key: negative when a sorts before b.
// Dates ascend, titles and locations ascend by English collation, and
// capacities descend. The comparator is not safe for concurrent use because
// it owns a collator.
func Compare(key SortKey) (func(a, b models.Event) int, error) {
	switch key {
	case SortByDate:
		return func(a, b models.Event) int { return a.Date.Compare(b.Date) }, nil
	case SortByTitle:
		col := collate.New(language.English)
		return func(a, b models.Event) int { return col.CompareString(a.Title, b.Title) }, nil
	case SortByLocation:
		col := collate.New(language.English)
		return func(a, b models.Event) int { return col.CompareString(a.Location, b.Location) }, nil
	case SortByCapacity:
		return func(a, b models.Event) int { return cmp.Compare(b.Capacity, a.Capacity) }, nil
	}
	return nil, &CriteriaError{Field: fieldSortKey, Value: string(key)}
}

// Sort returns a sorted copy of records. The sort is stable: records equal
// under key keep their input order. records itself is not modified.
func Sort(records []models.Event, key SortKey) ([]models.Event, error) {
	compare, err := Compare(key)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(records)
	slices.SortStableFunc(out, compare)
	return out, nil
}
