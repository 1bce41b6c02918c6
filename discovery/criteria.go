package discovery

import (
	"errors"
	"events-discovery/data/models"
	"fmt"

	"github.com/go-playground/validator"
)

// DateRange restricts events to a window relative to the evaluation instant.
type DateRange string

const (
	AnyDate  DateRange = "all"
	Today    DateRange = "today"
	Tomorrow DateRange = "tomorrow"
	NextWeek DateRange = "week"
	// NextMonth is a fixed 30-day window, not a calendar month.
	NextMonth DateRange = "month"
)

// CapacityBucket groups events by capacity: small is below 50, medium is
// 50 to 199 and large is 200 or more.
type CapacityBucket string

const (
	AnySize CapacityBucket = "all"
	Small   CapacityBucket = "small"
	Medium  CapacityBucket = "medium"
	Large   CapacityBucket = "large"
)

const (
	mediumMin = 50
	largeMin  = 200
)

// SortKey selects the result ordering.
type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByTitle    SortKey = "title"
	SortByLocation SortKey = "location"
	// SortByCapacity orders largest first, unlike the other keys.
	SortByCapacity SortKey = "capacity"
)

// Scope decides whether past events are excluded.
type Scope string

const (
	Upcoming  Scope = "upcoming"
	AllEvents Scope = "all"
)

// AnyValue is the neutral value of the free-form Location and Category
// filters.
const AnyValue = "all"

const (
	fieldSearchTerm     = "searchTerm"
	fieldDateRange      = "dateRange"
	fieldLocation       = "location"
	fieldCategory       = "category"
	fieldCapacityBucket = "capacityBucket"
	fieldSortKey        = "sortKey"
	fieldScope          = "scope"
)

// Criteria is the normalized set of constraints for one query. The zero value
// constrains nothing: empty enum fields behave as "all", an empty SortKey
// means date ordering in Query, and an empty Scope includes past events.
//
// Criteria is a value type. The With methods and Clear return modified copies.
type Criteria struct {
	SearchTerm     string         `json:"searchTerm,omitempty"`
	DateRange      DateRange      `json:"dateRange,omitempty" validate:"omitempty,oneof=all today tomorrow week month"`
	Location       string         `json:"location,omitempty"`
	Category       string         `json:"category,omitempty"`
	CapacityBucket CapacityBucket `json:"capacityBucket,omitempty" validate:"omitempty,oneof=all small medium large"`
	SortKey        SortKey        `json:"sortKey,omitempty" validate:"omitempty,oneof=date title location capacity"`
	Scope          Scope          `json:"scope,omitempty" validate:"omitempty,oneof=upcoming all"`
}

func (c Criteria) WithSearchTerm(term string) Criteria {
	c.SearchTerm = term
	return c
}

func (c Criteria) WithDateRange(r DateRange) Criteria {
	c.DateRange = r
	return c
}

func (c Criteria) WithLocation(location string) Criteria {
	c.Location = location
	return c
}

func (c Criteria) WithCategory(category string) Criteria {
	c.Category = category
	return c
}

func (c Criteria) WithCapacityBucket(b CapacityBucket) Criteria {
	c.CapacityBucket = b
	return c
}

func (c Criteria) WithSortKey(k SortKey) Criteria {
	c.SortKey = k
	return c
}

func (c Criteria) WithScope(s Scope) Criteria {
	c.Scope = s
	return c
}

// Clear returns a copy of c with the named field reset to its neutral value.
// Field names are the ones reported by ActiveFilterSummary.
func (c Criteria) Clear(field string) (Criteria, error) {
	switch field {
	case fieldSearchTerm:
		c.SearchTerm = ""
	case fieldDateRange:
		c.DateRange = AnyDate
	case fieldLocation:
		c.Location = AnyValue
	case fieldCategory:
		c.Category = AnyValue
	case fieldCapacityBucket:
		c.CapacityBucket = AnySize
	case fieldScope:
		c.Scope = AllEvents
	default:
		return c, fmt.Errorf("%w: cannot clear unknown field %q", ErrInvalidCriteria, field)
	}
	return c, nil
}

// criteriaFields maps struct field names, as reported by the validator, to
// the names used in errors and badges.
var criteriaFields = map[string]string{
	"DateRange":      fieldDateRange,
	"CapacityBucket": fieldCapacityBucket,
	"SortKey":        fieldSortKey,
	"Scope":          fieldScope,
}

// Validate reports the first enum field holding an unrecognised value as a
// *CriteriaError.
func (c Criteria) Validate() error {
	err := models.Validator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &CriteriaError{Field: criteriaFields[fe.Field()], Value: fmt.Sprint(fe.Value())}
	}
	return fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
}

func isAny(v string) bool {
	return v == "" || v == AnyValue
}
