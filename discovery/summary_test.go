package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveFilterSummary(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []ActiveFilter
	}{
		{name: "neutral", criteria: Criteria{}, want: []ActiveFilter{}},
		{
			name:     "explicit all values",
			criteria: Criteria{DateRange: AnyDate, Location: AnyValue, Category: AnyValue, CapacityBucket: AnySize},
			want:     []ActiveFilter{},
		},
		{
			name:     "search sort and scope are not badges",
			criteria: Criteria{SearchTerm: "tech", SortKey: SortByTitle, Scope: Upcoming},
			want:     []ActiveFilter{},
		},
		{
			name: "every filter in display order",
			criteria: Criteria{
				CapacityBucket: Medium,
				Category:       "Music",
				Location:       "Chicago",
				DateRange:      NextMonth,
			},
			want: []ActiveFilter{
				{Field: "dateRange", Label: "Next 30 Days"},
				{Field: "location", Label: "Chicago"},
				{Field: "category", Label: "Music"},
				{Field: "capacityBucket", Label: "Medium"},
			},
		},
		{
			name:     "tomorrow and large",
			criteria: Criteria{DateRange: Tomorrow, CapacityBucket: Large},
			want: []ActiveFilter{
				{Field: "dateRange", Label: "Tomorrow"},
				{Field: "capacityBucket", Label: "Large"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ActiveFilterSummary(tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActiveFilterSummary_Invalid(t *testing.T) {
	_, err := ActiveFilterSummary(Criteria{CapacityBucket: "huge"})
	assert.ErrorIs(t, err, ErrInvalidCriteria)
	assert.EqualError(t, err, `invalid criteria: capacityBucket="huge"`)
}

func TestCriteria_ClearRemovesBadge(t *testing.T) {
	c := Criteria{}.
		WithDateRange(Today).
		WithLocation("Austin").
		WithCapacityBucket(Small)

	summary, err := ActiveFilterSummary(c)
	require.NoError(t, err)
	require.Len(t, summary, 3)

	for _, badge := range summary {
		c, err = c.Clear(badge.Field)
		require.NoError(t, err)
	}

	summary, err = ActiveFilterSummary(c)
	require.NoError(t, err)
	assert.Empty(t, summary)
}

func TestCriteria_WithReturnsCopy(t *testing.T) {
	base := Criteria{SearchTerm: "tech"}
	changed := base.WithSearchTerm("music").WithScope(Upcoming).WithSortKey(SortByCapacity).WithCategory("Music")

	assert.Equal(t, "tech", base.SearchTerm)
	assert.Empty(t, base.Scope)
	assert.Equal(t, Criteria{SearchTerm: "music", Category: "Music", SortKey: SortByCapacity, Scope: Upcoming}, changed)
}

func TestCriteria_ClearUnknownField(t *testing.T) {
	_, err := Criteria{}.Clear("sortKey")
	assert.ErrorIs(t, err, ErrInvalidCriteria)
}
