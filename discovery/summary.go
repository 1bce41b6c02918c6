package discovery

// ActiveFilter describes one non-neutral filter for display as a removable
// badge. Field can be passed to Criteria.Clear.
type ActiveFilter struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

var dateRangeLabels = map[DateRange]string{
	Today:     "Today",
	Tomorrow:  "Tomorrow",
	NextWeek:  "Next 7 Days",
	NextMonth: "Next 30 Days",
}

var capacityLabels = map[CapacityBucket]string{
	Small:  "Small",
	Medium: "Medium",
	Large:  "Large",
}

// ActiveFilterSummary lists the active filters of c in a fixed order: date
// range, location, category, capacity. The search term, sort key and scope
// are not filters in this sense and never appear.
func ActiveFilterSummary(c Criteria) ([]ActiveFilter, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	active := []ActiveFilter{}
	if label, ok := dateRangeLabels[c.DateRange]; ok {
		active = append(active, ActiveFilter{Field: fieldDateRange, Label: label})
	}
	if !isAny(c.Location) {
		active = append(active, ActiveFilter{Field: fieldLocation, Label: c.Location})
	}
	if !isAny(c.Category) {
		active = append(active, ActiveFilter{Field: fieldCategory, Label: c.Category})
	}
	if label, ok := capacityLabels[c.CapacityBucket]; ok {
		active = append(active, ActiveFilter{Field: fieldCapacityBucket, Label: label})
	}
	return active, nil
}
