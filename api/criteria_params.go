package main

import (
	"events-discovery/config"
	"events-discovery/discovery"
	"net/url"
	"strings"
)

// criteriaFromQuery builds criteria from URL query parameters on top of a
// call site's defaults. Values are passed through untouched; the engine
// rejects anything outside its enumerations.
//
//	q         search term
//	dateRange all|today|tomorrow|week|month
//	location  all|<substring>
//	category  all|<name>
//	capacity  all|small|medium|large
//	sortBy    date|title|location|capacity
//	scope     upcoming|all
func criteriaFromQuery(q url.Values, defaults config.CallSiteDefaults) discovery.Criteria {
	c := discovery.Criteria{
		Scope:   discovery.Scope(defaults.Scope),
		SortKey: discovery.SortKey(defaults.SortKey),
	}

	if v, ok := lookup(q, "q"); ok {
		c = c.WithSearchTerm(v)
	}
	if v, ok := lookup(q, "dateRange"); ok {
		c = c.WithDateRange(discovery.DateRange(v))
	}
	if v, ok := lookup(q, "location"); ok {
		c = c.WithLocation(v)
	}
	if v, ok := lookup(q, "category"); ok {
		c = c.WithCategory(v)
	}
	if v, ok := lookup(q, "capacity"); ok {
		c = c.WithCapacityBucket(discovery.CapacityBucket(v))
	}
	if v, ok := lookup(q, "sortBy"); ok {
		c = c.WithSortKey(discovery.SortKey(v))
	}
	if v, ok := lookup(q, "scope"); ok {
		c = c.WithScope(discovery.Scope(v))
	}
	return c
}

// lookup returns the trimmed value of key when it is present and non-blank.
func lookup(q url.Values, key string) (string, bool) {
	v := strings.TrimSpace(q.Get(key))
	return v, v != ""
}

// pick returns a copy of q holding only keys.
func pick(q url.Values, keys ...string) url.Values {
	out := url.Values{}
	for _, k := range keys {
		if v, ok := q[k]; ok {
			out[k] = v
		}
	}
	return out
}
