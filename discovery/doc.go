// Package discovery filters and orders event snapshots for display.
//
// A query runs in three stages: Build turns a Criteria into a Predicate,
// Filter keeps the matching records in input order, and Sort orders them by
// a SortKey. Query runs all three. Nothing is cached between calls and the
// only time dependency is the Clock handed to New.
package discovery
