package models

import (
	"database/sql"
	"fmt"
	"reflect"
)

// storedFields returns the indexes of the struct fields that map to a db
// column. Fields tagged `db:"-"` are view-only and never read or written.
func storedFields(typ reflect.Type) []int {
	idx := make([]int, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

func indirect(m interface{}) reflect.Value {
	val := reflect.ValueOf(m)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	return val
}

// GetValsFromModel returns the field values of a model as a slice of
// interfaces, in the order of the model's writable column names. It is used
// for extracting values from the model and writing them to the database.
// Validation of the model should be done before use.
func GetValsFromModel(m Model) []interface{} {
	val := indirect(m)
	typ := val.Type()

	fieldMap := make(map[string]interface{})
	for _, i := range storedFields(typ) {
		field := typ.Field(i)
		if field.Tag.Get("readOnly") == "true" {
			continue
		}
		fieldMap[field.Tag.Get("db")] = val.Field(i).Interface()
	}

	columnNames := GetColumnNames(m, true)
	vals := make([]interface{}, len(columnNames))
	for i, cn := range columnNames {
		vals[i] = fieldMap[cn]
	}

	return vals
}

// scanTargets returns pointers to every stored field of val, in declaration
// order, ready to be handed to Scan.
func scanTargets(val reflect.Value) []interface{} {
	fields := storedFields(val.Type())
	ptrs := make([]interface{}, len(fields))
	for i, f := range fields {
		ptrs[i] = val.Field(f).Addr().Interface()
	}
	return ptrs
}

// ScanRowToModel scans a single SQL row into a given model. The row's columns
// must be selected in the order returned by GetColumnNames(m, false). It
// returns an error if the scan fails or the model is not a pointer.
func ScanRowToModel(m Model, r *sql.Row) error {
	val := reflect.ValueOf(m)
	if val.Kind() != reflect.Ptr {
		return fmt.Errorf("expected pointer to model, got %T", m)
	}

	return r.Scan(scanTargets(val.Elem())...)
}

// ScanRowsToSliceOfModels scans every row into a fresh slice obtained from
// m.EmptySlice. The returned interface{} holds a pointer to that slice.
func ScanRowsToSliceOfModels(m Model, rows *sql.Rows, expectedRows int) (interface{}, error) {
	modelsSlice := m.EmptySlice()

	// Dereference the interface wrapper with Elem(), and make sure we have a slice
	sliceVal := reflect.ValueOf(modelsSlice).Elem()
	if sliceVal.Kind() != reflect.Slice {
		return nil, fmt.Errorf("expected slice, got %s", sliceVal.Kind())
	}

	elemType := sliceVal.Type().Elem()

	// We're making our best guess at capacity based on the expected number of
	// rows specified by the caller (e.g. the snapshot limit).
	sliceVal.Set(reflect.MakeSlice(sliceVal.Type(), 0, determineInitialCapacity(expectedRows)))

	for rows.Next() {
		model := reflect.New(elemType).Elem()

		if err := rows.Scan(scanTargets(model)...); err != nil {
			return nil, err
		}

		sliceVal.Set(reflect.Append(sliceVal, model))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return modelsSlice, nil
}

// GetColumnNames returns the model's column names as a slice of strings, in
// field declaration order.
func GetColumnNames(m Model, excludeReadOnlyFields bool) []string {
	typ := indirect(m).Type()
	var columnNames []string

	for _, i := range storedFields(typ) {
		field := typ.Field(i)
		if excludeReadOnlyFields && field.Tag.Get("readOnly") == "true" {
			continue
		}
		columnNames = append(columnNames, field.Tag.Get("db"))
	}
	return columnNames
}

// Returns a map of the model's field tags where key is JSON and value is DB
func MapJsonTagsToDB(m Model) map[string]string {
	typ := indirect(m).Type()
	tagMap := make(map[string]string)

	for _, i := range storedFields(typ) {
		field := typ.Field(i)
		tagMap[field.Tag.Get("json")] = field.Tag.Get("db")
	}
	return tagMap
}

// Helper function to determine the initial capacity based on expected rows
func determineInitialCapacity(expectedRows int) int {
	switch {
	case expectedRows <= 10:
		return 10
	case expectedRows <= 50:
		return 35
	case expectedRows <= 200:
		return 150
	case expectedRows <= 1000:
		return 900
	case expectedRows <= 5000:
		return 2500
	default:
		return 5000
	}
}
