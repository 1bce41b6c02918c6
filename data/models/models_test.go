package models

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockModel struct {
	ID        string `db:"id" json:"id" readOnly:"true"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Scratch   string `db:"-" json:"scratch"`
	CreatedAt string `db:"created_at" json:"createdAt" readOnly:"true"`
}

func (m MockModel) TableName() string {
	return "mock_models"
}

func (m MockModel) GetID() string {
	return m.ID
}

func (m MockModel) EmptySlice() interface{} {
	return &[]MockModel{}
}

func TestGetValsFromModel(t *testing.T) {
	model := MockModel{
		ID:        "1",
		Name:      "Test",
		Email:     "example@email.com",
		Scratch:   "ignored",
		CreatedAt: "2023-10-01",
	}

	vals := GetValsFromModel(model)
	expectedVals := []interface{}{"Test", "example@email.com"}

	assert.Equal(t, expectedVals, vals)
}

func TestGetColumnNames(t *testing.T) {
	assert.Equal(t, []string{"id", "name", "email", "created_at"}, GetColumnNames(MockModel{}, false))
	assert.Equal(t, []string{"name", "email"}, GetColumnNames(&MockModel{}, true))

	cols := GetColumnNames(Event{}, false)
	assert.Equal(t, "id", cols[0])
	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, 11)
}

func TestMapJsonTagsToDB(t *testing.T) {
	m := MapJsonTagsToDB(Event{})
	assert.Equal(t, "organizer_id", m["organizerId"])
	assert.Equal(t, "date", m["date"])
	assert.NotContains(t, m, "isPast,omitempty")
}

func TestScanRowToModel(t *testing.T) {
	model := &MockModel{}

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
		AddRow("1", "Test", "example@email.com", "2023-10-01")

	mock.ExpectQuery("SELECT id, name, email, created_at FROM mock_models WHERE id = \\?").WillReturnRows(rows)
	row := db.QueryRow("SELECT id, name, email, created_at FROM mock_models WHERE id = ?", "1")

	err = ScanRowToModel(model, row)
	assert.NoError(t, err)
	assert.Equal(t, "1", model.ID)
	assert.Equal(t, "Test", model.Name)
	assert.Equal(t, "example@email.com", model.Email)
	assert.Equal(t, "2023-10-01", model.CreatedAt)
	assert.Empty(t, model.Scratch)
}

func TestScanRowToModel_NotPointer(t *testing.T) {
	err := ScanRowToModel(MockModel{}, nil)
	assert.EqualError(t, err, "expected pointer to model, got models.MockModel")
}

func TestScanRowsToSliceOfModels(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
		AddRow("1", "Ann", "ann@example.com", "2023-10-01").
		AddRow("2", "Bob", "bob@example.com", "2023-10-02")
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	r, err := db.Query("SELECT id, name, email, created_at FROM mock_models")
	require.NoError(t, err)
	defer r.Close()

	out, err := ScanRowsToSliceOfModels(MockModel{}, r, 2)
	require.NoError(t, err)

	got, ok := out.(*[]MockModel)
	require.True(t, ok)
	require.Len(t, *got, 2)
	assert.Equal(t, "Bob", (*got)[1].Name)
}

func TestValidateModel(t *testing.T) {
	valid := Event{
		OrganizerID: "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		Title:       "Tech Conference",
		Date:        time.Date(2099, 1, 10, 9, 0, 0, 0, time.UTC),
		Capacity:    200,
		Attendees:   10,
	}

	tests := []struct {
		name    string
		mutate  func(e *Event)
		wantErr bool
	}{
		{name: "valid", mutate: func(e *Event) {}},
		{name: "missing date", mutate: func(e *Event) { e.Date = time.Time{} }, wantErr: true},
		{name: "zero capacity", mutate: func(e *Event) { e.Capacity = 0 }, wantErr: true},
		{name: "overbooked", mutate: func(e *Event) { e.Attendees = 201 }, wantErr: true},
		{name: "bad organizer", mutate: func(e *Event) { e.OrganizerID = "user1" }, wantErr: true},
		{name: "short title", mutate: func(e *Event) { e.Title = "x" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			err := ValidateModel(e)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.EqualError(t, ValidateModel("nope"), "expected model, got string")
}

func TestWithViewFlags(t *testing.T) {
	now := time.Date(2099, 1, 5, 12, 0, 0, 0, time.UTC)
	e := Event{OrganizerID: "u1", Date: now.Add(-time.Hour)}

	flagged := e.WithViewFlags("u1", now)
	require.NotNil(t, flagged.IsPast)
	require.NotNil(t, flagged.IsOrganizer)
	assert.True(t, *flagged.IsPast)
	assert.True(t, *flagged.IsOrganizer)
	assert.Nil(t, e.IsPast, "receiver must not be modified")

	other := e.WithViewFlags("u2", now.Add(-2*time.Hour))
	assert.False(t, *other.IsPast)
	assert.False(t, *other.IsOrganizer)
}
