package models

import "time"

// Event is a stored event record. Fields are declared in column order.
//
// IsPast and IsOrganizer are view flags attached by callers that know the
// viewer and the current time. They are never stored and may be nil.
type Event struct {
	ID          string    `json:"id" db:"id" readOnly:"true"`
	OrganizerID string    `validate:"required,uuid" json:"organizerId" db:"organizer_id"`
	Title       string    `validate:"required,min=3,max=100" json:"title" db:"title"`
	Description string    `validate:"max=2000" json:"description" db:"description"`
	Location    string    `validate:"max=200" json:"location" db:"location"`
	Category    string    `validate:"max=50" json:"category" db:"category"`
	Date        time.Time `validate:"required" json:"date" db:"date"`
	Capacity    int       `validate:"required,min=1" json:"capacity" db:"capacity"`
	Attendees   int       `validate:"min=0,ltefield=Capacity" json:"attendees" db:"attendees"`
	IsPublic    bool      `json:"isPublic" db:"is_public"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" readOnly:"true"`

	IsPast      *bool `json:"isPast,omitempty" db:"-"`
	IsOrganizer *bool `json:"isOrganizer,omitempty" db:"-"`
}

func (Event) TableName() string {
	return "events"
}

func (e Event) GetID() string {
	return e.ID
}

func (e Event) EmptySlice() interface{} {
	return &[]Event{}
}

// WithViewFlags returns a copy of e with IsPast and IsOrganizer set for the
// given viewer as of now.
func (e Event) WithViewFlags(viewerID string, now time.Time) Event {
	past := e.Date.Before(now)
	organizer := viewerID != "" && e.OrganizerID == viewerID
	e.IsPast = &past
	e.IsOrganizer = &organizer
	return e
}
