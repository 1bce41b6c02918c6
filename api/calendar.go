package main

import (
	"events-discovery/data/models"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
)

const calendarProductID = "-//events-discovery//search export//EN"

// writeCalendar serializes events as an iCalendar feed, one VEVENT per event
// keyed by the event ID.
func writeCalendar(w io.Writer, events []models.Event, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(calendarProductID)

	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(e.Date)
		ve.SetSummary(e.Title)
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}
