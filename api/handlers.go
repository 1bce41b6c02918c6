package main

import (
	"events-discovery/data/models"
	"events-discovery/data/repository"
	"events-discovery/discovery"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	callSiteEvents    = "events"
	callSiteSearch    = "search"
	callSiteDashboard = "dashboard"
)

// storeTime formats t for a date bound in a store query.
func storeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// snapshot fetches the events a query is evaluated against, earliest first.
// bounds narrow the fetch at the store; the engine still applies every
// filter. One row beyond the snapshot limit is requested so a store holding
// more matching events reports errSnapshotTruncated instead of returning a
// partial set.
func (app *application) snapshot(bounds map[string]string) ([]models.Event, error) {
	limit := app.Config.SnapshotLimit
	params := map[string]string{
		"sortBy": "date",
		"limit":  strconv.Itoa(limit + 1),
	}
	for k, v := range bounds {
		params[k] = v
	}

	events, err := app.Repo.QueryEvents(params)
	if err != nil {
		return nil, err
	}
	if len(events) > limit {
		return nil, fmt.Errorf("%w: more than %d events match, raise snapshot_limit", errSnapshotTruncated, limit)
	}
	return events, nil
}

// runQuery evaluates c over a fresh snapshot and records metrics for
// callSite. The store fetch and the engine share one instant.
func (app *application) runQuery(callSite string, c discovery.Criteria) (results []models.Event, err error) {
	start := time.Now()
	defer func() { trackQuery(callSite, start, len(results), err) }()

	// Reject bad criteria before touching the store.
	if err := c.Validate(); err != nil {
		return nil, err
	}

	now := app.Engine.Now()
	bounds := map[string]string{}
	if from, ok := discovery.EarliestDate(c, now); ok {
		bounds["date_gte"] = storeTime(from)
	}

	events, err := app.snapshot(bounds)
	if err != nil {
		return nil, err
	}
	return discovery.QueryAt(events, c, now)
}

// listEvents serves the event list: search box, sort selector and the
// upcoming/all tab.
func (app *application) listEvents(w http.ResponseWriter, r *http.Request) {
	q := pick(r.URL.Query(), "q", "sortBy", "scope")
	c := criteriaFromQuery(q, app.Config.Events)

	events, err := app.runQuery(callSiteEvents, c)
	if err != nil {
		app.fail(w, r, err)
		return
	}
	app.respond(w, r, http.StatusOK, eventList{Events: events, Count: len(events)})
}

// search serves the advanced search screen, which exposes every filter.
func (app *application) search(w http.ResponseWriter, r *http.Request) {
	c := criteriaFromQuery(r.URL.Query(), app.Config.Search)

	active, err := discovery.ActiveFilterSummary(c)
	if err != nil {
		trackQuery(callSiteSearch, time.Now(), 0, err)
		app.fail(w, r, err)
		return
	}

	results, err := app.runQuery(callSiteSearch, c)
	if err != nil {
		app.fail(w, r, err)
		return
	}

	app.respond(w, r, http.StatusOK, searchResult{
		Criteria:      c,
		ActiveFilters: active,
		Results:       results,
		Count:         len(results),
	})
}

// searchCalendar exports the advanced search results as iCalendar.
func (app *application) searchCalendar(w http.ResponseWriter, r *http.Request) {
	c := criteriaFromQuery(r.URL.Query(), app.Config.Search)

	results, err := app.runQuery(callSiteSearch, c)
	if err != nil {
		app.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="events.ics"`)
	if err := writeCalendar(w, results, app.Engine.Now()); err != nil {
		log.WithError(err).Warn("could not write calendar")
	}
}

// viewer resolves the acting user named by the user query parameter.
func (app *application) viewer(r *http.Request) (models.User, error) {
	id := r.URL.Query().Get("user")
	if _, err := uuid.Parse(id); err != nil {
		return models.User{}, fmt.Errorf("%w: user %q", repository.ErrInvalidID, id)
	}
	u, err := app.Repo.GetUserByID(id)
	if err != nil {
		return models.User{}, fmt.Errorf("user %s: %w", id, err)
	}
	return u, nil
}

const (
	tabHosting   = "hosting"
	tabAttending = "attending"
	tabPast      = "past"
)

// dashboardTab selects the events shown under a dashboard tab. match runs on
// events carrying view flags; bounds narrows the store fetch to a superset of
// what match admits.
type dashboardTab struct {
	match  discovery.Predicate
	bounds func(viewer, now string) map[string]string
}

var dashboardTabs = map[string]dashboardTab{
	tabHosting: {
		match: func(e models.Event) bool { return isSet(e.IsOrganizer) && !isSet(e.IsPast) },
		bounds: func(viewer, now string) map[string]string {
			return map[string]string{"organizerId": viewer, "date_gte": now}
		},
	},
	tabAttending: {
		match: func(e models.Event) bool { return !isSet(e.IsOrganizer) && !isSet(e.IsPast) },
		bounds: func(viewer, now string) map[string]string {
			return map[string]string{"organizerId_ne": viewer, "date_gte": now}
		},
	},
	tabPast: {
		match: func(e models.Event) bool { return isSet(e.IsPast) },
		bounds: func(_, now string) map[string]string {
			return map[string]string{"date_lt": now}
		},
	},
}

func isSet(b *bool) bool {
	return b != nil && *b
}

// dashboard serves a user's personal view. The tab decides the subset; the
// tab already separates past from upcoming events, so the engine runs with
// scope all.
func (app *application) dashboard(w http.ResponseWriter, r *http.Request) {
	user, err := app.viewer(r)
	if err != nil {
		app.fail(w, r, err)
		return
	}

	tab := r.URL.Query().Get("tab")
	if tab == "" {
		tab = tabHosting
	}
	view, ok := dashboardTabs[tab]
	if !ok {
		app.fail(w, r, fmt.Errorf("%w: unknown dashboard tab %q", errBadRequest, tab))
		return
	}

	start := time.Now()
	events, err := app.dashboardEvents(user.ID, view)
	trackQuery(callSiteDashboard, start, len(events), err)
	if err != nil {
		app.fail(w, r, err)
		return
	}

	app.respond(w, r, http.StatusOK, dashboardView{Tab: tab, Events: events, Count: len(events)})
}

func (app *application) dashboardEvents(viewer string, view dashboardTab) ([]models.Event, error) {
	// Bounds, flags and filters share one instant.
	now := app.Engine.Now()
	events, err := app.snapshot(view.bounds(viewer, storeTime(now)))
	if err != nil {
		return nil, err
	}

	flagged := make([]models.Event, len(events))
	for i, e := range events {
		flagged[i] = e.WithViewFlags(viewer, now)
	}

	subset, err := discovery.Apply(flagged, view.match)
	if err != nil {
		return nil, err
	}
	return discovery.QueryAt(subset, discovery.Criteria{
		Scope:   discovery.AllEvents,
		SortKey: discovery.SortByDate,
	}, now)
}

func (app *application) getEvent(w http.ResponseWriter, r *http.Request) {
	e, err := app.Repo.GetEventByID(r.PathValue("id"))
	if err != nil {
		app.fail(w, r, err)
		return
	}
	app.respond(w, r, http.StatusOK, eventDetail{Event: e})
}

// eventRequest is the writable part of an event. OrganizerID is only read on
// create; an update keeps the stored organizer.
type eventRequest struct {
	OrganizerID string    `json:"organizerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Capacity    int       `json:"capacity"`
	IsPublic    bool      `json:"isPublic"`
}

// apply copies the request's writable fields onto e.
func (req eventRequest) apply(e models.Event) models.Event {
	e.Title = req.Title
	e.Description = req.Description
	e.Location = req.Location
	e.Category = req.Category
	e.Date = req.Date
	e.Capacity = req.Capacity
	e.IsPublic = req.IsPublic
	return e
}

func (app *application) createEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := readJSON(w, r, &req, false); err != nil {
		app.fail(w, r, err)
		return
	}

	e := req.apply(models.Event{OrganizerID: req.OrganizerID})
	if err := models.ValidateModel(e); err != nil {
		app.fail(w, r, err)
		return
	}

	id, err := app.Repo.Create(e)
	if err != nil {
		app.fail(w, r, err)
		return
	}
	log.WithFields(log.Fields{"id": id, "organizer": e.OrganizerID}).Info("event created")
	app.respond(w, r, http.StatusCreated, eventRef{ID: id})
}

// ownEvent loads the event at {id} and checks that the acting user organizes
// it.
func (app *application) ownEvent(r *http.Request) (models.Event, error) {
	user, err := app.viewer(r)
	if err != nil {
		return models.Event{}, err
	}
	e, err := app.Repo.GetEventByID(r.PathValue("id"))
	if err != nil {
		return models.Event{}, err
	}
	if e.OrganizerID != user.ID {
		return models.Event{}, fmt.Errorf("%w: event %s is organized by another user", errForbidden, e.ID)
	}
	return e, nil
}

func (app *application) updateEvent(w http.ResponseWriter, r *http.Request) {
	e, err := app.ownEvent(r)
	if err != nil {
		app.fail(w, r, err)
		return
	}

	var req eventRequest
	if err := readJSON(w, r, &req, false); err != nil {
		app.fail(w, r, err)
		return
	}

	e = req.apply(e)
	if err := models.ValidateModel(e); err != nil {
		app.fail(w, r, err)
		return
	}
	if err := app.Repo.Update(e); err != nil {
		app.fail(w, r, err)
		return
	}
	log.WithFields(log.Fields{"id": e.ID, "organizer": e.OrganizerID}).Info("event updated")
	app.respond(w, r, http.StatusOK, eventDetail{Event: e})
}

func (app *application) deleteEvent(w http.ResponseWriter, r *http.Request) {
	e, err := app.ownEvent(r)
	if err != nil {
		app.fail(w, r, err)
		return
	}

	if err := app.Repo.Delete(e); err != nil {
		app.fail(w, r, err)
		return
	}
	log.WithFields(log.Fields{"id": e.ID, "organizer": e.OrganizerID}).Info("event deleted")
	app.respond(w, r, http.StatusOK, eventRef{ID: e.ID})
}
