package main

import (
	"encoding/json"
	"errors"
	"events-discovery/data/models"
	"events-discovery/data/repository"
	"events-discovery/discovery"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator"
	log "github.com/sirupsen/logrus"
)

const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"
)

// response is the body of every JSON reply. Data is set on success, Message
// on fail (client fault) and error (server fault).
type response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// eventList answers the event list call site.
type eventList struct {
	Events []models.Event `json:"events"`
	Count  int            `json:"count"`
}

// searchResult answers the advanced search call site. Criteria echoes what was
// evaluated, call-site defaults included.
type searchResult struct {
	Criteria      discovery.Criteria       `json:"criteria"`
	ActiveFilters []discovery.ActiveFilter `json:"activeFilters"`
	Results       []models.Event           `json:"results"`
	Count         int                      `json:"count"`
}

// dashboardView answers the dashboard call site. Events carry view flags.
type dashboardView struct {
	Tab    string         `json:"tab"`
	Events []models.Event `json:"events"`
	Count  int            `json:"count"`
}

type eventDetail struct {
	Event models.Event `json:"event"`
}

type eventRef struct {
	ID string `json:"id"`
}

var (
	errBadRequest        = errors.New("bad request")
	errForbidden         = errors.New("forbidden")
	errSnapshotTruncated = errors.New("snapshot truncated")
)

func writeJSON(w http.ResponseWriter, statusCode int, body response) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_, err = w.Write(payload)
	return err
}

// respond writes data inside a success envelope.
func (app *application) respond(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) {
	if err := writeJSON(w, statusCode, response{Status: statusSuccess, Data: data}); err != nil {
		log.WithField("path", r.URL.Path).WithError(err).Warn("could not write response")
	}
}

// fail reports err to the client with the status errorStatus assigns it.
// Server-side failures are logged.
func (app *application) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	body := response{Status: statusFail, Message: err.Error()}
	if status >= 500 {
		body.Status = statusError
		log.WithFields(log.Fields{"method": r.Method, "path": r.URL.Path}).WithError(err).Error("request failed")
	}
	if writeErr := writeJSON(w, status, body); writeErr != nil {
		log.WithError(writeErr).Warn("could not write error response")
	}
}

// errorStatus maps domain and repository errors onto HTTP status codes.
// A malformed record coming out of the store is a server-side fault, and so
// is a snapshot the store could not deliver in full.
func errorStatus(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, discovery.ErrInvalidCriteria),
		errors.Is(err, repository.ErrInvalidID),
		errors.Is(err, errBadRequest),
		errors.As(err, &verrs):
		return http.StatusBadRequest
	case errors.Is(err, errForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// readJSON decodes a single JSON value from the request body into dst,
// rejecting unknown fields. Decoding problems wrap errBadRequest; when
// validate is set, dst is also checked against its validate tags.
func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}, validate bool) error {
	const maxBytes = 1 << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("%w: body must only contain a single JSON value", errBadRequest)
	}

	if validate {
		return models.Validator().Struct(dst)
	}
	return nil
}
