package discovery

import (
	"events-discovery/data/models"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

var (
	techConference = models.Event{
		ID:          "tech",
		Title:       "Tech Conference",
		Description: "Talks on the latest trends",
		Location:    "New York",
		Category:    "Technology",
		Date:        time.Date(2099, 1, 10, 9, 0, 0, 0, time.UTC),
		Capacity:    200,
		Attendees:   120,
	}
	summerFestival = models.Event{
		ID:          "summer",
		Title:       "Summer Festival",
		Description: "Live music on the beach",
		Location:    "Miami",
		Category:    "Music",
		Date:        time.Date(2099, 7, 10, 18, 0, 0, 0, time.UTC),
		Capacity:    1000,
		Attendees:   1200,
	}
)

func event(id string, date time.Time, capacity int) models.Event {
	return models.Event{ID: id, Title: id, Date: date, Capacity: capacity}
}

func ids(events []models.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

var fakeLocations = []string{"New York", "Miami", "Chicago", "Austin", "San Francisco", "new york"}

// randomEvents returns n well-formed events spread around now.
func randomEvents(seed uint64, n int, now time.Time) []models.Event {
	faker := gofakeit.New(seed)
	events := make([]models.Event, n)
	for i := range events {
		events[i] = models.Event{
			ID:          faker.UUID(),
			Title:       faker.LoremIpsumSentence(3),
			Description: faker.LoremIpsumSentence(10),
			Location:    faker.RandomString(fakeLocations),
			Category:    faker.RandomString([]string{"Music", "Technology", "Social"}),
			Date:        faker.DateRange(now.AddDate(0, 0, -20), now.AddDate(0, 0, 40)),
			Capacity:    faker.Number(1, 1500),
			Attendees:   faker.Number(0, 1500),
		}
		// Repeat some capacities and dates so ties are exercised.
		if i%7 == 0 && i > 0 {
			events[i].Capacity = events[i-1].Capacity
			events[i].Date = events[i-1].Date
		}
	}
	return events
}
