//go:build integration

package repository

import (
	"events-discovery/data/models"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBRepo(t *testing.T) {
	var userID, eventID string

	t.Run("Create test User", func(t *testing.T) {
		defer handleRecover(t.Name())

		id, err := testRepo.Create(models.User{
			Email:       "hello@example.com",
			Password:    "password",
			DisplayName: "Demo User",
		})
		require.NoError(t, err)
		assert.Len(t, id, 36)
		userID = id
	})

	t.Run("Create test Event", func(t *testing.T) {
		defer handleRecover(t.Name())

		id, err := testRepo.Create(models.Event{
			OrganizerID: userID,
			Title:       "Tech Conference",
			Description: "A test event",
			Location:    "New York",
			Date:        time.Now().Add(24 * time.Hour),
			Capacity:    200,
		})
		require.NoError(t, err)
		eventID = id
	})

	t.Run("Test GetUserByID", func(t *testing.T) {
		defer handleRecover(t.Name())

		u, err := testRepo.GetUserByID(userID)
		require.NoError(t, err)
		assert.Equal(t, "hello@example.com", u.Email)
		assert.NotEmpty(t, u.CreatedAt)
	})

	t.Run("Test GetEventByID", func(t *testing.T) {
		defer handleRecover(t.Name())

		e, err := testRepo.GetEventByID(eventID)
		require.NoError(t, err)
		assert.Equal(t, userID, e.OrganizerID)
		assert.Equal(t, "Tech Conference", e.Title)
		assert.Equal(t, 200, e.Capacity)
		assert.NotEmpty(t, e.CreatedAt)
	})

	t.Run("Test Update", func(t *testing.T) {
		defer handleRecover(t.Name())

		u, err := testRepo.GetUserByID(userID)
		require.NoError(t, err)

		u.Email = "newEmail@example.com"
		require.NoError(t, testRepo.Update(u))

		u, err = testRepo.GetUserByID(userID)
		require.NoError(t, err)
		assert.Equal(t, "newEmail@example.com", u.Email)
	})

	t.Run("Test unique constraint", func(t *testing.T) {
		defer handleRecover(t.Name())

		_, err := testRepo.Create(models.User{Email: "newEmail@example.com", Password: "password"})
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("Test Delete", func(t *testing.T) {
		defer handleRecover(t.Name())

		e, err := testRepo.GetEventByID(eventID)
		require.NoError(t, err)
		require.NoError(t, testRepo.Delete(e))

		_, err = testRepo.GetEventByID(eventID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Test QueryEvents", func(t *testing.T) {
		defer handleRecover(t.Name())
		seedDBWithEvents(t, userID)

		tests := []struct {
			name        string
			queryParams map[string]string
			expectedLen int
			expectedErr string
		}{
			{name: "exact title", queryParams: map[string]string{"title": "Tech Meetup"}, expectedLen: 2},
			{name: "case-insensitive contains", queryParams: map[string]string{"title_icontains": "festival"}, expectedLen: 1},
			{name: "no query params", queryParams: map[string]string{}, expectedLen: 10},
			{name: "increase limit", queryParams: map[string]string{"limit": "50"}, expectedLen: 18},
			{name: "capacity lower bound", queryParams: map[string]string{"capacity_gte": "200"}, expectedLen: 2},
			{name: "invalid model field", queryParams: map[string]string{"noSuchThing": "x"}, expectedErr: "invalid query: invalid query parameter: noSuchThing"},
			{name: "should be empty", queryParams: map[string]string{"title": "noSuchEvent"}, expectedLen: 0},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				defer handleRecover(tt.name)
				events, err := testRepo.QueryEvents(tt.queryParams)

				if tt.expectedErr != "" {
					assert.EqualError(t, err, tt.expectedErr)
					return
				}
				require.NoError(t, err)
				assert.Len(t, events, tt.expectedLen)
			})
		}
	})
}

func seedDBWithEvents(t *testing.T, organizerID string) {
	defer handleRecover("seeding DB")

	fixed := []models.Event{
		{OrganizerID: organizerID, Title: "Tech Meetup", Location: "Austin", Date: time.Now().Add(24 * time.Hour), Capacity: 40},
		{OrganizerID: organizerID, Title: "Tech Meetup", Location: "Chicago", Date: time.Now().Add(48 * time.Hour), Capacity: 300},
		{OrganizerID: organizerID, Title: "Summer Festival", Location: "Miami", Date: time.Now().Add(72 * time.Hour), Capacity: 1000},
	}

	faker := gofakeit.New(0)
	for i := 0; i < 15; i++ {
		e := models.Event{
			OrganizerID: organizerID,
			Title:       faker.LoremIpsumSentence(3),
			Description: faker.LoremIpsumSentence(15),
			Location:    faker.City(),
			Date:        faker.FutureDate(),
			Capacity:    75,
		}
		if _, err := testRepo.Create(e); err != nil {
			t.Fatalf("Could not seed DB: %s", err)
		}
	}

	for _, e := range fixed {
		if _, err := testRepo.Create(e); err != nil {
			t.Fatalf("Could not seed DB: %s", err)
		}
	}
}
