package domain

import "errors"

// Activity represents an extracurricular activity with its roster of
// registered participant emails. Participants are kept in signup order.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Registry validation errors. These are caller-input errors, never
// transient faults; the handler layer maps them to HTTP statuses.
var (
	// ErrActivityNotFound is returned when the activity name does not
	// match any registry key.
	ErrActivityNotFound = errors.New("activity not found")

	// ErrAlreadyRegistered is returned when the email is already on the
	// activity's roster.
	ErrAlreadyRegistered = errors.New("student is already signed up")

	// ErrNotRegistered is returned when the email is not on the
	// activity's roster.
	ErrNotRegistered = errors.New("student is not signed up for this activity")
)

// SeedActivities returns the fixed activity set the registry is seeded
// with at process start. A fresh map and slices are returned on every
// call so callers can mutate the result freely.
func SeedActivities() map[string]*Activity {
	return map[string]*Activity{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Gym Class": {
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
	}
}

// Clone returns a deep copy of the activity.
func (a *Activity) Clone() *Activity {
	participants := make([]string, len(a.Participants))
	copy(participants, a.Participants)
	return &Activity{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    participants,
	}
}
