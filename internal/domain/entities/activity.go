package entities

// Activity is one entry of the backend collection, keyed by Name.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// SpotsLeft is capacity minus current participant count. It is not clamped:
// an overbooked activity reports a negative value.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

func (a Activity) HasParticipants() bool {
	return len(a.Participants) > 0
}

// Snapshot is the result of one fetch, in response order. The activity list
// and the selection control are both rendered from the same Snapshot.
type Snapshot struct {
	Activities []Activity
}

// Names returns the activity names in response order.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.Activities))
	for _, a := range s.Activities {
		names = append(names, a.Name)
	}
	return names
}

func (s Snapshot) Find(name string) (Activity, bool) {
	for _, a := range s.Activities {
		if a.Name == name {
			return a, true
		}
	}
	return Activity{}, false
}
