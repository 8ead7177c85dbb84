package backend

import (
	"fmt"

	"github.com/tidwall/gjson"

	"activityroster/internal/domain"
	"activityroster/internal/domain/entities"
)

// activitiesFromJSON walks the collection object in document order so the
// Snapshot keeps the backend's insertion order.
func activitiesFromJSON(body []byte) ([]entities.Activity, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("activities: %w", domain.ErrMalformedResponse)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("activities: objet attendu: %w", domain.ErrMalformedResponse)
	}

	var (
		activities = []entities.Activity{}
		mapErr     error
	)
	root.ForEach(func(key, value gjson.Result) bool {
		a, err := activityFromJSON(key.String(), value)
		if err != nil {
			mapErr = err
			return false
		}
		activities = append(activities, a)
		return true
	})
	if mapErr != nil {
		return nil, mapErr
	}
	return activities, nil
}

func activityFromJSON(name string, v gjson.Result) (entities.Activity, error) {
	if !v.IsObject() {
		return entities.Activity{}, fmt.Errorf("activité %q: objet attendu: %w", name, domain.ErrMalformedResponse)
	}
	a := entities.Activity{
		Name:            name,
		Description:     v.Get("description").String(),
		Schedule:        v.Get("schedule").String(),
		MaxParticipants: int(v.Get("max_participants").Int()),
	}
	if p := v.Get("participants"); p.IsArray() {
		for _, email := range p.Array() {
			a.Participants = append(a.Participants, email.String())
		}
	}
	return a, nil
}

// messageFromJSON extracts {"message": ...} from a success body.
func messageFromJSON(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", domain.ErrMalformedResponse
	}
	return gjson.GetBytes(body, "message").String(), nil
}

// rejectionFromJSON builds the error for a non-2xx answer. Only a string
// detail is surfaced; structured details fall back to the generic text.
func rejectionFromJSON(status int, body []byte) error {
	if !gjson.ValidBytes(body) {
		return fmt.Errorf("status %d: %w", status, domain.ErrMalformedResponse)
	}
	rejected := &domain.RejectedError{Status: status}
	if detail := gjson.GetBytes(body, "detail"); detail.Type == gjson.String {
		rejected.Detail = detail.String()
	}
	return rejected
}
