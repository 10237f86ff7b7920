package models

import (
	"encoding/json"
	"strings"
)

// Row is one spreadsheet row. Cells map positionally to the sheet's columns.
type Row []string

// Submission is the simple 5-column record: key, name, phone, email, extra.
type Submission struct {
	ActivityID string `json:"activityId"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Message    string `json:"message"`
}

func (s Submission) Row() Row {
	return Row{s.ActivityID, s.Name, s.Phone, s.Email, s.Message}
}

// Registration is the 9-column record written by the validated handler.
type Registration struct {
	ActivityID  string `json:"activityId"`
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Sex         string `json:"sex"`
	Nationality string `json:"nationality"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	School      string `json:"school"`
	Message     string `json:"message"`
}

func (r Registration) Row() Row {
	return Row{r.ActivityID, r.UserID, r.Name, r.Sex, r.Nationality, r.Phone, r.Email, r.School, r.Message}
}

// Missing lists the required registration fields that are empty.
func (r Registration) Missing() []string {
	required := []struct {
		name  string
		value string
	}{
		{"activityId", r.ActivityID},
		{"name", r.Name},
		{"sex", r.Sex},
		{"nationality", r.Nationality},
		{"phone", r.Phone},
		{"email", r.Email},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

type LookupResult struct {
	Found bool
	Row   Row
}

// Event is one entry of the static event catalog.
type Event struct {
	ID    EventID `json:"id"`
	Title string  `json:"title"`
}

// EventID accepts both JSON strings and numbers and keeps the textual form.
type EventID string

func (id *EventID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = EventID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = EventID(n.String())
	return nil
}
