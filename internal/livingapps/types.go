package livingapps

import (
	"encoding/json"
	"math"

	"github.com/mnogodumalon/habits/internal/model"
)

// record is the envelope every Living Apps record is wrapped in.
type record[F any] struct {
	ID        string  `json:"id,omitempty"`
	CreatedAt string  `json:"createdat,omitempty"`
	UpdatedAt *string `json:"updatedat,omitempty"`
	Fields    F       `json:"fields"`
}

// fieldsBody is the request body for create and update calls.
type fieldsBody[F any] struct {
	Fields F `json:"fields"`
}

// createResponse covers the shapes seen in POST answers. Either field may
// be absent.
type createResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// UnmarshalJSON also accepts a bare JSON string holding the new record's URL.
func (r *createResponse) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		r.URL = url
		return nil
	}
	type plain createResponse
	return json.Unmarshal(data, (*plain)(r))
}

// habitFields mirrors the habit app's field layout. Numbers arrive as
// JSON numbers that may carry a fractional part.
type habitFields struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Frequency   string   `json:"frequency,omitempty"`
	TargetCount *float64 `json:"target_count,omitempty"`
	Color       string   `json:"color,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

type habitPatchFields struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Frequency   *string  `json:"frequency,omitempty"`
	TargetCount *float64 `json:"target_count,omitempty"`
	Color       *string  `json:"color,omitempty"`
	Icon        *string  `json:"icon,omitempty"`
}

// habitLogFields mirrors the habit log app. HabitID holds a record URL.
type habitLogFields struct {
	HabitID   string `json:"habit_id,omitempty"`
	Date      string `json:"date,omitempty"`
	Completed bool   `json:"completed"`
	Notes     string `json:"notes"`
}

type habitLogPatchFields struct {
	Date      *string `json:"date,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func toHabit(id string, f habitFields) model.Habit {
	h := model.Habit{
		ID:          id,
		Name:        f.Name,
		Description: f.Description,
		Frequency:   model.Frequency(f.Frequency),
		Color:       f.Color,
		Icon:        f.Icon,
		CreatedAt:   model.Day(f.CreatedAt),
	}
	if f.TargetCount != nil {
		h.TargetCount = int(math.Round(*f.TargetCount))
	}
	return h
}

func fromHabitFields(f model.HabitFields) habitFields {
	out := habitFields{
		Name:        f.Name,
		Description: f.Description,
		Frequency:   string(f.Frequency),
		Color:       f.Color,
		Icon:        f.Icon,
		CreatedAt:   string(f.CreatedAt),
	}
	if f.TargetCount > 0 {
		n := float64(f.TargetCount)
		out.TargetCount = &n
	}
	return out
}

func fromHabitPatch(p model.HabitPatch) habitPatchFields {
	out := habitPatchFields{
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		Icon:        p.Icon,
	}
	if p.Frequency != nil {
		s := string(*p.Frequency)
		out.Frequency = &s
	}
	if p.TargetCount != nil {
		n := float64(*p.TargetCount)
		out.TargetCount = &n
	}
	return out
}

func toHabitLog(id string, f habitLogFields) model.HabitLog {
	ref, _ := DecodeRef(f.HabitID)
	return model.HabitLog{
		ID:        id,
		HabitID:   ref.RecordID,
		Date:      model.Day(f.Date),
		Completed: f.Completed,
		Notes:     f.Notes,
	}
}

func fromHabitLogPatch(p model.HabitLogPatch) habitLogPatchFields {
	out := habitLogPatchFields{
		Completed: p.Completed,
		Notes:     p.Notes,
	}
	if p.Date != nil {
		s := string(*p.Date)
		out.Date = &s
	}
	return out
}
