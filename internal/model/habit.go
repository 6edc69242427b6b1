package model

// Frequency is how often a habit is meant to be performed. Only
// FrequencyDaily is interpreted by streak computations.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Default presentation values used when a habit has no color or icon.
const (
	DefaultHabitColor = "#8B5CF6"
	DefaultHabitIcon  = "🎯"
)

// ColorOption is a named entry of the habit color palette.
type ColorOption struct {
	Value string
	Label string
}

// HabitColors is the palette offered when creating a habit.
var HabitColors = []ColorOption{
	{Value: "#8B5CF6", Label: "Purple"},
	{Value: "#10B981", Label: "Green"},
	{Value: "#F59E0B", Label: "Amber"},
	{Value: "#3B82F6", Label: "Blue"},
	{Value: "#EC4899", Label: "Pink"},
	{Value: "#EF4444", Label: "Red"},
	{Value: "#06B6D4", Label: "Cyan"},
}

// HabitColorValues returns the hex values of the palette in order.
func HabitColorValues() []string {
	out := make([]string, len(HabitColors))
	for i, c := range HabitColors {
		out[i] = c.Value
	}
	return out
}

// HabitIcons is the icon set offered when creating a habit.
var HabitIcons = []string{
	"🧘", "💪", "📚", "💧", "✍️", "🎯", "🏃", "🎨", "🎵", "💤", "🥗", "💊",
}

// Habit is a user-defined recurring activity. Habits are owned by the
// record store; the dashboard only holds cached copies.
type Habit struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Frequency   Frequency `json:"frequency" db:"frequency"`
	TargetCount int       `json:"target_count" db:"target_count"`
	Color       string    `json:"color" db:"color"`
	Icon        string    `json:"icon" db:"icon"`
	CreatedAt   Day       `json:"created_at" db:"created_at"`
}

// DisplayColor returns the habit color, falling back to the default.
func (h Habit) DisplayColor() string {
	if h.Color == "" {
		return DefaultHabitColor
	}
	return h.Color
}

// DisplayIcon returns the habit icon, falling back to the default.
func (h Habit) DisplayIcon() string {
	if h.Icon == "" {
		return DefaultHabitIcon
	}
	return h.Icon
}

// HabitLog records whether a habit was performed on a given day.
type HabitLog struct {
	ID string `json:"id" db:"id"`

	// HabitID is the decoded reference to the owning habit. It is empty
	// when the stored reference could not be decoded.
	HabitID string `json:"habit_id" db:"habit_id"`

	// Date is the day the log applies to, not its creation time.
	Date Day `json:"date" db:"date"`

	Completed bool   `json:"completed" db:"completed"`
	Notes     string `json:"notes" db:"notes"`
}

// HabitFields is the writable field set of a habit.
type HabitFields struct {
	Name        string
	Description string
	Frequency   Frequency
	TargetCount int
	Color       string
	Icon        string
	CreatedAt   Day
}

// HabitPatch is a partial habit update; nil fields are left untouched.
type HabitPatch struct {
	Name        *string
	Description *string
	Frequency   *Frequency
	TargetCount *int
	Color       *string
	Icon        *string
}

// HabitLogFields is the writable field set of a habit log.
type HabitLogFields struct {
	HabitID   string
	Date      Day
	Completed bool
	Notes     string
}

// HabitLogPatch is a partial habit log update; nil fields are left untouched.
type HabitLogPatch struct {
	Date      *Day
	Completed *bool
	Notes     *string
}

// HabitDraft is what a user fills in when adding a habit.
type HabitDraft struct {
	Name        string
	Description string
	Color       string
	Icon        string
}

// CreateResult is the store's answer to a create call. ID is empty when
// the backend did not expose the assigned identifier.
type CreateResult struct {
	ID string
}
