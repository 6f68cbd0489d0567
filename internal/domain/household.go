package domain

// ChecklistItem is one entry in a household list (quick to-dos or chores).
// AssignedTo is only used by chores.
type ChecklistItem struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	AssignedTo string `json:"assignedTo,omitempty"`
	Completed  bool   `json:"completed"`
}

// ScheduleEntry is one timed activity in a kid's day.
type ScheduleEntry struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

// Kid is a child with a rotating activity schedule. Color is the UI accent
// class for the kid's tab.
type Kid struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Color    string          `json:"color"`
	Schedule []ScheduleEntry `json:"schedule"`
}

// DefaultKids returns the household's configured schedule data.
func DefaultKids() []Kid {
	return []Kid{
		{
			ID:    1,
			Name:  "Safiya",
			Color: "bg-pink-100 text-pink-800 border-pink-200",
			Schedule: []ScheduleEntry{
				{Time: "08:25 AM", Activity: "School Drop-off"},
				{Time: "04:40 PM", Activity: "Ice Skating"},
			},
		},
		{
			ID:    2,
			Name:  "Dariya",
			Color: "bg-pink-100 text-pink-800 border-pink-200",
			Schedule: []ScheduleEntry{
				{Time: "08:25 AM", Activity: "School Drop-off"},
				{Time: "04:40 PM", Activity: "Ice Skating"},
			},
		},
	}
}
