package calendars

// ---------- requests

type UpdateCalendarRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`

	// Subject of the principal the calendar is assigned to. Empty string
	// clears the assignment.
	AssigneeSub *string `json:"assignee_sub"`
}

// Calendar creation and picture uploads arrive as multipart forms: metadata
// fields plus one file per day, named day_1 .. day_24.
const dayFieldPrefix = "day_"
