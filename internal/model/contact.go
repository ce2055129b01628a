package model

// Contact is one normalized row of an uploaded contact spreadsheet.
// PhoneNormalized is the stable identity key: two records sharing it are
// treated as the same contact when selection or send-status is propagated.
type Contact struct {
	RecordNumber    string `json:"record_number"`
	Status          string `json:"status"`
	FullName        string `json:"full_name"`
	Neighborhood    string `json:"neighborhood"`
	PhoneDisplay    string `json:"phone_display"`
	PhoneNormalized string `json:"phone_normalized"`
	Email           string `json:"email"`
	Age             string `json:"age"`
	ShiftPreference string `json:"shift_preference"`
	Selected        bool   `json:"selected"`
	MessageSent     bool   `json:"message_sent"`
}

// RosterView is the filtered view of a roster plus the predicates that
// produced it, as returned to the console.
type RosterView struct {
	Contacts    []*Contact `json:"contacts"`
	SearchTerm  string     `json:"search_term"`
	ActiveShift string     `json:"active_shift"`
	Total       int        `json:"total"`
}

// UploadResult summarizes a completed spreadsheet ingestion.
type UploadResult struct {
	Loaded int      `json:"loaded"`
	Shifts []string `json:"shifts"`
}

type SearchRequest struct {
	Term string `json:"term"`
}

type ShiftFilterRequest struct {
	Shift string `json:"shift" binding:"required"`
}

type SelectionRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Selected *bool  `json:"selected" binding:"required"`
}

type SelectAllRequest struct {
	Selected *bool `json:"selected" binding:"required"`
}
