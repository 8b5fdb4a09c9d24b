package db

// NoOffset marks a roster row without a fixed rotation
const NoOffset = -1

// RosterRun represents a stored search run
type RosterRun struct {
	ID                string  `ssql_header:"id" ssql_type:"uuid"`
	PeriodStart       string  `ssql_header:"period_start" ssql_type:"date"`
	Days              int     `ssql_header:"days" ssql_type:"int"`
	StaffCount        int     `ssql_header:"staff_count" ssql_type:"int"`
	Seed              uint64  `ssql_header:"seed" ssql_type:"text"`
	Score             float64 `ssql_header:"score" ssql_type:"float"`
	Generations       int     `ssql_header:"generations" ssql_type:"int"`
	StopReason        string  `ssql_header:"stop_reason" ssql_type:"text"`
	CreatedAt         string  `ssql_header:"created_at" ssql_type:"timestamp"`
	PublishedDatetime string  `ssql_header:"published_datetime" ssql_type:"timestamp"`
}

// RosterRow is one staff member's line of a stored run. Codes holds the
// space separated shift labels for every day of the period.
type RosterRow struct {
	RunID      string `ssql_header:"run_id" ssql_type:"uuid"`
	StaffIndex int    `ssql_header:"staff_index" ssql_type:"int"`
	StaffName  string `ssql_header:"staff_name" ssql_type:"text"`
	Team       string `ssql_header:"team" ssql_type:"text"`
	Categories string `ssql_header:"categories" ssql_type:"text"`
	Offset     int    `ssql_header:"rotation_offset" ssql_type:"int"`
	Codes      string `ssql_header:"codes" ssql_type:"text"`
}
