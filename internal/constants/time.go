package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat identifies a calendar month (YYYY-MM)
	MonthFormat = "2006-01"

	// TimestampFormat is used for every persisted timestamp
	TimestampFormat = "2006-01-02T15:04:05Z07:00"

	// DaysPerWeek bounds the rolling weekly window
	DaysPerWeek = 7

	// DefaultSprintDays is the nominal planning period for a sprint
	DefaultSprintDays = 90
)
