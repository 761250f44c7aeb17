package constants

const (
	SettingTimezone      = "timezone"
	SettingRemindEnabled = "remind_enabled"
	SettingWeekStart     = "week_start"

	DefaultTimezone      = "Local" // Use system local timezone by default
	DefaultRemindEnabled = true
	DefaultWeekStart     = "monday"
)
