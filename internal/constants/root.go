package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "alpha"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/alpha/alpha.db"
	DefaultConfigFile  = "~/.config/alpha/config.yaml"
	DefaultUser        = "me"
	Version            = "v0.3.0"

	// ConnectionEnvVar holds a PostgreSQL connection string when set
	ConnectionEnvVar = "ALPHA_DB_CONNECTION"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "alpha-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotificationDurationMs = 5000
	NotifierLockfileName   = "alpha-notifier.lock"
	TrayAppIdentifier      = "com.julianstephens.alpha"
	TrayExecutablePrefix   = "alpha-tray"
)

// Session States
const (
	StateDashboard SessionState = iota
	StateAddHabit
	StateScores
	StateConfirmDelete
)
