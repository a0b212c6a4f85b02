package constants

// SessionState represents the current state of the TUI application
type SessionState int

// RequirementType identifies how a badge is earned
type RequirementType string

const (
	AppName            = "microhabit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/microhabit"
	DefaultConfigFile  = "config.toml"
	DefaultDBFile      = "microhabit.db"
	Version            = "v0.3.0"

	// EnvDBConnection overrides the storage location (path or PostgreSQL connection string)
	EnvDBConnection = "MICROHABIT_DB_CONNECTION"

	// DateFormat is the canonical date key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DisplayDateFormat is used when dates are shown to the user
	DisplayDateFormat = "Jan 02, 2006"

	// MonthFormat is the format accepted by history --month (YYYY-MM)
	MonthFormat = "2006-01"

	// Scoring defaults
	DefaultPointsPerStar     = 2
	DefaultPenaltyMultiplier = 2
	DefaultPointsPerLevel    = 100

	// Star rating bounds
	MinStars = 0
	MaxStars = 5

	// Onboarding selection bounds
	MinOnboardingHabits = 3
	MaxOnboardingHabits = 5

	// Persisted keys
	KeyHabits             = "habits"
	KeyLogs               = "habit_logs"
	KeyUserProfile        = "user_profile"
	KeyOnboardingComplete = "onboarding_complete"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "microhabit-"
	BackupFileSuffix = ".db"

	// Badge requirement kinds
	RequirementTotalLogs          RequirementType = "total_logs"
	RequirementStreak             RequirementType = "streak"
	RequirementTotalStars         RequirementType = "total_stars"
	RequirementMonthlyConsistency RequirementType = "monthly_consistency"
	RequirementLevel              RequirementType = "level"
	RequirementPerfectDay         RequirementType = "perfect_day"

	// Badge ids
	BadgeFirstHabit        = "first_habit"
	BadgeWeekStreak        = "week_streak"
	BadgeHundredStars      = "hundred_stars"
	BadgeConsistencyMaster = "consistency_master"
	BadgeLevelFive         = "level_five"
	BadgePerfectDay        = "perfect_day"
)

// Session States
const (
	StateToday SessionState = iota
	StateHistory
	StateProfile
)
