package storage

import (
	"errors"

	"github.com/julianstephens/alpha/internal/models"
)

// ErrNotFound is returned by single-record lookups when nothing matches.
var ErrNotFound = errors.New("not found")

// Repository is the data surface shared by a store and its transactions.
type Repository interface {
	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Profile
	GetProfile(userID string) (models.Profile, error)
	SaveProfile(models.Profile) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	// ListHabits returns every habit for the user, inactive ones included,
	// pinned first then by creation time. Days are not attached.
	ListHabits(userID string) ([]models.Habit, error)
	// ListActiveHabits returns the user's active habits with their live
	// completion days attached.
	ListActiveHabits(userID string) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	UpdateStreak(habitID string, value int) error
	// DeleteHabit removes the habit and every completion recorded for it.
	DeleteHabit(id string) error

	// Completions
	// ListCompletions returns the live completion days for a habit, oldest first.
	ListCompletions(habitID string) ([]string, error)
	// SetCompletion marks a day done or not done. Undoing soft-deletes the
	// row so redoing the same day restores it.
	SetCompletion(habitID, day string, done bool) error
	IsCompleted(habitID, day string) (bool, error)

	// Sprints
	AddSprint(models.Sprint) error
	// GetSprint returns the sprint with its objectives ordered by position.
	GetSprint(id string) (models.Sprint, error)
	ListSprints(userID string) ([]models.Sprint, error)
	// ActiveSprint returns the most recently started sprint covering day, or nil.
	ActiveSprint(userID, day string) (*models.Sprint, error)
	UpdateSprint(models.Sprint) error
	DeleteSprint(id string) error

	// Objectives
	AddObjective(models.Objective) error
	GetObjective(id string) (models.Objective, error)
	ListObjectives(sprintID string) ([]models.Objective, error)
	UpdateObjective(models.Objective) error
	DeleteObjective(id string) error

	// Alpha scores
	// AppendScore inserts a snapshot with its categories and metrics. Snapshots
	// are never updated.
	AppendScore(userID string, score models.AlphaScore) (models.AlphaScore, error)
	// GetLatestScore returns nil, nil when the user has no snapshots.
	GetLatestScore(userID string) (*models.AlphaScore, error)
	// GetPrecedingScore returns the latest snapshot for a quarter strictly
	// before (quarter, year), or nil, nil.
	GetPrecedingScore(userID string, quarter, year int) (*models.AlphaScore, error)
	ListScores(userID string) ([]models.AlphaScore, error)

	// Finances
	// GetFinancialData returns the user's record with income and expenses
	// attached. A user with no record gets a zero value, not ErrNotFound.
	GetFinancialData(userID string) (models.FinancialData, error)
	SaveFinancialData(models.FinancialData) error
	AddIncomeSource(models.IncomeSource) error
	DeleteIncomeSource(id string) error
	SetExpense(userID string, expense models.MonthlyExpense) error

	// Challenges
	AddChallenge(models.Challenge) error
	GetChallenge(id string) (models.Challenge, error)
	// ListChallenges filters by year, and by month when month > 0.
	ListChallenges(userID string, year, month int) ([]models.Challenge, error)
	UpdateChallenge(models.Challenge) error
	DeleteChallenge(id string) error

	// Bulk retrieval for export
	ListAllCompletions(userID string) ([]models.Completion, error)
}

// Provider is a database-backed Repository with a lifecycle.
type Provider interface {
	Repository

	// Lifecycle
	Init() error
	Load() error
	Close() error

	// WithTx runs fn against a Repository bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(fn func(Repository) error) error

	// Utils
	GetConfigPath() string
}
