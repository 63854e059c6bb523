package store

import (
	"errors"

	"github.com/vie2206/levelup-backend/internal/models"
)

var (
	// ErrUserNotFound is returned when no user matches the given id or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrValidation is returned when a submission is missing required fields.
	ErrValidation = errors.New("test name and score are required")
)

// DefaultAttempted is assumed when a submission omits the attempted count.
const DefaultAttempted = 120

// TestInput is the client payload for a test submission. Pointer fields
// distinguish "absent" from zero.
type TestInput struct {
	TestName  string   `json:"testName"`
	Score     *float64 `json:"score"`
	Attempted *int     `json:"attempted"`
	Correct   *int     `json:"correct"`
	Incorrect *int     `json:"incorrect"`
}

// UserRepository is the user directory. Implementations must preserve
// insertion order in ListAll.
type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Upsert(profile models.Profile) (*models.User, error)
	ListAll() []models.User
	Count() int
	RecordTest(userID string, input TestInput) (*models.User, *models.Test, error)
}

// LedgerRepository is the append-only global log of submissions.
type LedgerRepository interface {
	Append(entry models.LedgerEntry)
	All() []models.LedgerEntry
	Recent(n int) []models.LedgerEntry
	Count() int
	TopScore() float64
}
