package models

import "time"

// User is a platform account, created on first Google login.
type User struct {
	ID           string    `json:"id"`
	GoogleID     string    `json:"googleId"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar"`
	Role         string    `json:"role"`
	Tests        []Test    `json:"tests"`
	TotalTests   int       `json:"totalTests"`
	AverageScore int       `json:"averageScore"`
	BestScore    float64   `json:"bestScore"`
	JoinedDate   time.Time `json:"joinedDate"`
	LastLogin    time.Time `json:"lastLogin"`
}

// PublicView strips the provider identity before the user is sent to clients.
func (u *User) PublicView() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Avatar:       u.Avatar,
		Role:         u.Role,
		Tests:        u.Tests,
		TotalTests:   u.TotalTests,
		AverageScore: u.AverageScore,
		BestScore:    u.BestScore,
		JoinedDate:   u.JoinedDate,
		LastLogin:    u.LastLogin,
	}
}

// PublicUser is the client-facing shape of User.
type PublicUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar"`
	Role         string    `json:"role"`
	Tests        []Test    `json:"tests"`
	TotalTests   int       `json:"totalTests"`
	AverageScore int       `json:"averageScore"`
	BestScore    float64   `json:"bestScore"`
	JoinedDate   time.Time `json:"joinedDate"`
	LastLogin    time.Time `json:"lastLogin"`
}

// Test is a single graded submission. Immutable once recorded.
type Test struct {
	ID        string    `json:"id"`
	TestName  string    `json:"testName"`
	Score     float64   `json:"score"`
	Attempted int       `json:"attempted"`
	Correct   int       `json:"correct"`
	Incorrect int       `json:"incorrect"`
	Accuracy  int       `json:"accuracy"`
	Date      time.Time `json:"date"`
}

// LedgerEntry is a Test denormalized with its owner, kept in the global
// ledger for cross-user analytics.
type LedgerEntry struct {
	Test
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
}

// Profile holds the claims obtained from the identity provider.
type Profile struct {
	GoogleID string
	Email    string
	Name     string
	Avatar   string
}
