package store

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vie2206/levelup-backend/internal/models"
)

// UserStore is an in-memory implementation of UserRepository. A single
// mutex guards the directory so a history append and its aggregate
// recompute are never observable half-done.
type UserStore struct {
	mu    sync.RWMutex
	byID  map[string]*models.User
	order []string
	now   func() time.Time
}

func NewUserStore() *UserStore {
	return NewUserStoreWithClock(time.Now)
}

// NewUserStoreWithClock allows deterministic timestamps in tests.
func NewUserStoreWithClock(now func() time.Time) *UserStore {
	return &UserStore{
		byID: make(map[string]*models.User),
		now:  now,
	}
}

func (s *UserStore) FindByID(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return copyUser(user), nil
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if s.byID[id].Email == email {
			return copyUser(s.byID[id]), nil
		}
	}
	return nil, ErrUserNotFound
}

// Upsert creates a user on first login and refreshes lastLogin afterwards.
// Keyed by the provider's subject id, so repeated logins are idempotent.
func (s *UserStore) Upsert(profile models.Profile) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, id := range s.order {
		user := s.byID[id]
		if user.GoogleID == profile.GoogleID {
			user.LastLogin = now
			return copyUser(user), nil
		}
	}

	user := &models.User{
		ID:         uuid.NewString(),
		GoogleID:   profile.GoogleID,
		Email:      profile.Email,
		Name:       profile.Name,
		Avatar:     profile.Avatar,
		Role:       "student",
		Tests:      []models.Test{},
		JoinedDate: now,
		LastLogin:  now,
	}
	s.byID[user.ID] = user
	s.order = append(s.order, user.ID)
	return copyUser(user), nil
}

func (s *UserStore) ListAll() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, *copyUser(s.byID[id]))
	}
	return users
}

func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// RecordTest validates the submission, grades it, appends it to the user's
// history and recomputes the user's aggregates under one lock.
func (s *UserStore) RecordTest(userID string, input TestInput) (*models.User, *models.Test, error) {
	if input.TestName == "" || input.Score == nil {
		return nil, nil, ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[userID]
	if !ok {
		return nil, nil, ErrUserNotFound
	}

	attempted := DefaultAttempted
	if input.Attempted != nil {
		attempted = *input.Attempted
	}
	correct, incorrect := 0, 0
	if input.Correct != nil {
		correct = *input.Correct
	}
	if input.Incorrect != nil {
		incorrect = *input.Incorrect
	}

	accuracy := 0
	if attempted > 0 {
		accuracy = int(math.Round(float64(correct) / float64(attempted) * 100))
	}

	test := models.Test{
		ID:        uuid.NewString(),
		TestName:  input.TestName,
		Score:     *input.Score,
		Attempted: attempted,
		Correct:   correct,
		Incorrect: incorrect,
		Accuracy:  accuracy,
		Date:      s.now(),
	}

	user.Tests = append(user.Tests, test)
	user.TotalTests = len(user.Tests)
	sum := 0.0
	best := 0.0
	for _, t := range user.Tests {
		sum += t.Score
		if t.Score > best {
			best = t.Score
		}
	}
	user.AverageScore = int(math.Round(sum / float64(len(user.Tests))))
	user.BestScore = best

	return copyUser(user), &test, nil
}

func copyUser(u *models.User) *models.User {
	out := *u
	out.Tests = make([]models.Test, len(u.Tests))
	copy(out.Tests, u.Tests)
	return &out
}
