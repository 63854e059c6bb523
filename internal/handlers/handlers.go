package handlers

import (
	"context"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/vie2206/levelup-backend/internal/ai"
	"github.com/vie2206/levelup-backend/internal/analytics"
	"github.com/vie2206/levelup-backend/internal/auth"
	"github.com/vie2206/levelup-backend/internal/middleware"
	"github.com/vie2206/levelup-backend/internal/models"
	"github.com/vie2206/levelup-backend/internal/store"
)

// IdentityVerifier is the slice of the Google flow the handlers need.
type IdentityVerifier interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (models.Profile, error)
}

type Handler struct {
	Users       store.UserRepository
	Ledger      store.LedgerRepository
	Issuer      *auth.TokenIssuer
	Google      IdentityVerifier
	Sessions    sessions.Store
	AIService   *ai.Service
	FrontendURL string
	Environment string
}

func New(users store.UserRepository, ledger store.LedgerRepository, issuer *auth.TokenIssuer,
	google IdentityVerifier, sessionStore sessions.Store, aiService *ai.Service,
	frontendURL, environment string) Handler {
	return Handler{
		Users:       users,
		Ledger:      ledger,
		Issuer:      issuer,
		Google:      google,
		Sessions:    sessionStore,
		AIService:   aiService,
		FrontendURL: frontendURL,
		Environment: environment,
	}
}

// Register wires every route onto the router.
func (h *Handler) Register(router *gin.Engine) {
	router.GET("/", h.HealthHandler)

	router.GET("/auth/google", h.GoogleLoginHandler)
	router.GET("/auth/google/callback", h.GoogleCallbackHandler)
	router.GET("/auth/logout", h.LogoutHandler)

	api := router.Group("/api")
	{
		api.GET("/user/:email", h.UserByEmailHandler)
		api.GET("/leaderboard", h.LeaderboardHandler)
		api.GET("/students", h.StudentsHandler)
		api.GET("/stats", h.StatsHandler)

		authorized := api.Group("/")
		authorized.Use(middleware.RequireAuth(h.Issuer))
		{
			authorized.GET("/user", h.CurrentUserHandler)
			authorized.POST("/mock-test", h.MockTestHandler)
			authorized.GET("/analytics", h.MyAnalyticsHandler)
			authorized.GET("/analytics/:email", h.AnalyticsByEmailHandler)
			authorized.POST("/practice-test", h.PracticeTestHandler)
		}
	}
}

// HealthHandler reports liveness plus a few platform counters.
func (h *Handler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"message":     "LevelUp API is running",
		"environment": h.Environment,
		"totalUsers":  h.Users.Count(),
		"totalTests":  h.Ledger.Count(),
		"features": []string{
			"google-oauth",
			"mock-tests",
			"analytics",
			"leaderboard",
		},
	})
}

func (h *Handler) CurrentUserHandler(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}

	user, err := h.Users.FindByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user.PublicView())
}

func (h *Handler) UserByEmailHandler(c *gin.Context) {
	user, err := h.Users.FindByEmail(c.Param("email"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user.PublicView())
}

// MockTestHandler records a graded submission for the logged-in user.
func (h *Handler) MockTestHandler(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}

	var input store.TestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, test, err := h.Users.RecordTest(claims.UserID, input)
	switch err {
	case nil:
	case store.ErrValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Test name and score are required"})
		return
	case store.ErrUserNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record test"})
		return
	}

	h.Ledger.Append(models.LedgerEntry{
		Test:      *test,
		UserID:    user.ID,
		UserEmail: user.Email,
		UserName:  user.Name,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user.PublicView(),
		"test":    test,
		"message": "Test recorded successfully",
	})
}

func (h *Handler) MyAnalyticsHandler(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}

	user, err := h.Users.FindByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	h.renderAnalytics(c, user)
}

func (h *Handler) AnalyticsByEmailHandler(c *gin.Context) {
	user, err := h.Users.FindByEmail(c.Param("email"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	h.renderAnalytics(c, user)
}

func (h *Handler) renderAnalytics(c *gin.Context, user *models.User) {
	c.JSON(http.StatusOK, gin.H{
		"totalTests":     user.TotalTests,
		"averageScore":   user.AverageScore,
		"bestScore":      user.BestScore,
		"recentTests":    analytics.RecentTests(user.Tests, 5),
		"improvement":    analytics.Improvement(user.Tests),
		"consistency":    analytics.Consistency(user.Tests),
		"weeklyProgress": analytics.WeeklyProgress(user.Tests, time.Now()),
	})
}

// LeaderboardHandler ranks users with at least one test by average score.
func (h *Handler) LeaderboardHandler(c *gin.Context) {
	type entry struct {
		Rank         int     `json:"rank"`
		Name         string  `json:"name"`
		Email        string  `json:"email"`
		Avatar       string  `json:"avatar"`
		AverageScore int     `json:"averageScore"`
		BestScore    float64 `json:"bestScore"`
		TotalTests   int     `json:"totalTests"`
	}

	users := h.Users.ListAll()
	entries := []entry{}
	for _, u := range users {
		if u.TotalTests == 0 {
			continue
		}
		entries = append(entries, entry{
			Name:         u.Name,
			Email:        u.Email,
			Avatar:       u.Avatar,
			AverageScore: u.AverageScore,
			BestScore:    u.BestScore,
			TotalTests:   u.TotalTests,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AverageScore > entries[j].AverageScore
	})
	if len(entries) > 20 {
		entries = entries[:20]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

func (h *Handler) StudentsHandler(c *gin.Context) {
	users := h.Users.ListAll()
	students := make([]models.PublicUser, 0, len(users))
	for i := range users {
		students = append(students, users[i].PublicView())
	}
	c.JSON(http.StatusOK, gin.H{"students": students, "count": len(students)})
}

// StatsHandler reports platform-wide aggregates from the ledger.
func (h *Handler) StatsHandler(c *gin.Context) {
	entries := h.Ledger.All()

	active := 0
	for _, u := range h.Users.ListAll() {
		if u.TotalTests > 0 {
			active++
		}
	}

	average := 0
	if len(entries) > 0 {
		sum := 0.0
		for _, e := range entries {
			sum += e.Score
		}
		average = int(math.Round(sum / float64(len(entries))))
	}

	c.JSON(http.StatusOK, gin.H{
		"totalStudents":  h.Users.Count(),
		"activeStudents": active,
		"totalTests":     len(entries),
		"averageScore":   average,
		"topScore":       h.Ledger.TopScore(),
		"recentActivity": h.Ledger.Recent(10),
	})
}

// PracticeTestHandler generates practice questions with the AI service.
func (h *Handler) PracticeTestHandler(c *gin.Context) {
	if h.AIService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Practice test generation is not configured"})
		return
	}

	var req struct {
		Subject string `json:"subject" binding:"required"`
		Count   int    `json:"count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: subject is required"})
		return
	}

	questions, err := h.AIService.GeneratePracticeTest(c.Request.Context(), req.Subject, req.Count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate practice test"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subject": req.Subject, "questions": questions})
}
