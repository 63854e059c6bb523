package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/vie2206/levelup-backend/internal/auth"
)

const sessionName = "levelup-session"

// GoogleLoginHandler redirects the client to the Google consent page.
func (h *Handler) GoogleLoginHandler(c *gin.Context) {
	state, err := auth.NewState()
	if err != nil {
		log.Printf("ERROR: Could not generate OAuth state: %v", err)
		h.redirectAuthFailed(c)
		return
	}

	session, _ := h.Sessions.Get(c.Request, sessionName)
	session.Values["oauth_state"] = state
	if err := session.Save(c.Request, c.Writer); err != nil {
		log.Printf("ERROR: Could not save session: %v", err)
		h.redirectAuthFailed(c)
		return
	}

	c.Redirect(http.StatusFound, h.Google.AuthURL(state))
}

// GoogleCallbackHandler completes the handshake: it checks the state nonce,
// exchanges the code, upserts the user and hands a session token back to
// the frontend. Every failure ends in the same error redirect.
func (h *Handler) GoogleCallbackHandler(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		log.Printf("WARNING: Provider denied authentication: %s", errParam)
		h.redirectAuthFailed(c)
		return
	}

	session, _ := h.Sessions.Get(c.Request, sessionName)
	wantState, _ := session.Values["oauth_state"].(string)
	delete(session.Values, "oauth_state")
	_ = session.Save(c.Request, c.Writer)

	if wantState == "" || c.Query("state") != wantState {
		log.Println("WARNING: OAuth state mismatch on callback")
		h.redirectAuthFailed(c)
		return
	}

	code := c.Query("code")
	if code == "" {
		h.redirectAuthFailed(c)
		return
	}

	profile, err := h.Google.Exchange(c.Request.Context(), code)
	if err != nil {
		log.Printf("ERROR: OAuth exchange failed: %v", err)
		h.redirectAuthFailed(c)
		return
	}

	user, err := h.Users.Upsert(profile)
	if err != nil {
		log.Printf("ERROR: Could not upsert user: %v", err)
		h.redirectAuthFailed(c)
		return
	}

	token, err := h.Issuer.Issue(user)
	if err != nil {
		log.Printf("ERROR: Could not issue session token: %v", err)
		h.redirectAuthFailed(c)
		return
	}

	userJSON, err := json.Marshal(user.PublicView())
	if err != nil {
		h.redirectAuthFailed(c)
		return
	}

	redirect := h.FrontendURL + "?token=" + url.QueryEscape(token) +
		"&user=" + url.QueryEscape(string(userJSON))
	c.Redirect(http.StatusFound, redirect)
}

// LogoutHandler clears the cookie session. Bearer tokens stay valid until
// they expire; only the browser session is dropped.
func (h *Handler) LogoutHandler(c *gin.Context) {
	session, _ := h.Sessions.Get(c.Request, sessionName)
	session.Options.MaxAge = -1
	if err := session.Save(c.Request, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) redirectAuthFailed(c *gin.Context) {
	c.Redirect(http.StatusFound, h.FrontendURL+"?error=auth_failed")
}
