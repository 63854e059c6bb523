package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/vie2206/levelup-backend/internal/models"
)

// GoogleVerifier drives the redirect-based Google OAuth handshake and
// turns the resulting ID token into profile claims.
type GoogleVerifier struct {
	config *oauth2.Config
}

func NewGoogleVerifier(clientID, clientSecret, callbackURL string) *GoogleVerifier {
	return &GoogleVerifier{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthURL builds the consent-page URL the client is redirected to.
func (v *GoogleVerifier) AuthURL(state string) string {
	return v.config.AuthCodeURL(state)
}

// Exchange trades the callback code for tokens and validates the embedded
// Google ID token, returning the profile claims it carries.
func (v *GoogleVerifier) Exchange(ctx context.Context, code string) (models.Profile, error) {
	token, err := v.config.Exchange(ctx, code)
	if err != nil {
		return models.Profile{}, fmt.Errorf("code exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return models.Profile{}, errors.New("no id_token in provider response")
	}

	payload, err := idtoken.Validate(ctx, rawIDToken, v.config.ClientID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("invalid Google ID token: %w", err)
	}

	profile := models.Profile{
		GoogleID: payload.Subject,
		Email:    claimString(payload.Claims, "email"),
		Name:     claimString(payload.Claims, "name"),
		Avatar:   claimString(payload.Claims, "picture"),
	}
	if profile.Email == "" {
		return models.Profile{}, errors.New("provider profile is missing an email")
	}
	return profile, nil
}

// NewState returns a random nonce used to bind the callback to this login.
func NewState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func claimString(claims map[string]interface{}, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}
