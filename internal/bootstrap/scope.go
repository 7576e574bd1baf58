package bootstrap

import (
	"github.com/golang-jwt/jwt/v4"

	"realtime-task-manager/config"
	"realtime-task-manager/internal/model"
)

// Scope is the session owner stamped on created tasks. Fields left empty in
// config are read from the access token claims "sub" and "email". The token
// is not verified here; the backend verifies it on every request.
func Scope(cfg *config.Config) model.Scope {
	sc := model.Scope{
		UserID: cfg.Session.UserID,
		Email:  cfg.Session.Email,
	}
	if (sc.UserID != "" && sc.Email != "") || cfg.Session.AccessToken == "" {
		return sc
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(cfg.Session.AccessToken, claims); err != nil {
		return sc
	}
	if sc.UserID == "" {
		sc.UserID, _ = claims["sub"].(string)
	}
	if sc.Email == "" {
		sc.Email, _ = claims["email"].(string)
	}
	return sc
}
