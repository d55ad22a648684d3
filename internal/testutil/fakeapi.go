// Package testutil provides an in-process stand-in for the travel
// backend so the client stack can be exercised end-to-end without a
// network. The fake speaks the same wire contract as the real API:
// /api/auth/login, /api/auth/validate, and the bearer-guarded admin
// resources.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const signingSecret = "fake-api-secret"

// Account seeds a user the fake API will authenticate.
type Account struct {
	Username string
	Password string
	Role     string
	Email    string
}

// FakeAPI wraps an httptest server that implements the travel API's auth
// and admin endpoints.
type FakeAPI struct {
	Server *httptest.Server

	accounts map[string]Account

	// ValidateCalls counts hits on /api/auth/validate.
	ValidateCalls atomic.Int64
	// RejectTokens forces validate to answer {valid:false} for any token.
	RejectTokens atomic.Bool
	// FailWith500 makes every endpoint answer 500.
	FailWith500 atomic.Bool
}

// NewFakeAPI starts the fake backend with the given accounts. Callers
// must Close it.
func NewFakeAPI(accounts ...Account) *FakeAPI {
	f := &FakeAPI{accounts: make(map[string]Account, len(accounts))}
	for _, a := range accounts {
		f.accounts[a.Username] = a
	}

	e := echo.New()
	e.HideBanner = true

	e.POST("/api/auth/login", f.login)
	e.GET("/api/auth/validate", f.validate)

	admin := e.Group("/api", f.requireBearer)
	admin.GET("/hotels", listPayload("hotels"))
	admin.GET("/hotels/:id", itemPayload("hotel"))
	admin.POST("/hotels", createPayload("hotel"))
	admin.PUT("/hotels/:id", updatePayload("hotel"))
	admin.DELETE("/hotels/:id", deletePayload())
	admin.GET("/cards", listPayload("cards"))
	admin.GET("/cards/:id", itemPayload("card"))
	admin.POST("/cards", createPayload("card"))
	admin.DELETE("/cards/:id", deletePayload())
	admin.GET("/bookings", listPayload("bookings"))
	admin.POST("/bookings", createPayload("booking"))
	admin.PUT("/bookings/:id", updatePayload("booking"))
	admin.DELETE("/bookings/:id", deletePayload())
	admin.GET("/admin/stats", listPayload("stats"))

	f.Server = httptest.NewServer(e)
	return f
}

// URL returns the base URL of the fake backend.
func (f *FakeAPI) URL() string { return f.Server.URL }

// Close shuts the fake backend down.
func (f *FakeAPI) Close() { f.Server.Close() }

func (f *FakeAPI) login(c echo.Context) error {
	if f.FailWith500.Load() {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "boom"})
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	acc, ok := f.accounts[req.Username]
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.MinCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "hash"})
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}

	claims := jwt.MapClaims{
		"username": acc.Username,
		"role":     acc.Role,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingSecret))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "sign"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"token": token,
		"user": map[string]string{
			"username": acc.Username,
			"role":     acc.Role,
			"email":    acc.Email,
		},
	})
}

func (f *FakeAPI) validate(c echo.Context) error {
	f.ValidateCalls.Add(1)

	if f.FailWith500.Load() {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "boom"})
	}

	claims, ok := f.parseBearer(c)
	if !ok || f.RejectTokens.Load() {
		return c.JSON(http.StatusOK, map[string]any{"valid": false, "user": nil})
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	acc := f.accounts[username]
	return c.JSON(http.StatusOK, map[string]any{
		"valid": true,
		"user": map[string]string{
			"username": username,
			"role":     role,
			"email":    acc.Email,
		},
	})
}

func (f *FakeAPI) requireBearer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if f.FailWith500.Load() {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "boom"})
		}
		if _, ok := f.parseBearer(c); !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		return next(c)
	}
}

func (f *FakeAPI) parseBearer(c echo.Context) (jwt.MapClaims, bool) {
	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, false
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(signingSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, false
	}
	return claims, true
}

func listPayload(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, []map[string]string{{"kind": kind, "id": kind + "_1"}})
	}
}

func itemPayload(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"kind": kind, "id": c.Param("id")})
	}
}

// createPayload echoes the submitted document back with a server-issued
// id, the way the real API acknowledges a create.
func createPayload(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := map[string]any{}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		body["id"] = kind + "_new"
		return c.JSON(http.StatusCreated, body)
	}
}

func updatePayload(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := map[string]any{}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		body["kind"] = kind
		body["id"] = c.Param("id")
		return c.JSON(http.StatusOK, body)
	}
}

func deletePayload() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}
}
