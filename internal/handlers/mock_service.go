package handlers

import (
	"context"
	"net/http"
	"time"

	"waterbuddy/internal/models"
	"waterbuddy/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      string
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       string
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (string, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockIntake struct {
	todayML    int
	setML      int
	setErr     error
	resetErr   error
	logTotal   int
	logErr     error
	entries    []models.LogEntry
	entriesErr error

	lastUID    string
	lastSetML  int
	lastLogML  int
	resetCalls int
}

func (m *mockIntake) Today(ctx context.Context, uid string) int {
	m.lastUID = uid
	return m.todayML
}
func (m *mockIntake) Set(ctx context.Context, uid string, ml int) (int, error) {
	m.lastUID = uid
	m.lastSetML = ml
	return m.setML, m.setErr
}
func (m *mockIntake) Reset(ctx context.Context, uid string) error {
	m.lastUID = uid
	m.resetCalls++
	return m.resetErr
}
func (m *mockIntake) Log(ctx context.Context, uid string, amountML int) (int, error) {
	m.lastUID = uid
	m.lastLogML = amountML
	return m.logTotal, m.logErr
}
func (m *mockIntake) Entries(ctx context.Context, uid string) ([]models.LogEntry, error) {
	m.lastUID = uid
	return m.entries, m.entriesErr
}

type mockProfile struct {
	profile   models.Profile
	updateErr error

	lastUID    string
	lastUpdate service.ProfileUpdate
}

func (m *mockProfile) Get(ctx context.Context, uid string) models.Profile {
	m.lastUID = uid
	return m.profile
}
func (m *mockProfile) Update(ctx context.Context, uid string, upd service.ProfileUpdate) error {
	m.lastUID = uid
	m.lastUpdate = upd
	return m.updateErr
}

type mockHistory struct {
	days []models.DayIntake

	lastUID  string
	lastDays int
}

func (m *mockHistory) LastDays(ctx context.Context, uid string, n int) []models.DayIntake {
	m.lastUID = uid
	m.lastDays = n
	return m.days
}

type mockDashboard struct {
	summary service.Summary

	lastUID string
}

func (m *mockDashboard) Summary(ctx context.Context, uid string) service.Summary {
	m.lastUID = uid
	return m.summary
}

type mockTips struct {
	current string
	next    string

	nextCalls int
}

func (m *mockTips) Current() string { return m.current }
func (m *mockTips) Next() string {
	m.nextCalls++
	return m.next
}
func (m *mockTips) Run(ctx context.Context, tick time.Duration) {}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
