package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hostel-backend/config"
	"hostel-backend/internal/auth"
	"hostel-backend/internal/db"
	"hostel-backend/internal/model"
	"hostel-backend/internal/mw"
	"hostel-backend/internal/notification"
	"hostel-backend/internal/store"
)

type testEnv struct {
	router  *gin.Engine
	handler *Handler
	store   store.Store
	tokens  *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(db.Models()...))
	sqlDB, _ := gormDB.DB()
	t.Cleanup(func() { sqlDB.Close() })

	s := store.NewGormStore(gormDB)
	tokens, err := auth.NewTokenService("test-secret", time.Hour, "hostel-backend")
	require.NoError(t, err)

	h := NewHandler(s, notification.NewDispatcher(s, nil), tokens, config.SensorsConfig{
		DeviceID: "fake-device-1",
		Holidays: config.DefaultHolidays,
	})
	limiter := mw.NewIPRateLimiter(rate.Inf, 1, time.Minute)

	return &testEnv{
		router:  NewRouter(h, limiter),
		handler: h,
		store:   s,
		tokens:  tokens,
	}
}

// seedUser stores a user directly and returns it with a bearer token.
func (e *testEnv) seedUser(t *testing.T, name string, role model.Role) (*model.User, string) {
	t.Helper()
	u := &model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@hostel.test", name),
		Password: "unused",
		Role:     role,
	}
	require.NoError(t, e.store.CreateUser(context.Background(), u))
	token, err := e.tokens.Issue(u)
	require.NoError(t, err)
	return u, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
