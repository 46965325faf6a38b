package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wems/internal/db"
	"github.com/wems/internal/localdb"
	"github.com/wems/internal/service"
	"github.com/wems/internal/storage/indexed"
	"github.com/wems/internal/storage/kvstore"
	"github.com/wems/internal/storage/remote"
)

type testEnv struct {
	api   *API
	store *localdb.Store
	local *indexed.Store
	kv    *kvstore.Store
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	ctx := context.Background()
	kv := kvstore.New(gdb)
	local := indexed.New(gdb, kv)
	if _, err := local.Init(ctx); err != nil {
		t.Fatalf("init indexed: %v", err)
	}
	remoteClient, err := remote.New(ctx, "")
	if err != nil {
		t.Fatalf("remote: %v", err)
	}

	auth := service.NewAuthService(gdb)
	if err := auth.EnsureAdmin("admin", "wems2024"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}

	store := localdb.New(local, nil)
	api := NewAPI(Dependencies{
		Store:   store,
		KV:      kv,
		Local:   local,
		Remote:  remoteClient,
		Auth:    auth,
		Uploads: service.NewUploadService(t.TempDir(), "/static/uploads"),
	})
	api.now = func() time.Time { return time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC) }

	return &testEnv{api: api, store: store, local: local, kv: kv}
}

func newTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("wems_session", cookie.NewStore([]byte("test-secret"))))
	return r
}

func doRequest(r http.Handler, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	return doRequest(r, method, target, reader, "application/json")
}
