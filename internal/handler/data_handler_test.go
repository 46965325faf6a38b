package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/wems/internal/content"
	"github.com/wems/internal/storage"
)

func TestExportImportAndClear(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	if err := env.store.SaveSlides(ctx, []content.Slide{{ID: "1", Title: "Backup"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	r := newTestRouter()
	r.GET("/data/export", env.api.ExportData)
	r.POST("/data/import", env.api.ImportData)
	r.DELETE("/data", env.api.ClearData)

	w := doJSON(r, http.MethodGet, "/data/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="wems_data_backup_2025-03-01.json"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	backup := w.Body.Bytes()

	if w := doJSON(r, http.MethodDelete, "/data", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200 on clear, got %d", w.Code)
	}
	if got := env.store.LoadSlides(ctx, nil); got != nil {
		t.Fatalf("expected slides to be cleared, got %#v", got)
	}

	body, contentType := multipartBody(t, "file", "backup.json", backup, nil)
	w = doRequest(r, http.MethodPost, "/data/import", body, contentType)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"success":true`) {
		t.Fatalf("unexpected import response %d %s", w.Code, w.Body.String())
	}
	if got := env.store.LoadSlides(ctx, nil); len(got) != 1 || got[0].Title != "Backup" {
		t.Fatalf("expected slides restored, got %#v", got)
	}

	w = doRequest(r, http.MethodPost, "/data/import", bytes.NewReader(backup), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("expected raw json import to succeed, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/data/import", `[1]`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid backup, got %d", w.Code)
	}
}

func TestStorageStatusAndPreference(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	storage.ResolveKind(ctx, env.kv)

	r := newTestRouter()
	r.GET("/storage", env.api.GetStorageStatus)
	r.PUT("/storage", env.api.UpdateStoragePreference)

	w := doJSON(r, http.MethodGet, "/storage", "")
	var status struct {
		Current    string `json:"current"`
		Preference string `json:"preference"`
		Remote     struct {
			Configured bool `json:"configured"`
		} `json:"remote"`
		Local struct {
			Version int `json:"version"`
		} `json:"local"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.Current != "local" || status.Preference != "jsonFile" || status.Remote.Configured || status.Local.Version != 1 {
		t.Fatalf("unexpected storage status %#v", status)
	}

	if w := doJSON(r, http.MethodPut, "/storage", `{"type":"floppy"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	w = doJSON(r, http.MethodPut, "/storage", `{"type":"server"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"restartRequired":true`) {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
	if kind := storage.ResolveKind(ctx, env.kv); kind != storage.KindServer {
		t.Fatalf("expected server preference, got %q", kind)
	}
}
