package jsonserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestEngine(t *testing.T, path string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewEngine(NewDocument(path))
}

func perform(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPutThenGetReturnsSameBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	r := newTestEngine(t, path)

	body := `[{"id":"1","title":"Soluções","imageUrl":"/a.png"}]`
	w := perform(r, http.MethodPut, "/api/slides", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Message != "Section 'slides' updated successfully" {
		t.Fatalf("unexpected response %#v", resp)
	}

	w = perform(r, http.MethodGet, "/api/slides", "")
	if w.Code != http.StatusOK || w.Body.String() != body {
		t.Fatalf("expected %s, got %d %s", body, w.Code, w.Body.String())
	}
}

func TestGetUnknownSectionReturns404(t *testing.T) {
	r := newTestEngine(t, filepath.Join(t.TempDir(), "data.json"))

	w := perform(r, http.MethodGet, "/api/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"Section 'nope' not found"}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestDataSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	first := newTestEngine(t, path)
	if w := perform(first, http.MethodPut, "/api/about", `{"title":"Sobre"}`); w.Code != http.StatusOK {
		t.Fatalf("put failed: %d", w.Code)
	}

	second := newTestEngine(t, path)
	w := perform(second, http.MethodGet, "/api/about", "")
	if w.Body.String() != `{"title":"Sobre"}` {
		t.Fatalf("expected persisted about, got %s", w.Body.String())
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.Contains(string(raw), "\n  \"about\"") {
		t.Fatalf("expected two-space indented file, got %s", raw)
	}
}

func TestReplaceDataAndHead(t *testing.T) {
	r := newTestEngine(t, filepath.Join(t.TempDir(), "data.json"))

	if w := perform(r, http.MethodHead, "/api/data", ""); w.Code != http.StatusOK {
		t.Fatalf("expected HEAD 200 on missing file, got %d", w.Code)
	}
	if w := perform(r, http.MethodPost, "/api/data", `[1,2]`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-object document, got %d", w.Code)
	}

	w := perform(r, http.MethodPost, "/api/data", `{"slides":[],"partners":[{"id":1}]}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Data file updated successfully") {
		t.Fatalf("unexpected replace response %d %s", w.Code, w.Body.String())
	}

	w = perform(r, http.MethodGet, "/api/data", "")
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc) != 2 {
		t.Fatalf("expected two sections, got %d", len(doc))
	}
}

func TestInvalidBodyAndCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	r := newTestEngine(t, path)

	if w := perform(r, http.MethodPut, "/api/slides", `{"broken"`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if w := perform(r, http.MethodGet, "/api/data", ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on corrupt file, got %d", w.Code)
	}
	if w := perform(r, http.MethodPut, "/api/slides", `[]`); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when existing file is corrupt, got %d", w.Code)
	}
}

func TestConcurrentSectionWritesKeepBoth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	r := newTestEngine(t, path)

	sections := []string{"slides", "partners", "services", "images", "about", "contact"}
	var wg sync.WaitGroup
	for _, name := range sections {
		wg.Add(1)
		go func(section string) {
			defer wg.Done()
			perform(r, http.MethodPut, "/api/"+section, `[]`)
		}(name)
	}
	wg.Wait()

	doc, err := NewDocument(path).Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(doc) != len(sections) {
		t.Fatalf("expected %d sections, got %d", len(sections), len(doc))
	}
}
