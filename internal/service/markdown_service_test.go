package service

import (
	"strings"
	"testing"

	"github.com/wems/internal/content"
)

func TestRenderMarkdownStripsScripts(t *testing.T) {
	html, err := RenderMarkdown("# Sobre\n\n**WEMS** <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<strong>WEMS</strong>") {
		t.Fatalf("expected rendered markdown, got %s", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("expected script to be removed, got %s", html)
	}
}

func TestSanitizeSubmission(t *testing.T) {
	got := SanitizeSubmission(content.SubmissionInput{
		Name:    " <b>Ana</b> ",
		Email:   "ana@example.com",
		Subject: "Orçamento d'água",
		Message: "Olá <img src=x onerror=alert(1)>mundo & cia",
	})

	if got.Name != "Ana" {
		t.Fatalf("unexpected name %q", got.Name)
	}
	if got.Subject != "Orçamento d'água" {
		t.Fatalf("expected entities to be restored, got %q", got.Subject)
	}
	if got.Message != "Olá mundo & cia" {
		t.Fatalf("unexpected message %q", got.Message)
	}
}
