package content

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewSubmissionAssignsStatusAndUniqueIDs(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	input := SubmissionInput{Name: " Ana ", Email: "ana@example.com", Subject: "Orçamento", Message: "Olá"}

	first, err := NewSubmission(input, now)
	if err != nil {
		t.Fatalf("NewSubmission returned error: %v", err)
	}
	second, err := NewSubmission(input, now)
	if err != nil {
		t.Fatalf("NewSubmission returned error: %v", err)
	}

	if first.Status != StatusNew || second.Status != StatusNew {
		t.Fatalf("expected status new, got %q and %q", first.Status, second.Status)
	}
	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("expected distinct non-empty ids within the same millisecond, got %q and %q", first.ID, second.ID)
	}
	if !strings.HasPrefix(first.ID, "submission_1740823200000_") {
		t.Fatalf("unexpected id format %q", first.ID)
	}
	if first.Name != "Ana" {
		t.Fatalf("expected trimmed name, got %q", first.Name)
	}
	if first.Timestamp != "2025-03-01T10:00:00Z" {
		t.Fatalf("unexpected timestamp %q", first.Timestamp)
	}
}

func TestNewSubmissionRequiresFields(t *testing.T) {
	tests := []struct {
		name  string
		input SubmissionInput
	}{
		{name: "missing name", input: SubmissionInput{Email: "a@b.c", Message: "x"}},
		{name: "missing email", input: SubmissionInput{Name: "a", Message: "x"}},
		{name: "missing message", input: SubmissionInput{Name: "a", Email: "a@b.c", Message: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSubmission(tt.input, time.Now()); !errors.Is(err, ErrSubmissionInvalid) {
				t.Fatalf("expected ErrSubmissionInvalid, got %v", err)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	if status, err := ParseStatus(" Read "); err != nil || status != StatusRead {
		t.Fatalf("expected read, got %q (%v)", status, err)
	}
	if _, err := ParseStatus("archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestValidateCollections(t *testing.T) {
	if err := ValidateSlides(nil); !errors.Is(err, ErrNoSlides) {
		t.Fatalf("expected ErrNoSlides, got %v", err)
	}
	if err := ValidateSlides([]Slide{{ID: "s1"}, {ID: "s1"}}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if err := ValidateSlides([]Slide{{ID: ""}}); !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
	if err := ValidatePartners([]Partner{{ID: 1}, {ID: 2}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidatePartners([]Partner{{ID: 1}, {ID: 1}}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if err := ValidateServices([]Service{{ID: 1, Icon: "Rocket"}}); !errors.Is(err, ErrUnknownIcon) {
		t.Fatalf("expected ErrUnknownIcon, got %v", err)
	}
	if err := ValidateServices(DefaultServices()); err != nil {
		t.Fatalf("default services should be valid: %v", err)
	}
}

func TestNextID(t *testing.T) {
	if got := NextID(nil); got != 1 {
		t.Fatalf("expected 1 for empty ids, got %d", got)
	}
	if got := NextID([]int{3, 7, 2}); got != 8 {
		t.Fatalf("expected 8, got %d", got)
	}
}

func TestSectionByName(t *testing.T) {
	section, ok := SectionByName("clientCategories")
	if !ok {
		t.Fatal("expected clientCategories section")
	}
	if section.Table != "client_categories" || section.LegacyKey != "wems_client_categories" {
		t.Fatalf("unexpected section %#v", section)
	}
	if _, ok := SectionByName("strategicConsulting"); ok {
		t.Fatal("did not expect unknown section to resolve")
	}
}
