package service

import (
	"strings"
	"testing"

	"github.com/markvl91/teammates/internal/model"
)

func TestBuildResultsCSV(t *testing.T) {
	q := textQuestion("q1", 1)
	b := pairBundle([]*model.FeedbackQuestion{q}, []*model.FeedbackResponse{
		resp("q1", "alice@example.com", "bob@example.com", "Great"),
	})

	query := baseQuery(model.ViewQuestion)
	csv := buildResultsCSV(b, query)

	if !strings.HasPrefix(csv, "Course,\"CS101\"\nSession Name,\"Midterm Feedback\"\n") {
		t.Fatalf("csv header wrong:\n%s", csv)
	}
	if strings.Contains(csv, "Section Name") {
		t.Fatalf("unsectioned exports carry no section line")
	}
	if !strings.Contains(csv, "Question 1,\"How well did this teammate communicate?\"") {
		t.Fatalf("question line missing:\n%s", csv)
	}
	if !strings.Contains(csv, "Team,Giver,Recipient's Team,Recipient,Feedback\n") {
		t.Fatalf("row header missing:\n%s", csv)
	}
	if !strings.Contains(csv, "\"Team Alpha\",\"Alice\",\"Team Alpha\",\"Bob\",\"Great\"\n") {
		t.Fatalf("real row missing:\n%s", csv)
	}
	if !strings.Contains(csv, "\"Team Alpha\",\"Bob\",\"Team Alpha\",\"Alice\",\"No Response\"\n") {
		t.Fatalf("synthesized row missing:\n%s", csv)
	}
}

func TestBuildResultsCSVSectioned(t *testing.T) {
	q := textQuestion("q1", 1)
	b := testBundle([]*model.FeedbackQuestion{q}, nil)

	query := baseQuery(model.ViewQuestion)
	query.Section = "Section A"
	csv := buildResultsCSV(b, query)
	if !strings.Contains(csv, "Section Name,\"Section A\"\n") {
		t.Fatalf("section line missing:\n%s", csv)
	}
}

func TestBuildResultsCSVStats(t *testing.T) {
	q := numScaleQuestion("q1", 1)
	b := pairBundle([]*model.FeedbackQuestion{q}, []*model.FeedbackResponse{
		resp("q1", "alice@example.com", "bob@example.com", "4"),
		resp("q1", "bob@example.com", "alice@example.com", "2"),
	})

	query := baseQuery(model.ViewQuestion)
	csv := buildResultsCSV(b, query)
	if !strings.Contains(csv, "\"Average: 3.00 Minimum: 2 Maximum: 4\"\n") {
		t.Fatalf("statistics line missing:\n%s", csv)
	}

	query.ShowStats = false
	if strings.Contains(buildResultsCSV(b, query), "Average:") {
		t.Fatalf("statistics must be omitted when not requested")
	}
}

func TestSanitizeFilename(t *testing.T) {
	got := sanitizeFilename("Midterm Feedback / Round 2")
	if strings.ContainsAny(got, "/ ") {
		t.Fatalf("sanitized filename still has separators: %q", got)
	}
}
