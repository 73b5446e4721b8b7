package model

import "testing"

func TestDetailsForFallsBackToText(t *testing.T) {
	d := DetailsFor("rank-options")
	if d.NoResponseText() != "No Response" {
		t.Fatalf("unknown types should behave like text questions")
	}
	if d.Statistics(nil, nil) != "" {
		t.Fatalf("text questions carry no statistics")
	}
	if !d.ShouldShowNoResponseText(nil) {
		t.Fatalf("text questions show placeholder rows")
	}
}

func TestMCQStatistics(t *testing.T) {
	q := &FeedbackQuestion{QuestionType: QuestionTypeMCQ, Options: "Yes, No"}
	responses := []*FeedbackResponse{
		{AnswerText: "Yes"},
		{AnswerText: "Yes"},
		{AnswerText: "No"},
		{AnswerText: "Maybe"},
	}
	got := DetailsFor(QuestionTypeMCQ).Statistics(q, responses)
	want := "Yes: 2 (50%)\nNo: 1 (25%)\nMaybe: 1 (25%)"
	if got != want {
		t.Fatalf("mcq statistics = %q, want %q", got, want)
	}

	if DetailsFor(QuestionTypeMCQ).Statistics(q, nil) != "" {
		t.Fatalf("no responses should yield no statistics")
	}
}

func TestNumScaleStatistics(t *testing.T) {
	q := &FeedbackQuestion{QuestionType: QuestionTypeNumScale, MinScale: 1, MaxScale: 5}
	responses := []*FeedbackResponse{
		{AnswerText: "2"},
		{AnswerText: "4"},
		{AnswerText: "not a number"},
	}
	got := DetailsFor(QuestionTypeNumScale).Statistics(q, responses)
	want := "Average: 3.00 Minimum: 2 Maximum: 4"
	if got != want {
		t.Fatalf("numscale statistics = %q, want %q", got, want)
	}

	if DetailsFor(QuestionTypeNumScale).Statistics(q, []*FeedbackResponse{{AnswerText: "n/a"}}) != "" {
		t.Fatalf("all-unparsable answers should yield no statistics")
	}
}

func TestNumScaleRowOrdering(t *testing.T) {
	d := DetailsFor(QuestionTypeNumScale)
	if !d.RequiresCustomSorting() {
		t.Fatalf("numscale rows need numeric ordering")
	}

	low := &ResponseRow{Answer: "2"}
	high := &ResponseRow{Answer: "4.5"}
	missing := &ResponseRow{Answer: "No Response", Missing: true}

	if !d.RowsLess(low, high) {
		t.Fatalf("2 should sort before 4.5")
	}
	if d.RowsLess(missing, low) {
		t.Fatalf("missing rows sort after answered rows")
	}
	if !d.RowsLess(high, missing) {
		t.Fatalf("answered rows sort before missing rows")
	}

	// numeric ties fall back to the default team/name order
	a := &ResponseRow{Answer: "3", GiverTeam: "Team Alpha"}
	b := &ResponseRow{Answer: "3", GiverTeam: "Team Beta"}
	if !d.RowsLess(a, b) {
		t.Fatalf("tied answers should order by giver team")
	}
}

func TestContribDetails(t *testing.T) {
	d := DetailsFor(QuestionTypeContrib)

	if got := d.AnswerDisplay("110"); got != "Equal Share +10%" {
		t.Fatalf("contrib display = %q", got)
	}
	if got := d.AnswerDisplay("90"); got != "Equal Share -10%" {
		t.Fatalf("contrib display = %q", got)
	}
	if got := d.AnswerDisplay("100"); got != "Equal Share +0%" {
		t.Fatalf("contrib display = %q", got)
	}
	if got := d.AnswerDisplay("pending"); got != "pending" {
		t.Fatalf("non-numeric contrib answers pass through, got %q", got)
	}

	if d.ShouldShowNoResponseText(nil) {
		t.Fatalf("contrib questions never synthesize placeholder rows")
	}
	if d.NoResponseText() != "Not Submitted" {
		t.Fatalf("contrib no-response text = %q", d.NoResponseText())
	}
	if d.CommentsAllowed() {
		t.Fatalf("contrib responses do not accept comments")
	}

	q := &FeedbackQuestion{QuestionType: QuestionTypeContrib}
	got := d.Statistics(q, []*FeedbackResponse{{AnswerText: "110"}, {AnswerText: "90"}})
	if got != "Average claimed contribution: 100%" {
		t.Fatalf("contrib statistics = %q", got)
	}
}

func TestDefaultRowLess(t *testing.T) {
	rows := []*ResponseRow{
		{GiverTeam: "Team Beta", GiverName: "Carol"},
		{GiverTeam: "Team Alpha", GiverName: "Bob", RecipientName: "Carol"},
		{GiverTeam: "Team Alpha", GiverName: "Bob", RecipientName: "Alice"},
		{GiverTeam: "Team Alpha", GiverName: "Alice"},
	}
	if !DefaultRowLess(rows[3], rows[1]) {
		t.Fatalf("giver name should break team ties")
	}
	if !DefaultRowLess(rows[2], rows[1]) {
		t.Fatalf("recipient name should break giver ties")
	}
	if DefaultRowLess(rows[0], rows[3]) {
		t.Fatalf("team order violated")
	}
}
