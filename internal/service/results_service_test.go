package service

import (
	"testing"

	"github.com/markvl91/teammates/internal/model"
)

func newTestService() *ResultsService {
	return NewResultsService(nil, 150, 2500)
}

func baseQuery(view model.ViewType) ResultsQuery {
	return ResultsQuery{
		CourseID:    "CS101",
		SessionName: "Midterm Feedback",
		ViewType:    view,
		Section:     model.AllSections,
		ShowMissing: true,
		ShowStats:   true,
		GroupByTeam: true,
	}
}

func TestResolveMode(t *testing.T) {
	s := newTestService()

	cases := []struct {
		name        string
		questionID  string
		section     string
		respondents int
		want        assemblyMode
	}{
		{"question filter wins", "q1", model.AllSections, 10, modeQuestionFiltered},
		{"question filter wins over section", "q1", "Section A", 500, modeQuestionFiltered},
		{"section filter", "", "Section A", 500, modeSectionFiltered},
		{"small full load", "", model.AllSections, 150, modeFullNoFilter},
		{"large structure only", "", model.AllSections, 151, modeStructureOnly},
	}
	for _, c := range cases {
		q := ResultsQuery{QuestionID: c.questionID, Section: c.section}
		if got := s.resolveMode(q, c.respondents); got != c.want {
			t.Fatalf("%s: resolveMode = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestAssembleQuestionView(t *testing.T) {
	s := newTestService()
	q1 := textQuestion("q1", 1)
	bundle := testBundle([]*model.FeedbackQuestion{q1}, []*model.FeedbackResponse{
		resp("q1", "alice@example.com", "bob@example.com", "Great"),
	})

	page := s.assemble(bundle, nil, baseQuery(model.ViewQuestion), modeFullNoFilter)
	if len(page.QuestionPanels) != 1 || page.SectionPanels != nil {
		t.Fatalf("question view carries question panels only: %+v", page)
	}

	panel := page.QuestionPanels[0]
	if !panel.ShowResponseRows || panel.LoadByAjax {
		t.Fatalf("a full load renders rows eagerly: %+v", panel)
	}
	if len(panel.ColumnHeaders) != 6 {
		t.Fatalf("question view has 6 columns, got %d", len(panel.ColumnHeaders))
	}

	var missing int
	for _, row := range panel.Rows {
		if row.Missing {
			missing++
		}
	}
	if missing == 0 {
		t.Fatalf("missing responses should be synthesized")
	}
	if !page.MissingResponsesShown || page.Incomplete {
		t.Fatalf("page flags wrong: %+v", page)
	}

	// alice responded, bob and carol did not
	if page.NoResponsePanel == nil || len(page.NoResponsePanel.Rows) != 2 {
		t.Fatalf("no-response panel wrong: %+v", page.NoResponsePanel)
	}
	if page.NoResponsePanel.Rows[0].Name != "Bob" || page.NoResponsePanel.Rows[1].Name != "Carol" {
		t.Fatalf("no-response rows must sort by name: %+v", page.NoResponsePanel.Rows)
	}
}

func TestAssembleQuestionFiltered(t *testing.T) {
	s := newTestService()
	q1 := textQuestion("q1", 1)
	q2 := textQuestion("q2", 2)
	bundle := testBundle([]*model.FeedbackQuestion{q1, q2}, nil)

	query := baseQuery(model.ViewQuestion)
	query.QuestionID = "q2"
	page := s.assemble(bundle, nil, query, modeQuestionFiltered)
	if len(page.QuestionPanels) != 1 || page.QuestionPanels[0].QuestionID != "q2" {
		t.Fatalf("question filter should keep only q2: %+v", page.QuestionPanels)
	}
}

func TestAssembleStructureOnlyQuestionView(t *testing.T) {
	s := newTestService()
	q1 := textQuestion("q1", 1)
	q2 := textQuestion("q2", 2)
	bundle := testBundle([]*model.FeedbackQuestion{q1, q2}, nil)

	page := s.assemble(bundle, nil, baseQuery(model.ViewQuestion), modeStructureOnly)
	if !page.LargeNumberOfResponses {
		t.Fatalf("structure-only pages flag the deferred load")
	}
	if len(page.QuestionPanels) != 2 {
		t.Fatalf("expected a shell per question, got %d", len(page.QuestionPanels))
	}
	for _, panel := range page.QuestionPanels {
		if !panel.LoadByAjax || panel.Rows != nil || panel.ShowResponseRows {
			t.Fatalf("shells must defer their rows: %+v", panel)
		}
	}
	if page.NoResponsePanel != nil {
		t.Fatalf("structure-only pages defer the no-response panel too")
	}
}

func TestAssembleStructureOnlySectionShells(t *testing.T) {
	s := newTestService()
	bundle := testBundle([]*model.FeedbackQuestion{textQuestion("q1", 1)}, nil)

	page := s.assemble(bundle, nil, baseQuery(model.ViewGiverQuestionRecipient), modeStructureOnly)
	if len(page.SectionPanels) != 3 {
		t.Fatalf("expected both sections plus the default bucket, got %d", len(page.SectionPanels))
	}
	last := page.SectionPanels[len(page.SectionPanels)-1]
	if last.SectionName != model.DefaultSection || last.DisplayName != model.NoSpecificSection {
		t.Fatalf("default bucket must come last: %+v", last)
	}
	for _, panel := range page.SectionPanels {
		if !panel.LoadByAjax || panel.TeamPanels != nil {
			t.Fatalf("section shells must defer their teams: %+v", panel)
		}
	}
}

func TestAssembleParticipantView(t *testing.T) {
	s := newTestService()
	q1 := textQuestion("q1", 1)
	bundle := testBundle([]*model.FeedbackQuestion{q1}, []*model.FeedbackResponse{
		resp("q1", "alice@example.com", "bob@example.com", "Great"),
	})

	page := s.assemble(bundle, moderatorViewer(), baseQuery(model.ViewGiverQuestionRecipient), modeFullNoFilter)
	if page.QuestionPanels != nil || len(page.SectionPanels) == 0 {
		t.Fatalf("participant views carry section panels: %+v", page)
	}
	if len(page.Sections) != 2 {
		t.Fatalf("page lists the course sections, got %v", page.Sections)
	}
}

// A range-limited fetch cannot prove a pair unanswered: the page flags
// the truncation and suppresses synthesized rows.
func TestAssembleIncompleteBundleSuppressesMissing(t *testing.T) {
	s := newTestService()
	q1 := textQuestion("q1", 1)
	students, instructors := testRoster()
	roster := model.NewCourseRoster(students, instructors)
	bundle := model.NewResultsBundle(testSession(), []*model.FeedbackQuestion{q1},
		[]*model.FeedbackResponse{resp("q1", "alice@example.com", "bob@example.com", "Great")},
		nil, roster, false)

	page := s.assemble(bundle, nil, baseQuery(model.ViewQuestion), modeFullNoFilter)
	if !page.Incomplete || page.MissingResponsesShown {
		t.Fatalf("truncated results must be flagged: %+v", page)
	}
	for _, panel := range page.QuestionPanels {
		for _, row := range panel.Rows {
			if row.Missing {
				t.Fatalf("no synthesized rows on a truncated fetch: %+v", row)
			}
		}
	}
}

func TestColumnHeadersPanicForPairwiseViews(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("pairwise views never render question tables")
		}
	}()
	columnHeadersForView(model.ViewGiverRecipientQuestion)
}
