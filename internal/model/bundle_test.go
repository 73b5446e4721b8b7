package model

import (
	"reflect"
	"strings"
	"testing"
)

func sampleBundle(questions []*FeedbackQuestion, responses []*FeedbackResponse) *ResultsBundle {
	session := &FeedbackSession{
		CourseID:     "CS101",
		Name:         "Midterm Feedback",
		CreatorEmail: "ida@example.com",
	}
	return NewResultsBundle(session, questions, responses, nil, sampleRoster(), true)
}

func TestAnonymousIdentifierStableAndNamed(t *testing.T) {
	a := AnonymousIdentifier("student", "alice@example.com")
	b := AnonymousIdentifier("student", "alice@example.com")
	if a != b {
		t.Fatalf("pseudonym not stable: %q vs %q", a, b)
	}
	if AnonymousIdentifier("student", "bob@example.com") == a {
		t.Fatalf("distinct participants share a pseudonym")
	}
	if !strings.HasPrefix(a, "Anonymous student ") {
		t.Fatalf("pseudonym prefix = %q", a)
	}
	if !strings.Contains(a, "@@") {
		t.Fatalf("pseudonym missing marker: %q", a)
	}

	bundle := sampleBundle(nil, nil)
	name := bundle.NameForIdentifier(a)
	if strings.Contains(name, "@@") {
		t.Fatalf("display name leaks marker: %q", name)
	}
	if !strings.HasPrefix(name, "Anonymous student") {
		t.Fatalf("display name = %q", name)
	}
}

func TestAnonymousNounFor(t *testing.T) {
	if got := AnonymousNounFor(ParticipantInstructors); got != "instructor" {
		t.Fatalf("noun for instructors = %q", got)
	}
	if got := AnonymousNounFor(ParticipantTeams); got != "team" {
		t.Fatalf("noun for teams = %q", got)
	}
	if got := AnonymousNounFor(ParticipantStudents); got != "student" {
		t.Fatalf("noun for students = %q", got)
	}
}

func TestIsParticipantVisible(t *testing.T) {
	b := sampleBundle(nil, nil)
	for _, id := range []string{"alice@example.com", "ida@example.com", "Team Alpha", GeneralRecipient} {
		if !b.IsParticipantVisible(id) {
			t.Fatalf("%q should be visible", id)
		}
	}
	if b.IsParticipantVisible(AnonymousIdentifier("student", "alice@example.com")) {
		t.Fatalf("a minted pseudonym must not resolve as visible")
	}
	if b.IsParticipantVisible("ghost@example.com") {
		t.Fatalf("unknown identifier should be hidden")
	}
}

func TestNameForIdentifier(t *testing.T) {
	b := sampleBundle(nil, nil)
	if got := b.NameForIdentifier(GeneralRecipient); got != GeneralRecipientName {
		t.Fatalf("general recipient name = %q", got)
	}
	if got := b.NameForIdentifier("carol@example.com"); got != "Carol" {
		t.Fatalf("student name = %q", got)
	}
	if got := b.NameForIdentifier("ghost@example.com"); got != "Unknown user" {
		t.Fatalf("unknown name = %q", got)
	}
}

func TestDisplayTeamOf(t *testing.T) {
	b := sampleBundle(nil, nil)
	if got := b.DisplayTeamOf("ida@example.com"); got != InstructorTeam {
		t.Fatalf("instructor team = %q", got)
	}
	if got := b.DisplayTeamOf("alice@example.com"); got != "Team Alpha" {
		t.Fatalf("student team = %q", got)
	}
	anon := AnonymousIdentifier("student", "alice@example.com")
	if got := b.DisplayTeamOf(anon); got != b.NameForIdentifier(anon) {
		t.Fatalf("anonymous participants file under their own display name, got %q", got)
	}
}

func TestAppendTeamName(t *testing.T) {
	b := sampleBundle(nil, nil)
	if got := b.AppendTeamName("Alice", "Team Alpha"); got != "Alice (Team Alpha)" {
		t.Fatalf("AppendTeamName = %q", got)
	}
	if got := b.AppendTeamName("Team Alpha", "Team Alpha"); got != "Team Alpha" {
		t.Fatalf("team panels must not repeat the team, got %q", got)
	}
	if got := b.AppendTeamName("Anonymous student 42", ""); got != "Anonymous student 42" {
		t.Fatalf("empty team must not decorate, got %q", got)
	}
}

func TestPossibleGivers(t *testing.T) {
	b := sampleBundle(nil, nil)
	students := []string{"alice@example.com", "bob@example.com", "carol@example.com"}

	cases := []struct {
		giverType ParticipantType
		want      []string
	}{
		{ParticipantStudents, students},
		{ParticipantInstructors, []string{"ida@example.com"}},
		{ParticipantTeams, []string{"Team Alpha", "Team Beta"}},
		{ParticipantSelf, []string{"ida@example.com"}},
	}
	for _, c := range cases {
		q := &FeedbackQuestion{GiverType: c.giverType}
		if got := b.PossibleGivers(q); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("PossibleGivers(%s) = %v, want %v", c.giverType, got, c.want)
		}
	}
}

func TestPossibleRecipients(t *testing.T) {
	b := sampleBundle(nil, nil)

	cases := []struct {
		recipientType ParticipantType
		giver         string
		want          []string
	}{
		{ParticipantStudents, "alice@example.com", []string{"bob@example.com", "carol@example.com"}},
		{ParticipantOwnTeamMembers, "alice@example.com", []string{"bob@example.com"}},
		{ParticipantOwnTeam, "alice@example.com", []string{"Team Alpha"}},
		{ParticipantTeams, "alice@example.com", []string{"Team Beta"}},
		{ParticipantInstructors, "alice@example.com", []string{"ida@example.com"}},
		{ParticipantSelf, "alice@example.com", []string{"alice@example.com"}},
		{ParticipantNone, "alice@example.com", []string{GeneralRecipient}},
	}
	for _, c := range cases {
		q := &FeedbackQuestion{GiverType: ParticipantStudents, RecipientType: c.recipientType}
		if got := b.PossibleRecipients(q, c.giver); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("PossibleRecipients(%s, %s) = %v, want %v", c.recipientType, c.giver, got, c.want)
		}
	}
}

func TestPossibleGiversFor(t *testing.T) {
	b := sampleBundle(nil, nil)

	cases := []struct {
		recipientType ParticipantType
		recipient     string
		want          []string
	}{
		{ParticipantSelf, "bob@example.com", []string{"bob@example.com"}},
		{ParticipantOwnTeamMembers, "bob@example.com", []string{"alice@example.com"}},
		{ParticipantOwnTeam, "Team Alpha", []string{"alice@example.com", "bob@example.com"}},
		{ParticipantNone, GeneralRecipient, []string{"alice@example.com", "bob@example.com", "carol@example.com"}},
		{ParticipantStudents, "bob@example.com", []string{"alice@example.com", "carol@example.com"}},
	}
	for _, c := range cases {
		q := &FeedbackQuestion{GiverType: ParticipantStudents, RecipientType: c.recipientType}
		if got := b.PossibleGiversFor(q, c.recipient); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("PossibleGiversFor(%s, %s) = %v, want %v", c.recipientType, c.recipient, got, c.want)
		}
	}
}

func TestHasResponseHelpers(t *testing.T) {
	q := &FeedbackQuestion{UUIDBase: UUIDBase{ID: "q1"}, GiverType: ParticipantStudents, RecipientType: ParticipantStudents}
	b := sampleBundle([]*FeedbackQuestion{q}, []*FeedbackResponse{
		{QuestionID: "q1", Giver: "ida@example.com", Recipient: GeneralRecipient},
	})
	if !b.HasResponseFromInstructor() {
		t.Fatalf("instructor response not detected")
	}
	if !b.HasResponseToInstructorOrGeneral() {
		t.Fatalf("general recipient response not detected")
	}

	b = sampleBundle([]*FeedbackQuestion{q}, []*FeedbackResponse{
		{QuestionID: "q1", Giver: "alice@example.com", Recipient: "bob@example.com"},
	})
	if b.HasResponseFromInstructor() || b.HasResponseToInstructorOrGeneral() {
		t.Fatalf("student-to-student response misclassified")
	}
}

func TestComputeResponseStatus(t *testing.T) {
	q := &FeedbackQuestion{UUIDBase: UUIDBase{ID: "q1"}, GiverType: ParticipantStudents, RecipientType: ParticipantStudents}
	qTeams := &FeedbackQuestion{UUIDBase: UUIDBase{ID: "q2"}, GiverType: ParticipantTeams, RecipientType: ParticipantTeams}
	b := sampleBundle([]*FeedbackQuestion{q, qTeams}, []*FeedbackResponse{
		{QuestionID: "q1", Giver: "alice@example.com", Recipient: "bob@example.com"},
		{QuestionID: "q1", Giver: AnonymousIdentifier("student", "carol@example.com"), Recipient: "bob@example.com"},
	})

	status := b.ComputeResponseStatus()
	if len(status.NameTable) != 3 {
		t.Fatalf("expected 3 expected respondents, got %v", status.NameTable)
	}
	if _, ok := status.NameTable["Team Alpha"]; ok {
		t.Fatalf("team givers must not appear in the response status")
	}
	if !status.Responded["alice@example.com"] {
		t.Fatalf("alice responded")
	}
	if status.Responded["bob@example.com"] {
		t.Fatalf("bob did not respond")
	}
	if status.Responded["carol@example.com"] {
		t.Fatalf("a hidden giver must not mark the real participant as responded")
	}
}

func TestQuestionLookupAndDetails(t *testing.T) {
	q := &FeedbackQuestion{UUIDBase: UUIDBase{ID: "q1"}, QuestionType: QuestionTypeContrib}
	b := sampleBundle([]*FeedbackQuestion{q}, nil)
	if b.QuestionByID("q1") != q {
		t.Fatalf("QuestionByID lookup failed")
	}
	if b.QuestionByID("missing") != nil {
		t.Fatalf("unknown question should be nil")
	}
	if b.DetailsOf(q).NoResponseText() != "Not Submitted" {
		t.Fatalf("details capsule not resolved per question type")
	}
}
