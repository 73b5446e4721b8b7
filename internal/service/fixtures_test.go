package service

import (
	"encoding/json"

	"github.com/markvl91/teammates/internal/model"
)

// Shared fixtures for the results engine tests: a three-student course
// across two sections, plus a two-student variant for the synthesis
// cases where the full roster would only add noise.

func testRoster() ([]*model.Student, []*model.Instructor) {
	students := []*model.Student{
		{CourseID: "CS101", Email: "alice@example.com", Name: "Alice", Team: "Team Alpha", Section: "Section A"},
		{CourseID: "CS101", Email: "bob@example.com", Name: "Bob", Team: "Team Alpha", Section: "Section A"},
		{CourseID: "CS101", Email: "carol@example.com", Name: "Carol", Team: "Team Beta", Section: "Section B"},
	}
	instructors := []*model.Instructor{
		{CourseID: "CS101", Email: "ida@example.com", Name: "Ida", Privileges: json.RawMessage(`{"canModerateAll":true}`)},
	}
	return students, instructors
}

func testSession() *model.FeedbackSession {
	return &model.FeedbackSession{
		CourseID:     "CS101",
		Name:         "Midterm Feedback",
		CreatorEmail: "ida@example.com",
		Published:    true,
	}
}

func testBundle(questions []*model.FeedbackQuestion, responses []*model.FeedbackResponse) *model.ResultsBundle {
	students, instructors := testRoster()
	roster := model.NewCourseRoster(students, instructors)
	return model.NewResultsBundle(testSession(), questions, responses, nil, roster, true)
}

// pairBundle holds only Alice and Bob, one team, one section.
func pairBundle(questions []*model.FeedbackQuestion, responses []*model.FeedbackResponse) *model.ResultsBundle {
	students := []*model.Student{
		{CourseID: "CS101", Email: "alice@example.com", Name: "Alice", Team: "Team Alpha", Section: "Section A"},
		{CourseID: "CS101", Email: "bob@example.com", Name: "Bob", Team: "Team Alpha", Section: "Section A"},
	}
	roster := model.NewCourseRoster(students, nil)
	return model.NewResultsBundle(testSession(), questions, responses, nil, roster, true)
}

func textQuestion(id string, number int) *model.FeedbackQuestion {
	return &model.FeedbackQuestion{
		UUIDBase:            model.UUIDBase{ID: id},
		CourseID:            "CS101",
		FeedbackSessionName: "Midterm Feedback",
		QuestionNumber:      number,
		QuestionType:        model.QuestionTypeText,
		QuestionText:        "How well did this teammate communicate?",
		GiverType:           model.ParticipantStudents,
		RecipientType:       model.ParticipantStudents,
		ShowResponsesTo:     string(model.ParticipantInstructors),
		ShowGiverNameTo:     string(model.ParticipantInstructors),
		ShowRecipientNameTo: string(model.ParticipantInstructors),
	}
}

func numScaleQuestion(id string, number int) *model.FeedbackQuestion {
	q := textQuestion(id, number)
	q.QuestionType = model.QuestionTypeNumScale
	q.QuestionText = "Rate this teammate's contribution."
	q.MinScale, q.MaxScale = 1, 5
	return q
}

func contribQuestion(id string, number int) *model.FeedbackQuestion {
	q := textQuestion(id, number)
	q.QuestionType = model.QuestionTypeContrib
	q.RecipientType = model.ParticipantOwnTeamMembers
	q.QuestionText = "How much did this teammate contribute?"
	return q
}

func resp(questionID, giver, recipient, answer string) *model.FeedbackResponse {
	return &model.FeedbackResponse{
		UUIDBase:   model.UUIDBase{ID: questionID + "/" + giver + "/" + recipient},
		QuestionID: questionID,
		Giver:      giver,
		Recipient:  recipient,
		AnswerText: answer,
	}
}

func moderatorViewer() *model.Instructor {
	return &model.Instructor{
		CourseID:   "CS101",
		Email:      "ida@example.com",
		Name:       "Ida",
		Privileges: json.RawMessage(`{"canModerateAll":true}`),
	}
}

func sectionViewer(sections ...string) *model.Instructor {
	p, _ := json.Marshal(map[string]any{"sectionModeration": sections})
	return &model.Instructor{
		CourseID:   "CS101",
		Email:      "ned@example.com",
		Name:       "Ned",
		Privileges: p,
	}
}
