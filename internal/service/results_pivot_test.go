package service

import (
	"testing"

	"github.com/markvl91/teammates/internal/model"
)

func TestGroupByQuestionKeepsEmptyQuestions(t *testing.T) {
	q1 := textQuestion("q1", 1)
	q2 := textQuestion("q2", 2)
	b := testBundle([]*model.FeedbackQuestion{q1, q2}, []*model.FeedbackResponse{
		resp("q1", "alice@example.com", "bob@example.com", "Great"),
	})

	groups := groupByQuestion(b)
	if len(groups) != 2 {
		t.Fatalf("expected a bucket per question, got %d", len(groups))
	}
	if groups[0].question != q1 || len(groups[0].responses) != 1 {
		t.Fatalf("q1 bucket wrong: %+v", groups[0])
	}
	if groups[1].question != q2 || len(groups[1].responses) != 0 {
		t.Fatalf("q2 should be present with zero responses")
	}
}

func TestGroupByParticipantQuestionOrder(t *testing.T) {
	q1 := textQuestion("q1", 1)
	q2 := textQuestion("q2", 2)
	b := testBundle([]*model.FeedbackQuestion{q1, q2}, []*model.FeedbackResponse{
		resp("q2", "bob@example.com", "alice@example.com", "Fine"),
		resp("q1", "bob@example.com", "carol@example.com", "Good"),
		resp("q1", "alice@example.com", "bob@example.com", "Great"),
	})

	groups := groupByParticipantQuestion(b, true)
	if len(groups) != 2 {
		t.Fatalf("expected 2 givers, got %d", len(groups))
	}
	if groups[0].participant != "bob@example.com" || groups[1].participant != "alice@example.com" {
		t.Fatalf("givers must keep encounter order: %s, %s", groups[0].participant, groups[1].participant)
	}
	// per participant, questions follow the session's question order
	if groups[0].byQuestion[0].question != q1 || groups[0].byQuestion[1].question != q2 {
		t.Fatalf("question order lost inside a participant group")
	}
	if len(groups[0].byQuestion[0].responses) != 1 || len(groups[0].byQuestion[1].responses) != 1 {
		t.Fatalf("bob's responses misfiled: %+v", groups[0].byQuestion)
	}
	if len(groups[1].byQuestion[1].responses) != 0 {
		t.Fatalf("alice has no q2 responses")
	}
}

func TestGroupByParticipantQuestionRecipientPrimary(t *testing.T) {
	q1 := textQuestion("q1", 1)
	b := testBundle([]*model.FeedbackQuestion{q1}, []*model.FeedbackResponse{
		resp("q1", "alice@example.com", "bob@example.com", "Great"),
		resp("q1", "carol@example.com", "bob@example.com", "Solid"),
	})

	groups := groupByParticipantQuestion(b, false)
	if len(groups) != 1 || groups[0].participant != "bob@example.com" {
		t.Fatalf("recipient-primary grouping wrong: %+v", groups)
	}
	if len(groups[0].byQuestion[0].responses) != 2 {
		t.Fatalf("both responses to bob should share his bucket")
	}
}

func TestGroupByParticipantParticipantSortsLeavesByQuestion(t *testing.T) {
	q1 := textQuestion("q1", 1)
	q2 := textQuestion("q2", 2)
	b := testBundle([]*model.FeedbackQuestion{q1, q2}, []*model.FeedbackResponse{
		resp("q2", "alice@example.com", "bob@example.com", "Later"),
		resp("q1", "alice@example.com", "bob@example.com", "Earlier"),
		resp("q1", "alice@example.com", "carol@example.com", "Good"),
	})

	groups := groupByParticipantParticipant(b, true)
	if len(groups) != 1 || groups[0].participant != "alice@example.com" {
		t.Fatalf("primary grouping wrong: %+v", groups)
	}
	pairs := groups[0].pairs
	if len(pairs) != 2 || pairs[0].participant != "bob@example.com" || pairs[1].participant != "carol@example.com" {
		t.Fatalf("counterparts must keep encounter order: %+v", pairs)
	}
	if pairs[0].responses[0].AnswerText != "Earlier" || pairs[0].responses[1].AnswerText != "Later" {
		t.Fatalf("pair rows must read in question order: %+v", pairs[0].responses)
	}
}

func TestResponsesByTeam(t *testing.T) {
	q1 := textQuestion("q1", 1)
	b := testBundle([]*model.FeedbackQuestion{q1}, []*model.FeedbackResponse{
		resp("q1", "alice@example.com", "carol@example.com", "Great"),
		resp("q1", "bob@example.com", "carol@example.com", "Good"),
		resp("q1", "carol@example.com", "alice@example.com", "Fine"),
	})

	byTeam := responsesByTeam(b, true)
	if len(byTeam["Team Alpha"]["q1"]) != 2 {
		t.Fatalf("Team Alpha should own both of its givers' responses")
	}
	if len(byTeam["Team Beta"]["q1"]) != 1 {
		t.Fatalf("Team Beta should own carol's response")
	}

	byRecipientTeam := responsesByTeam(b, false)
	if len(byRecipientTeam["Team Beta"]["q1"]) != 2 {
		t.Fatalf("recipient-primary pivot should file by recipient team")
	}
}
