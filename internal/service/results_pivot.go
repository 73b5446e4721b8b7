package service

import (
	"sort"

	"github.com/markvl91/teammates/internal/model"
)

// The pivot structures arrange the bundle's flat response list into the
// nested orderings behind the five view types. Key insertion order
// follows the order the bundle already sorted responses in; leaf rows
// are sorted later, when response rows are built.

type questionResponses struct {
	question  *model.FeedbackQuestion
	responses []*model.FeedbackResponse
}

// participantByQuestion groups one primary participant's responses per
// question, for the participant-question-participant view family.
type participantByQuestion struct {
	participant string
	byQuestion  []questionResponses
}

type participantResponses struct {
	participant string
	responses   []*model.FeedbackResponse
}

// participantByParticipant groups one primary participant's responses
// per counterpart, for the participant-participant-question family.
type participantByParticipant struct {
	participant string
	pairs       []participantResponses
}

// groupByQuestion pivots responses into one bucket per question, every
// question present even with zero responses, in question order.
func groupByQuestion(b *model.ResultsBundle) []questionResponses {
	byID := make(map[string][]*model.FeedbackResponse)
	for _, r := range b.Responses {
		byID[r.QuestionID] = append(byID[r.QuestionID], r)
	}

	out := make([]questionResponses, 0, len(b.Questions))
	for _, q := range b.Questions {
		out = append(out, questionResponses{question: q, responses: byID[q.ID]})
	}
	return out
}

// groupByParticipantQuestion pivots responses by giver (or recipient)
// then by question. Primary keys appear in response encounter order;
// per participant, questions follow the bundle's question order.
func groupByParticipantQuestion(b *model.ResultsBundle, primaryIsGiver bool) []participantByQuestion {
	var order []string
	nested := make(map[string]map[string][]*model.FeedbackResponse)

	for _, r := range b.Responses {
		primary := r.Recipient
		if primaryIsGiver {
			primary = r.Giver
		}
		if _, ok := nested[primary]; !ok {
			order = append(order, primary)
			nested[primary] = make(map[string][]*model.FeedbackResponse)
		}
		nested[primary][r.QuestionID] = append(nested[primary][r.QuestionID], r)
	}

	out := make([]participantByQuestion, 0, len(order))
	for _, participant := range order {
		group := participantByQuestion{participant: participant}
		for _, q := range b.Questions {
			group.byQuestion = append(group.byQuestion, questionResponses{
				question:  q,
				responses: nested[participant][q.ID],
			})
		}
		out = append(out, group)
	}
	return out
}

// groupByParticipantParticipant pivots responses by giver then
// recipient (or the mirror). Leaf rows are ordered by question number
// so each pair reads in questionnaire order.
func groupByParticipantParticipant(b *model.ResultsBundle, primaryIsGiver bool) []participantByParticipant {
	var primaryOrder []string
	secondaryOrder := make(map[string][]string)
	nested := make(map[string]map[string][]*model.FeedbackResponse)

	for _, r := range b.Responses {
		primary, secondary := r.Recipient, r.Giver
		if primaryIsGiver {
			primary, secondary = r.Giver, r.Recipient
		}
		if _, ok := nested[primary]; !ok {
			primaryOrder = append(primaryOrder, primary)
			nested[primary] = make(map[string][]*model.FeedbackResponse)
		}
		if _, ok := nested[primary][secondary]; !ok {
			secondaryOrder[primary] = append(secondaryOrder[primary], secondary)
		}
		nested[primary][secondary] = append(nested[primary][secondary], r)
	}

	out := make([]participantByParticipant, 0, len(primaryOrder))
	for _, primary := range primaryOrder {
		group := participantByParticipant{participant: primary}
		for _, secondary := range secondaryOrder[primary] {
			responses := nested[primary][secondary]
			sort.SliceStable(responses, func(i, j int) bool {
				qi, qj := b.QuestionByID(responses[i].QuestionID), b.QuestionByID(responses[j].QuestionID)
				if qi == nil || qj == nil {
					return qi != nil
				}
				return qi.QuestionNumber < qj.QuestionNumber
			})
			group.pairs = append(group.pairs, participantResponses{
				participant: secondary,
				responses:   responses,
			})
		}
		out = append(out, group)
	}
	return out
}

// responsesByTeam pivots responses by the primary participant's team
// then by question, feeding the per-team statistics tables.
func responsesByTeam(b *model.ResultsBundle, primaryIsGiver bool) map[string]map[string][]*model.FeedbackResponse {
	byTeam := make(map[string]map[string][]*model.FeedbackResponse)
	for _, r := range b.Responses {
		primary := r.Recipient
		if primaryIsGiver {
			primary = r.Giver
		}
		team := b.DisplayTeamOf(primary)
		if _, ok := byTeam[team]; !ok {
			byTeam[team] = make(map[string][]*model.FeedbackResponse)
		}
		byTeam[team][r.QuestionID] = append(byTeam[team][r.QuestionID], r)
	}
	return byTeam
}
