package service

import (
	"fmt"

	"github.com/markvl91/teammates/internal/model"
)

// columnHeadersForView returns the table headers for the views whose
// panels carry question tables. The participant-participant-question
// views never render question tables, so asking for their headers is a
// programming error.
func columnHeadersForView(v model.ViewType) []model.ColumnHeader {
	switch v {
	case model.ViewQuestion:
		return []model.ColumnHeader{
			{Name: "Giver", Sortable: true},
			{Name: "Team", Sortable: true},
			{Name: "Recipient", Sortable: true},
			{Name: "Team", Sortable: true},
			{Name: "Feedback", Sortable: true},
			{Name: "Actions"},
		}
	case model.ViewGiverQuestionRecipient:
		return []model.ColumnHeader{
			{Name: "Recipient", Sortable: true},
			{Name: "Team", Sortable: true},
			{Name: "Feedback", Sortable: true},
		}
	case model.ViewRecipientQuestionGiver:
		return []model.ColumnHeader{
			{Name: "Giver", Sortable: true},
			{Name: "Team", Sortable: true},
			{Name: "Feedback", Sortable: true},
			{Name: "Actions"},
		}
	default:
		panic(fmt.Sprintf("column headers requested for view type %q", v))
	}
}

// buildQuestionTable assembles the panel for one question from already
// built and sorted rows. withRows=false produces the structure-only
// shell used when tables are deferred to a follow-up load.
func (rb *rowBuilder) buildQuestionTable(q *model.FeedbackQuestion, responses []*model.FeedbackResponse, rows []*model.ResponseRow, withRows bool) *model.QuestionTable {
	details := rb.bundle.DetailsOf(q)

	table := &model.QuestionTable{
		QuestionID:       q.ID,
		QuestionNumber:   q.QuestionNumber,
		QuestionType:     q.QuestionType,
		QuestionText:     q.QuestionText,
		HasResponses:     len(responses) > 0,
		ShowResponseRows: withRows,
		Collapsible:      true,
	}
	if !withRows {
		table.LoadByAjax = true
		return table
	}

	table.ColumnHeaders = columnHeadersForView(rb.viewType)
	table.Rows = rows
	if rb.showStats {
		table.StatisticsTable = details.Statistics(q, responses)
	}
	return table
}

// buildQuestionTableWithRows builds rows for the question-view table,
// sorts them, and wraps them in a table.
func (rb *rowBuilder) buildQuestionTableWithRows(q *model.FeedbackQuestion, responses []*model.FeedbackResponse) *model.QuestionTable {
	rows := rb.buildRowsForQuestion(q, responses)
	sortRows(rows, rb.bundle.DetailsOf(q))
	return rb.buildQuestionTable(q, responses, rows, true)
}

// buildQuestionTableForParticipant builds one participant's table for a
// question in the participant-question-participant views.
func (rb *rowBuilder) buildQuestionTableForParticipant(q *model.FeedbackQuestion, responses []*model.FeedbackResponse, participant string, primaryIsGiver bool) *model.QuestionTable {
	rows := rb.buildRowsForSingleParticipant(q, responses, participant, primaryIsGiver)
	sortRows(rows, rb.bundle.DetailsOf(q))
	return rb.buildQuestionTable(q, responses, rows, true)
}
