package service

import (
	"sort"

	"github.com/markvl91/teammates/internal/model"
)

const (
	moderateResponsesForGiver = "Moderate Responses"
	moderateSingleResponse    = "Moderate Response"
)

// rowBuilder carries the per-request state needed to turn bundle
// responses into display rows: the immutable bundle, the viewing
// instructor (nil for privilege-less rendering), the selected view and
// filters. All state is request scoped; nothing survives the call.
type rowBuilder struct {
	bundle          *model.ResultsBundle
	viewer          *model.Instructor
	viewType        model.ViewType
	selectedSection string
	showMissing     bool
	showStats       bool
}

func (rb *rowBuilder) isAllSectionsSelected() bool {
	return rb.selectedSection == model.AllSections
}

// moderationButtonForGiver returns nil when the giver's identity is
// hidden, otherwise a button disabled unless the viewer may moderate
// the giver's section.
func (rb *rowBuilder) moderationButtonForGiver(q *model.FeedbackQuestion, giver, text string) *model.ModerationButton {
	b := rb.bundle
	if !b.IsParticipantVisible(giver) || giver == model.GeneralRecipient {
		return nil
	}

	allowed := false
	if rb.viewer != nil {
		allowed = rb.viewer.IsAllowedToModerate(b.SectionForIdentifier(giver))
	}

	btn := &model.ModerationButton{
		Disabled:        !allowed,
		GiverIdentifier: giver,
		CourseID:        b.Session.CourseID,
		SessionName:     b.Session.Name,
		Text:            text,
	}
	if q != nil {
		btn.QuestionID = q.ID
	}
	return btn
}

func (rb *rowBuilder) moderationButtonForExistingResponse(q *model.FeedbackQuestion, r *model.FeedbackResponse) *model.ModerationButton {
	switch q.GiverType {
	case model.ParticipantStudents, model.ParticipantTeams, model.ParticipantInstructors:
		return rb.moderationButtonForGiver(q, r.Giver, moderateSingleResponse)
	}
	return nil
}

func (rb *rowBuilder) buildCommentRows(r *model.FeedbackResponse) []model.CommentRow {
	comments := rb.bundle.Comments[r.ID]
	if len(comments) == 0 {
		return nil
	}

	rows := make([]model.CommentRow, 0, len(comments))
	for _, c := range comments {
		editAllowed := rb.viewer != nil &&
			(rb.viewer.Email == c.AuthorEmail ||
				(rb.viewer.IsAllowedToModerate(r.GiverSection) &&
					rb.viewer.IsAllowedToModerate(r.RecipientSection)))
		rows = append(rows, model.CommentRow{
			ID:                c.ID,
			AuthorEmail:       c.AuthorEmail,
			AuthorName:        rb.bundle.NameForIdentifier(c.AuthorEmail),
			Body:              c.Body,
			CreatedAt:         c.CreatedAt,
			VisibilityIcon:    rb.bundle.Session.Published && c.IsPubliclyVisible(),
			EditDeleteAllowed: editAllowed,
		})
	}
	return rows
}

// buildResponseRow renders one actual response as a display row.
func (rb *rowBuilder) buildResponseRow(q *model.FeedbackQuestion, r *model.FeedbackResponse) *model.ResponseRow {
	b := rb.bundle
	details := b.DetailsOf(q)

	row := &model.ResponseRow{
		GiverName:        b.NameForIdentifier(r.Giver),
		GiverTeam:        b.TeamForIdentifier(r.Giver),
		GiverEmail:       r.Giver,
		RecipientName:    b.NameForIdentifier(r.Recipient),
		RecipientTeam:    b.TeamForIdentifier(r.Recipient),
		RecipientEmail:   r.Recipient,
		Answer:           details.AnswerDisplay(r.AnswerText),
		ModerationButton: rb.moderationButtonForExistingResponse(q, r),
		Comments:         rb.buildCommentRows(r),
		CommentsAllowed:  details.CommentsAllowed(),
	}
	rb.configureResponseRow(row)
	return row
}

// configureResponseRow sets the per-view display flags. The pairwise
// views name both parties in their panel headings, so their rows carry
// no display flags.
func (rb *rowBuilder) configureResponseRow(row *model.ResponseRow) {
	switch rb.viewType {
	case model.ViewQuestion:
		row.GiverDisplayed = true
		row.RecipientShown = true
		row.ActionsDisplayed = true
	case model.ViewGiverQuestionRecipient:
		row.GiverDisplayed = false
		row.RecipientShown = true
		row.ActionsDisplayed = false
	case model.ViewRecipientQuestionGiver:
		row.GiverDisplayed = true
		row.RecipientShown = false
		row.ActionsDisplayed = true
	}
}

// missingRowsForGiver synthesizes placeholder rows from a giver to each
// remaining possible recipient, honoring the capsule's no-response policy.
func (rb *rowBuilder) missingRowsForGiver(q *model.FeedbackQuestion, possibleRecipients []string, giver, giverName, giverTeam string) []*model.ResponseRow {
	b := rb.bundle
	details := b.DetailsOf(q)
	if !details.ShouldShowNoResponseText(q) {
		return nil
	}

	var rows []*model.ResponseRow
	for _, recipient := range possibleRecipients {
		row := &model.ResponseRow{
			GiverName:        giverName,
			GiverTeam:        giverTeam,
			GiverEmail:       giver,
			RecipientName:    b.NameForIdentifier(recipient),
			RecipientTeam:    b.TeamForIdentifier(recipient),
			RecipientEmail:   recipient,
			Answer:           details.NoResponseText(),
			Missing:          true,
			ModerationButton: rb.moderationButtonForGiver(q, giver, moderateSingleResponse),
		}
		rb.configureResponseRow(row)
		rows = append(rows, row)
	}
	return rows
}

// missingRowsForRecipient is the mirror of missingRowsForGiver for the
// recipient-primary views.
func (rb *rowBuilder) missingRowsForRecipient(q *model.FeedbackQuestion, possibleGivers []string, recipient, recipientName, recipientTeam string) []*model.ResponseRow {
	b := rb.bundle
	details := b.DetailsOf(q)
	if !details.ShouldShowNoResponseText(q) {
		return nil
	}

	var rows []*model.ResponseRow
	for _, giver := range possibleGivers {
		row := &model.ResponseRow{
			GiverName:        b.NameForIdentifier(giver),
			GiverTeam:        b.TeamForIdentifier(giver),
			GiverEmail:       giver,
			RecipientName:    recipientName,
			RecipientTeam:    recipientTeam,
			RecipientEmail:   recipient,
			Answer:           details.NoResponseText(),
			Missing:          true,
			ModerationButton: rb.moderationButtonForGiver(q, giver, moderateSingleResponse),
		}
		rb.configureResponseRow(row)
		rows = append(rows, row)
	}
	return rows
}

// buildRowsForQuestion builds rows for one question of the flat
// question view: the actual responses, assumed grouped by giver,
// interleaved with synthesized rows for every eligible pair without a
// response. A single left-to-right pass flushes the previous giver's
// unanswered recipients whenever a new giver starts, then expands the
// givers who answered nothing at all. When the giver or recipient of a
// real response is hidden, all pending possible-participant lists are
// cleared so leftover placeholders cannot expose the hidden pairing.
func (rb *rowBuilder) buildRowsForQuestion(q *model.FeedbackQuestion, responses []*model.FeedbackResponse) []*model.ResponseRow {
	b := rb.bundle
	var rows []*model.ResponseRow

	possibleGivers := b.PossibleGivers(q)
	var possibleRecipientsForGiver []string

	prevGiver := ""
	for _, r := range responses {
		if !b.IsGiverVisible(r) || !b.IsRecipientVisible(r) {
			possibleGivers = nil
			possibleRecipientsForGiver = nil
		}

		possibleGivers = removeIdentifier(possibleGivers, r.Giver)

		if r.Giver != prevGiver {
			if rb.showMissing {
				rows = append(rows, rb.missingRowsForGiver(q, possibleRecipientsForGiver,
					prevGiver, b.NameForIdentifier(prevGiver), b.TeamForIdentifier(prevGiver))...)
			}
			possibleRecipientsForGiver = b.PossibleRecipients(q, r.Giver)
		}

		possibleRecipientsForGiver = removeIdentifier(possibleRecipientsForGiver, r.Recipient)
		prevGiver = r.Giver

		rows = append(rows, rb.buildResponseRow(q, r))
	}

	if len(responses) > 0 {
		rows = append(rows, rb.remainingMissingRows(q, possibleGivers, possibleRecipientsForGiver, prevGiver)...)
	}

	return rows
}

// remainingMissingRows flushes the last seen giver's unanswered
// recipients and then every eligible giver who produced no response at
// all, each expanded against their own possible-recipient set. Givers
// outside the selected section are skipped entirely.
func (rb *rowBuilder) remainingMissingRows(q *model.FeedbackQuestion, remainingGivers, possibleRecipientsForGiver []string, prevGiver string) []*model.ResponseRow {
	b := rb.bundle
	var rows []*model.ResponseRow

	if rb.showMissing {
		rows = append(rows, rb.missingRowsForGiver(q, possibleRecipientsForGiver,
			prevGiver, b.NameForIdentifier(prevGiver), b.TeamForIdentifier(prevGiver))...)
	}

	remainingGivers = removeIdentifier(remainingGivers, prevGiver)

	for _, giver := range remainingGivers {
		if !rb.isAllSectionsSelected() && b.SectionForIdentifier(giver) != rb.selectedSection {
			continue
		}
		if rb.showMissing {
			rows = append(rows, rb.missingRowsForGiver(q, b.PossibleRecipients(q, giver),
				giver, b.NameForIdentifier(giver), b.TeamForIdentifier(giver))...)
		}
	}

	return rows
}

// buildRowsForSingleParticipant builds rows for one question within a
// single participant's panel, synthesizing the participant's missing
// counterpart rows. primaryIsGiver picks whether the participant is the
// rows' giver or recipient.
func (rb *rowBuilder) buildRowsForSingleParticipant(q *model.FeedbackQuestion, responses []*model.FeedbackResponse, participant string, primaryIsGiver bool) []*model.ResponseRow {
	b := rb.bundle
	var rows []*model.ResponseRow

	var possibleOthers []string
	if primaryIsGiver {
		possibleOthers = b.PossibleRecipients(q, participant)
	} else {
		possibleOthers = b.PossibleGiversFor(q, participant)
	}

	for _, r := range responses {
		if !b.IsGiverVisible(r) || !b.IsRecipientVisible(r) {
			possibleOthers = nil
		}

		other := r.Giver
		if primaryIsGiver {
			other = r.Recipient
		}
		possibleOthers = removeIdentifier(possibleOthers, other)

		rows = append(rows, rb.buildResponseRow(q, r))
	}

	if rb.showMissing {
		if primaryIsGiver {
			rows = append(rows, rb.missingRowsForGiver(q, possibleOthers, participant,
				b.NameForIdentifier(participant), b.TeamForIdentifier(participant))...)
		} else {
			rows = append(rows, rb.missingRowsForRecipient(q, possibleOthers, participant,
				b.NameForIdentifier(participant), b.TeamForIdentifier(participant))...)
		}
	}

	return rows
}

// sortRows orders rows by the default team-then-name order, or by the
// capsule comparator when the question type demands one. The sort is
// stable: fully tied rows keep their input order.
func sortRows(rows []*model.ResponseRow, details model.QuestionDetails) {
	if details.RequiresCustomSorting() {
		sort.SliceStable(rows, func(i, j int) bool { return details.RowsLess(rows[i], rows[j]) })
		return
	}
	sort.SliceStable(rows, func(i, j int) bool { return model.DefaultRowLess(rows[i], rows[j]) })
}

func sortByDisplayName(b *model.ResultsBundle, identifiers []string) {
	sort.Slice(identifiers, func(i, j int) bool {
		ni, nj := b.NameForIdentifier(identifiers[i]), b.NameForIdentifier(identifiers[j])
		if ni != nj {
			return ni < nj
		}
		return identifiers[i] < identifiers[j]
	})
}

func removeIdentifier(list []string, identifier string) []string {
	for i, item := range list {
		if item == identifier {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
