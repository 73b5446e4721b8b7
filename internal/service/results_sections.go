package service

import (
	"sort"

	"github.com/markvl91/teammates/internal/model"
)

// buildSectionPanels assembles the section > team > participant panel
// tree for the four participant-grouped views. Teams and participants
// with responses keep their encounter order; zero-response roster
// members follow, alphabetical by display name, and a team with no
// responses at all gets a fully synthesized panel.
func (rb *rowBuilder) buildSectionPanels() []*model.SectionPanel {
	b := rb.bundle
	primaryIsGiver := rb.viewType.IsPrimaryGroupingOfGiverType()

	var panels []*participantEntry
	if rb.viewType.IsSecondaryGroupingOfParticipantType() {
		for _, g := range groupByParticipantParticipant(b, primaryIsGiver) {
			panels = append(panels, rb.buildPairwiseParticipantPanel(g, primaryIsGiver))
		}
	} else {
		for _, g := range groupByParticipantQuestion(b, primaryIsGiver) {
			panels = append(panels, rb.buildQuestionFamilyParticipantPanel(g, primaryIsGiver))
		}
	}

	bySection := rb.partitionBySection(panels)

	var statsByTeam map[string]map[string][]*model.FeedbackResponse
	if rb.showStats {
		statsByTeam = responsesByTeam(b, true)
	}

	var out []*model.SectionPanel
	for _, section := range rb.orderedSections(bySection) {
		if !rb.isAllSectionsSelected() && section != rb.selectedSection {
			continue
		}
		out = append(out, rb.buildSectionPanel(section, bySection[section], primaryIsGiver, statsByTeam))
	}
	return out
}

// participantEntry keeps the panel next to the resolved identity used
// for section and team placement.
type participantEntry struct {
	identifier string
	section    string
	team       string
	panel      *model.ParticipantPanel
}

// partitionBySection buckets participant entries by section, keeping
// encounter order, and drops out-of-section students when a section
// filter is active. Teams and instructors span sections and are never
// filtered out.
func (rb *rowBuilder) partitionBySection(entries []*participantEntry) map[string][]*participantEntry {
	bySection := make(map[string][]*participantEntry)
	for _, e := range entries {
		if !rb.isAllSectionsSelected() && rb.bundle.Roster.IsStudent(e.identifier) && e.section != rb.selectedSection {
			continue
		}
		bySection[e.section] = append(bySection[e.section], e)
	}
	return bySection
}

// orderedSections lists roster sections in sorted order, the default
// "None" bucket last, restricted to sections that have panels or roster
// teams to synthesize.
func (rb *rowBuilder) orderedSections(bySection map[string][]*participantEntry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range rb.bundle.Roster.Sections() {
		seen[s] = true
		out = append(out, s)
	}
	var extra []string
	for s := range bySection {
		if !seen[s] && s != model.DefaultSection {
			extra = append(extra, s)
		}
	}
	sort.Strings(extra)
	out = append(out, extra...)
	if len(bySection[model.DefaultSection]) > 0 {
		out = append(out, model.DefaultSection)
	}
	return out
}

func (rb *rowBuilder) buildSectionPanel(section string, entries []*participantEntry, primaryIsGiver bool, statsByTeam map[string]map[string][]*model.FeedbackResponse) *model.SectionPanel {
	b := rb.bundle

	display := section
	if section == model.DefaultSection {
		display = model.NoSpecificSection
	}
	panel := &model.SectionPanel{
		SectionName:             section,
		DisplayName:             display,
		AbleToLoadResponses:     true,
		StatisticsHeader:        "Statistics for Given Responses",
		DetailedResponsesHeader: "Detailed Responses",
	}

	// teams in encounter order, then teams with no responses at all
	var teamOrder []string
	byTeam := make(map[string][]*participantEntry)
	for _, e := range entries {
		if _, ok := byTeam[e.team]; !ok {
			teamOrder = append(teamOrder, e.team)
		}
		byTeam[e.team] = append(byTeam[e.team], e)
	}
	for _, team := range b.Roster.TeamsInSection(section) {
		if _, ok := byTeam[team]; !ok {
			teamOrder = append(teamOrder, team)
			byTeam[team] = nil
		}
	}

	for _, team := range teamOrder {
		panel.TeamPanels = append(panel.TeamPanels,
			rb.buildTeamPanel(team, byTeam[team], primaryIsGiver, statsByTeam[team]))
	}
	return panel
}

func (rb *rowBuilder) buildTeamPanel(team string, entries []*participantEntry, primaryIsGiver bool, teamResponses map[string][]*model.FeedbackResponse) *model.TeamPanel {
	b := rb.bundle

	panel := &model.TeamPanel{TeamName: team}
	seen := make(map[string]bool)
	for _, e := range entries {
		seen[e.identifier] = true
		panel.ParticipantPanels = append(panel.ParticipantPanels, e.panel)
		if e.panel.HasResponses {
			panel.HasResponses = true
		}
	}

	// roster members of the team with no panel yet, by display name
	var missing []string
	for _, member := range b.Roster.TeamMembers(team) {
		if !seen[member] {
			missing = append(missing, member)
		}
	}
	sort.Slice(missing, func(i, j int) bool {
		return b.NameForIdentifier(missing[i]) < b.NameForIdentifier(missing[j])
	})
	for _, member := range missing {
		panel.ParticipantPanels = append(panel.ParticipantPanels,
			rb.buildSynthesizedParticipantPanel(member, primaryIsGiver))
	}

	if rb.showStats && b.IsTeamVisible(team) {
		panel.StatisticsTables = rb.buildTeamStatisticsTables(teamResponses)
		panel.DisplayingStatistics = len(panel.StatisticsTables) > 0
	}
	return panel
}

// buildTeamStatisticsTables computes one statistics table per question
// from the team's own responses. Questions whose capsule yields no
// statistics are omitted.
func (rb *rowBuilder) buildTeamStatisticsTables(teamResponses map[string][]*model.FeedbackResponse) []*model.QuestionTable {
	b := rb.bundle
	var tables []*model.QuestionTable
	for _, q := range b.Questions {
		responses := teamResponses[q.ID]
		if len(responses) == 0 {
			continue
		}
		stats := b.DetailsOf(q).Statistics(q, responses)
		if stats == "" {
			continue
		}
		tables = append(tables, &model.QuestionTable{
			QuestionID:      q.ID,
			QuestionNumber:  q.QuestionNumber,
			QuestionType:    q.QuestionType,
			QuestionText:    q.QuestionText,
			StatisticsTable: stats,
			HasResponses:    true,
		})
	}
	return tables
}

// buildQuestionFamilyParticipantPanel renders one primary participant
// of the giver-question-recipient or recipient-question-giver views:
// one question table per question, with the participant's missing
// counterpart rows synthesized inside each table.
func (rb *rowBuilder) buildQuestionFamilyParticipantPanel(g participantByQuestion, primaryIsGiver bool) *participantEntry {
	b := rb.bundle

	panel := &model.ParticipantPanel{
		Identifier: g.participant,
		Name:       b.AppendTeamName(b.NameForIdentifier(g.participant), b.TeamForIdentifier(g.participant)),
		IsGiver:    primaryIsGiver,
	}
	if primaryIsGiver {
		panel.ModerationButton = rb.moderationButtonForGiver(nil, g.participant, moderateResponsesForGiver)
	}

	for _, qr := range g.byQuestion {
		if len(qr.responses) > 0 {
			panel.HasResponses = true
		}
		panel.QuestionTables = append(panel.QuestionTables,
			rb.buildQuestionTableForParticipant(qr.question, qr.responses, g.participant, primaryIsGiver))
	}

	return &participantEntry{
		identifier: g.participant,
		section:    b.SectionForIdentifier(g.participant),
		team:       b.DisplayTeamOf(g.participant),
		panel:      panel,
	}
}

// buildPairwiseParticipantPanel renders one primary participant of the
// giver-recipient-question or recipient-giver-question views: one
// secondary panel per counterpart, rows in question order, with missing
// pairs synthesized as extra rows and counterparts.
func (rb *rowBuilder) buildPairwiseParticipantPanel(g participantByParticipant, primaryIsGiver bool) *participantEntry {
	b := rb.bundle

	panel := &model.ParticipantPanel{
		Identifier: g.participant,
		Name:       b.AppendTeamName(b.NameForIdentifier(g.participant), b.TeamForIdentifier(g.participant)),
		IsGiver:    primaryIsGiver,
	}
	if primaryIsGiver {
		panel.ModerationButton = rb.moderationButtonForGiver(nil, g.participant, moderateResponsesForGiver)
	}

	var order []string
	rowsByOther := make(map[string][]*model.ResponseRow)
	answered := make(map[string]map[string]bool) // questionID -> counterpart
	suppressed := make(map[string]bool)          // questionID with hidden identities

	for _, pair := range g.pairs {
		order = append(order, pair.participant)
		for _, r := range pair.responses {
			panel.HasResponses = true
			q := b.QuestionByID(r.QuestionID)
			if q == nil {
				continue
			}
			if !b.IsGiverVisible(r) || !b.IsRecipientVisible(r) {
				suppressed[q.ID] = true
			}
			if answered[q.ID] == nil {
				answered[q.ID] = make(map[string]bool)
			}
			answered[q.ID][pair.participant] = true
			rowsByOther[pair.participant] = append(rowsByOther[pair.participant], rb.buildPairwiseRow(q, r))
		}
	}

	if rb.showMissing {
		rb.appendPairwiseMissingRows(g.participant, primaryIsGiver, &order, rowsByOther, answered, suppressed)
	}

	for _, other := range order {
		sub := &model.SecondaryParticipantPanel{
			Identifier: other,
			Name:       b.AppendTeamName(b.NameForIdentifier(other), b.TeamForIdentifier(other)),
			Rows:       rowsByOther[other],
		}
		if !primaryIsGiver {
			// in recipient-giver views the counterpart is the giver
			sub.ModerationButton = rb.moderationButtonForGiver(nil, other, moderateResponsesForGiver)
		}
		panel.SecondaryPanels = append(panel.SecondaryPanels, sub)
	}

	return &participantEntry{
		identifier: g.participant,
		section:    b.SectionForIdentifier(g.participant),
		team:       b.DisplayTeamOf(g.participant),
		panel:      panel,
	}
}

// appendPairwiseMissingRows adds a placeholder row for every eligible
// (participant, counterpart, question) triple without a real response.
// Questions with hidden identities are skipped wholesale so leftover
// placeholders cannot betray an anonymized pairing.
func (rb *rowBuilder) appendPairwiseMissingRows(participant string, primaryIsGiver bool, order *[]string, rowsByOther map[string][]*model.ResponseRow, answered map[string]map[string]bool, suppressed map[string]bool) {
	b := rb.bundle

	for _, q := range b.Questions {
		if suppressed[q.ID] {
			continue
		}
		var possibleOthers []string
		if primaryIsGiver {
			possibleOthers = b.PossibleRecipients(q, participant)
		} else {
			possibleOthers = b.PossibleGiversFor(q, participant)
		}
		for _, other := range possibleOthers {
			if answered[q.ID][other] {
				continue
			}
			var rows []*model.ResponseRow
			if primaryIsGiver {
				rows = rb.missingRowsForGiver(q, []string{other}, participant,
					b.NameForIdentifier(participant), b.TeamForIdentifier(participant))
			} else {
				rows = rb.missingRowsForRecipient(q, []string{other}, participant,
					b.NameForIdentifier(participant), b.TeamForIdentifier(participant))
			}
			if len(rows) == 0 {
				continue
			}
			if _, ok := rowsByOther[other]; !ok {
				*order = append(*order, other)
			}
			rowsByOther[other] = append(rowsByOther[other], rows...)
		}
	}
}

// buildPairwiseRow builds a response row for the pairwise views, which
// display giver and recipient in the panel headings rather than in the
// row itself.
func (rb *rowBuilder) buildPairwiseRow(q *model.FeedbackQuestion, r *model.FeedbackResponse) *model.ResponseRow {
	b := rb.bundle
	details := b.DetailsOf(q)
	return &model.ResponseRow{
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
}

// buildSynthesizedParticipantPanel builds the panel of a roster member
// who produced no rows at all: every question table (or counterpart
// panel) is synthesized from the eligible-pair sets alone.
func (rb *rowBuilder) buildSynthesizedParticipantPanel(member string, primaryIsGiver bool) *model.ParticipantPanel {
	if rb.viewType.IsSecondaryGroupingOfParticipantType() {
		entry := rb.buildPairwiseParticipantPanel(participantByParticipant{participant: member}, primaryIsGiver)
		return entry.panel
	}

	g := participantByQuestion{participant: member}
	for _, q := range rb.bundle.Questions {
		g.byQuestion = append(g.byQuestion, questionResponses{question: q})
	}
	return rb.buildQuestionFamilyParticipantPanel(g, primaryIsGiver).panel
}
