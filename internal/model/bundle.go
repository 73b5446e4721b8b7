package model

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// ResultsBundle is the immutable snapshot consumed by the results
// engine: one session's questions, responses, comments and roster as
// visible to one viewer. Responses arrive pre-sorted for the requested
// view; the bundle is never mutated after construction.
type ResultsBundle struct {
	Session   *FeedbackSession
	Questions []*FeedbackQuestion // ordered by question number
	Responses []*FeedbackResponse
	Comments  map[string][]*FeedbackResponseComment // response id -> comments, by creation
	Roster    *CourseRoster

	// IsComplete is false when the fetch was range limited, in which
	// case completeness dependent output must be suppressed.
	IsComplete bool

	questionsByID map[string]*FeedbackQuestion
	details       map[string]QuestionDetails
}

func NewResultsBundle(
	session *FeedbackSession,
	questions []*FeedbackQuestion,
	responses []*FeedbackResponse,
	comments map[string][]*FeedbackResponseComment,
	roster *CourseRoster,
	isComplete bool,
) *ResultsBundle {
	b := &ResultsBundle{
		Session:       session,
		Questions:     questions,
		Responses:     responses,
		Comments:      comments,
		Roster:        roster,
		IsComplete:    isComplete,
		questionsByID: make(map[string]*FeedbackQuestion, len(questions)),
		details:       make(map[string]QuestionDetails, len(questions)),
	}
	if b.Comments == nil {
		b.Comments = make(map[string][]*FeedbackResponseComment)
	}
	for _, q := range questions {
		b.questionsByID[q.ID] = q
		b.details[q.ID] = DetailsFor(q.QuestionType)
	}
	return b
}

func (b *ResultsBundle) QuestionByID(id string) *FeedbackQuestion {
	return b.questionsByID[id]
}

// DetailsOf returns the behavior capsule resolved for the question.
func (b *ResultsBundle) DetailsOf(q *FeedbackQuestion) QuestionDetails {
	return b.details[q.ID]
}

const anonymousMarker = "@@"

// AnonymousIdentifier mints the stable pseudonym substituted for a
// hidden participant. The prefix before the marker is the name shown to
// viewers; the hash keeps one pseudonym per hidden participant so rows
// from the same source still group together.
func AnonymousIdentifier(typeNoun, identifier string) string {
	h := fnv.New32a()
	h.Write([]byte(identifier))
	return fmt.Sprintf("Anonymous %s %d%s%d", typeNoun, h.Sum32(), anonymousMarker, h.Sum32())
}

// AnonymousNounFor maps a participant type to the noun used in minted
// pseudonyms.
func AnonymousNounFor(pt ParticipantType) string {
	switch pt {
	case ParticipantInstructors:
		return "instructor"
	case ParticipantTeams, ParticipantOwnTeam:
		return "team"
	default:
		return "student"
	}
}

// IsParticipantVisible reports whether the identifier refers to a real
// roster participant. Anonymised identifiers are minted outside the
// roster, so a failed lookup means the identity is hidden.
func (b *ResultsBundle) IsParticipantVisible(identifier string) bool {
	if identifier == GeneralRecipient {
		return true
	}
	return b.Roster.IsStudent(identifier) || b.Roster.IsInstructor(identifier) ||
		b.Roster.IsTeam(identifier)
}

func (b *ResultsBundle) IsGiverVisible(r *FeedbackResponse) bool {
	return b.IsParticipantVisible(r.Giver)
}

func (b *ResultsBundle) IsRecipientVisible(r *FeedbackResponse) bool {
	return b.IsParticipantVisible(r.Recipient)
}

// NameForIdentifier resolves a display name for any participant
// identifier, including anonymised ones, which carry their display
// prefix before the marker.
func (b *ResultsBundle) NameForIdentifier(identifier string) string {
	if identifier == GeneralRecipient {
		return GeneralRecipientName
	}
	if name := b.Roster.NameFor(identifier); name != "" {
		return name
	}
	if i := strings.Index(identifier, anonymousMarker); i >= 0 {
		return identifier[:i]
	}
	return "Unknown user"
}

// TeamForIdentifier resolves the team of a participant identifier, or
// "" for anonymised and general identifiers.
func (b *ResultsBundle) TeamForIdentifier(identifier string) string {
	return b.Roster.TeamFor(identifier)
}

// DisplayTeamOf is the team a participant panel files under: the
// roster team, or for identity-hidden participants the display name
// itself, so anonymous rows stay grouped without naming a real team.
func (b *ResultsBundle) DisplayTeamOf(identifier string) string {
	if b.Roster.IsInstructor(identifier) {
		return InstructorTeam
	}
	if team := b.Roster.TeamFor(identifier); team != "" {
		return team
	}
	return b.NameForIdentifier(identifier)
}

func (b *ResultsBundle) SectionForIdentifier(identifier string) string {
	return b.Roster.SectionFor(identifier)
}

// AppendTeamName decorates a display name with its team when known.
func (b *ResultsBundle) AppendTeamName(name, team string) string {
	if team == "" || name == team {
		return name
	}
	return name + " (" + team + ")"
}

// IsTeamVisible reports whether team statistics may be computed for the
// team; anonymous pseudo teams and the "-" placeholder are excluded.
func (b *ResultsBundle) IsTeamVisible(team string) bool {
	return b.Roster.IsTeam(team) || team == InstructorTeam
}

// HasResponseFromInstructor reports whether any response was given by
// an instructor, which forces a no-specific-section panel.
func (b *ResultsBundle) HasResponseFromInstructor() bool {
	for _, r := range b.Responses {
		if b.Roster.IsInstructor(r.Giver) {
			return true
		}
	}
	return false
}

// HasResponseToInstructorOrGeneral reports whether any response targets
// an instructor or nobody specific.
func (b *ResultsBundle) HasResponseToInstructorOrGeneral() bool {
	for _, r := range b.Responses {
		if r.Recipient == GeneralRecipient || b.Roster.IsInstructor(r.Recipient) {
			return true
		}
	}
	return false
}

// PossibleGivers lists every participant eligible to answer the
// question, in roster order. Stable for a fixed roster and question.
func (b *ResultsBundle) PossibleGivers(q *FeedbackQuestion) []string {
	switch q.GiverType {
	case ParticipantStudents:
		return b.Roster.StudentEmails()
	case ParticipantInstructors:
		return b.Roster.InstructorEmails()
	case ParticipantTeams:
		return b.Roster.Teams()
	case ParticipantSelf:
		return []string{b.Session.CreatorEmail}
	default:
		return nil
	}
}

// PossibleRecipients lists every recipient the giver may answer about
// for the question, in roster order.
func (b *ResultsBundle) PossibleRecipients(q *FeedbackQuestion, giver string) []string {
	switch q.RecipientType {
	case ParticipantStudents:
		return excluding(b.Roster.StudentEmails(), giver)
	case ParticipantOwnTeamMembers:
		return excluding(b.Roster.TeamMembers(b.teamOfGiver(giver)), giver)
	case ParticipantTeams:
		return excluding(b.Roster.Teams(), b.teamOfGiver(giver))
	case ParticipantOwnTeam:
		return []string{b.teamOfGiver(giver)}
	case ParticipantInstructors:
		return excluding(b.Roster.InstructorEmails(), giver)
	case ParticipantSelf:
		return []string{giver}
	case ParticipantNone:
		return []string{GeneralRecipient}
	default:
		return nil
	}
}

// PossibleGiversFor lists every giver who could have answered about the
// recipient, in roster order. Narrower recipient types constrain the
// giver set: a self-evaluation can only come from the recipient, and
// team-member feedback only from the recipient's own teammates.
func (b *ResultsBundle) PossibleGiversFor(q *FeedbackQuestion, recipient string) []string {
	switch q.RecipientType {
	case ParticipantSelf:
		return []string{recipient}
	case ParticipantOwnTeamMembers:
		return excluding(b.Roster.TeamMembers(b.teamOfGiver(recipient)), recipient)
	case ParticipantOwnTeam:
		return b.Roster.TeamMembers(recipient)
	case ParticipantNone:
		return b.PossibleGivers(q)
	default:
		return excluding(b.PossibleGivers(q), recipient)
	}
}

func (b *ResultsBundle) teamOfGiver(giver string) string {
	if b.Roster.IsTeam(giver) {
		return giver
	}
	return b.Roster.TeamFor(giver)
}

func excluding(list []string, identifier string) []string {
	out := list[:0:0]
	for _, item := range list {
		if item != identifier {
			out = append(out, item)
		}
	}
	return out
}

// ResponseStatus pairs the expected respondents of the session with
// whether each actually submitted anything.
type ResponseStatus struct {
	NameTable map[string]string
	Responded map[string]bool
}

// ComputeResponseStatus derives the response status from the bundle's
// questions and responses.
func (b *ResultsBundle) ComputeResponseStatus() *ResponseStatus {
	status := &ResponseStatus{
		NameTable: make(map[string]string),
		Responded: make(map[string]bool),
	}
	for _, q := range b.Questions {
		for _, giver := range b.PossibleGivers(q) {
			if b.Roster.IsTeam(giver) {
				continue
			}
			status.NameTable[giver] = b.NameForIdentifier(giver)
		}
	}
	for _, r := range b.Responses {
		if b.IsGiverVisible(r) {
			status.Responded[r.Giver] = true
		}
	}
	return status
}
