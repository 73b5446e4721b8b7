package model

import "time"

// ViewType selects one of the five result orderings.
type ViewType string

const (
	ViewQuestion               ViewType = "QUESTION"
	ViewGiverQuestionRecipient ViewType = "GIVER_QUESTION_RECIPIENT"
	ViewRecipientQuestionGiver ViewType = "RECIPIENT_QUESTION_GIVER"
	ViewGiverRecipientQuestion ViewType = "GIVER_RECIPIENT_QUESTION"
	ViewRecipientGiverQuestion ViewType = "RECIPIENT_GIVER_QUESTION"
)

// IsPrimaryGroupingOfGiverType reports whether the first grouping level
// is the response giver.
func (v ViewType) IsPrimaryGroupingOfGiverType() bool {
	return v == ViewGiverQuestionRecipient || v == ViewGiverRecipientQuestion
}

// IsSecondaryGroupingOfParticipantType reports whether the second
// grouping level is a participant rather than a question.
func (v ViewType) IsSecondaryGroupingOfParticipantType() bool {
	return v == ViewGiverRecipientQuestion || v == ViewRecipientGiverQuestion
}

func (v ViewType) Valid() bool {
	switch v {
	case ViewQuestion, ViewGiverQuestionRecipient, ViewRecipientQuestionGiver,
		ViewGiverRecipientQuestion, ViewRecipientGiverQuestion:
		return true
	}
	return false
}

// ModerationButton describes the per-giver moderation action rendered
// next to a response or panel. Disabled reflects the viewing
// instructor's per-section moderation privilege.
type ModerationButton struct {
	Disabled        bool   `json:"disabled"`
	GiverIdentifier string `json:"giverIdentifier"`
	CourseID        string `json:"courseId"`
	SessionName     string `json:"feedbackSessionName"`
	QuestionID      string `json:"questionId,omitempty"`
	Text            string `json:"text"`
}

type CommentRow struct {
	ID                string    `json:"id"`
	AuthorEmail       string    `json:"authorEmail"`
	AuthorName        string    `json:"authorName"`
	Body              string    `json:"body"`
	CreatedAt         time.Time `json:"createdAt"`
	VisibilityIcon    bool      `json:"visibilityIcon"`
	EditDeleteAllowed bool      `json:"editDeleteAllowed"`
}

// ResponseRow is one displayed response, real or synthesized. A
// synthesized row (Missing) carries the same giver/recipient metadata
// as a real one so it sorts and renders identically.
type ResponseRow struct {
	GiverName        string            `json:"giverName"`
	GiverTeam        string            `json:"giverTeam"`
	GiverEmail       string            `json:"-"`
	RecipientName    string            `json:"recipientName"`
	RecipientTeam    string            `json:"recipientTeam"`
	RecipientEmail   string            `json:"-"`
	Answer           string            `json:"answer"`
	Missing          bool              `json:"missing"`
	GiverDisplayed   bool              `json:"giverDisplayed"`
	RecipientShown   bool              `json:"recipientDisplayed"`
	ActionsDisplayed bool              `json:"actionsDisplayed"`
	ModerationButton *ModerationButton `json:"moderationButton,omitempty"`
	Comments         []CommentRow      `json:"comments,omitempty"`
	CommentsAllowed  bool              `json:"commentsAllowed"`
}

// DefaultRowLess is the default display order of response rows:
// ascending giver team, giver name, recipient team, recipient name.
func DefaultRowLess(a, b *ResponseRow) bool {
	if a.GiverTeam != b.GiverTeam {
		return a.GiverTeam < b.GiverTeam
	}
	if a.GiverName != b.GiverName {
		return a.GiverName < b.GiverName
	}
	if a.RecipientTeam != b.RecipientTeam {
		return a.RecipientTeam < b.RecipientTeam
	}
	return a.RecipientName < b.RecipientName
}

type ColumnHeader struct {
	Name     string `json:"name"`
	Sortable bool   `json:"sortable"`
}

// QuestionTable is the panel for one question: optional statistics and
// response rows. In structure-only mode rows are omitted and loaded by
// a narrower follow-up call.
type QuestionTable struct {
	QuestionID       string         `json:"questionId"`
	QuestionNumber   int            `json:"questionNumber"`
	QuestionType     string         `json:"questionType"`
	QuestionText     string         `json:"questionText"`
	StatisticsTable  string         `json:"statisticsTable,omitempty"`
	ColumnHeaders    []ColumnHeader `json:"columnHeaders,omitempty"`
	Rows             []*ResponseRow `json:"rows,omitempty"`
	HasResponses     bool           `json:"hasResponses"`
	ShowResponseRows bool           `json:"showResponseRows"`
	Collapsible      bool           `json:"collapsible"`
	LoadByAjax       bool           `json:"loadByAjax,omitempty"`
}

// SecondaryParticipantPanel groups the rows exchanged between the
// primary participant of the enclosing panel and one counterpart, for
// the participant-participant-question views.
type SecondaryParticipantPanel struct {
	Identifier       string            `json:"identifier"`
	Name             string            `json:"name"`
	Rows             []*ResponseRow    `json:"rows"`
	ModerationButton *ModerationButton `json:"moderationButton,omitempty"`
}

// ParticipantPanel is the per-participant block inside a team panel.
// Exactly one of QuestionTables (participant-question-participant
// views) or SecondaryPanels (participant-participant-question views)
// is populated.
type ParticipantPanel struct {
	Identifier       string                       `json:"identifier"`
	Name             string                       `json:"name"`
	IsGiver          bool                         `json:"isGiver"`
	HasResponses     bool                         `json:"hasResponses"`
	ModerationButton *ModerationButton            `json:"moderationButton,omitempty"`
	QuestionTables   []*QuestionTable             `json:"questionTables,omitempty"`
	SecondaryPanels  []*SecondaryParticipantPanel `json:"secondaryPanels,omitempty"`
}

// TeamPanel groups the participant panels of one team within a section,
// with the team's statistics tables when statistics are requested.
type TeamPanel struct {
	TeamName             string              `json:"teamName"`
	HasResponses         bool                `json:"hasResponses"`
	ParticipantPanels    []*ParticipantPanel `json:"participantPanels"`
	StatisticsTables     []*QuestionTable    `json:"statisticsTables,omitempty"`
	DisplayingStatistics bool                `json:"displayingStatistics"`
}

type SectionPanel struct {
	SectionName             string       `json:"sectionName"`
	DisplayName             string       `json:"displayName"`
	LoadByAjax              bool         `json:"loadByAjax"`
	AbleToLoadResponses     bool         `json:"ableToLoadResponses"`
	StatisticsHeader        string       `json:"statisticsHeader,omitempty"`
	DetailedResponsesHeader string       `json:"detailedResponsesHeader,omitempty"`
	TeamPanels              []*TeamPanel `json:"teamPanels,omitempty"`
}

// NoResponseRow is one expected respondent who submitted nothing.
type NoResponseRow struct {
	Identifier       string            `json:"identifier"`
	Name             string            `json:"name"`
	Team             string            `json:"team"`
	ModerationButton *ModerationButton `json:"moderationButton,omitempty"`
}

type NoResponsePanel struct {
	Rows []*NoResponseRow `json:"rows"`
}

// ResultsPage is the assembled view model returned to the rendering
// layer. QuestionPanels is set for the question view, SectionPanels for
// the four participant views.
type ResultsPage struct {
	CourseID               string          `json:"courseId"`
	FeedbackSessionName    string          `json:"feedbackSessionName"`
	ViewType               ViewType        `json:"viewType"`
	SelectedSection        string          `json:"selectedSection"`
	Sections               []string        `json:"sections"`
	ShowStats              bool            `json:"showStats"`
	GroupByTeam            bool            `json:"groupByTeam"`
	MissingResponsesShown  bool            `json:"missingResponsesShown"`
	StartIndex             int             `json:"startIndex"`
	QuestionPanels         []*QuestionTable `json:"questionPanels,omitempty"`
	SectionPanels          []*SectionPanel `json:"sectionPanels,omitempty"`
	NoResponsePanel        *NoResponsePanel `json:"noResponsePanel,omitempty"`
	Incomplete             bool            `json:"incomplete"`
	LargeNumberOfResponses bool            `json:"largeNumberOfResponses"`
}
