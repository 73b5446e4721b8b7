package model

import "strings"

// FeedbackQuestion is one question of a feedback session. The visible-to
// roles are stored as a comma separated list of ParticipantType values.
// swagger:model FeedbackQuestion
type FeedbackQuestion struct {
	UUIDBase
	CourseID            string          `gorm:"size:64;index:idx_question_session;not null" json:"courseId"`
	FeedbackSessionName string          `gorm:"size:255;index:idx_question_session;not null" json:"feedbackSessionName"`
	QuestionNumber      int             `gorm:"not null" json:"questionNumber"`
	QuestionType        string          `gorm:"size:50;not null" json:"questionType"` // text, mcq, numscale, contrib
	QuestionText        string          `gorm:"type:text;not null" json:"questionText"`
	GiverType           ParticipantType `gorm:"size:50;not null" json:"giverType"`
	RecipientType       ParticipantType `gorm:"size:50;not null" json:"recipientType"`
	ShowResponsesTo     string          `gorm:"size:512" json:"showResponsesTo"`
	ShowGiverNameTo     string          `gorm:"size:512" json:"showGiverNameTo"`
	ShowRecipientNameTo string          `gorm:"size:512" json:"showRecipientNameTo"`
	Options             string          `gorm:"type:text" json:"options"` // comma separated, mcq only
	MinScale            int             `gorm:"default:1" json:"minScale"`
	MaxScale            int             `gorm:"default:5" json:"maxScale"`
}

func (FeedbackQuestion) TableName() string {
	return "feedback_questions"
}

func containsType(list string, pt ParticipantType) bool {
	for _, raw := range strings.Split(list, ",") {
		if ParticipantType(strings.TrimSpace(raw)) == pt {
			return true
		}
	}
	return false
}

// IsResponseVisibleTo reports whether the raw configured visible-to set
// includes the given role, with no adjustment for giver/recipient type.
func (q *FeedbackQuestion) IsResponseVisibleTo(pt ParticipantType) bool {
	return containsType(q.ShowResponsesTo, pt)
}

func (q *FeedbackQuestion) IsGiverNameVisibleTo(pt ParticipantType) bool {
	return containsType(q.ShowGiverNameTo, pt)
}

func (q *FeedbackQuestion) IsRecipientNameVisibleTo(pt ParticipantType) bool {
	return containsType(q.ShowRecipientNameTo, pt)
}

// OptionList splits the stored mcq options.
func (q *FeedbackQuestion) OptionList() []string {
	if q.Options == "" {
		return nil
	}
	parts := strings.Split(q.Options, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
