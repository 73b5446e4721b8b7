package model

// FeedbackResponse is one submitted answer for a (giver, recipient)
// pair of a question. Giver and Recipient hold participant identifiers
// (an email, a team name, or GeneralRecipient); identifiers of hidden
// participants are anonymised before storage in the results bundle.
// swagger:model FeedbackResponse
type FeedbackResponse struct {
	UUIDBase
	QuestionID       string `gorm:"size:36;index;not null" json:"questionId"`
	Giver            string `gorm:"size:100;index;not null" json:"giver"`
	GiverSection     string `gorm:"size:100;default:'None'" json:"giverSection"`
	Recipient        string `gorm:"size:100;index;not null" json:"recipient"`
	RecipientSection string `gorm:"size:100;default:'None'" json:"recipientSection"`
	AnswerText       string `gorm:"type:text" json:"answerText"`
}

func (FeedbackResponse) TableName() string {
	return "feedback_responses"
}
