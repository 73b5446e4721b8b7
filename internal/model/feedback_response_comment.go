package model

// swagger:model FeedbackResponseComment
type FeedbackResponseComment struct {
	UUIDBase
	ResponseID  string `gorm:"size:36;index;not null" json:"responseId"`
	AuthorEmail string `gorm:"size:100;not null" json:"authorEmail"`
	Body        string `gorm:"type:text;not null" json:"body"`
	ShowTo      string `gorm:"size:512" json:"showTo"` // comma separated ParticipantType values
}

func (FeedbackResponseComment) TableName() string {
	return "feedback_response_comments"
}

func (c *FeedbackResponseComment) IsVisibleTo(pt ParticipantType) bool {
	return containsType(c.ShowTo, pt)
}

// IsPubliclyVisible reports whether anyone beyond instructors may see
// the comment; drives the visibility icon in the results view.
func (c *FeedbackResponseComment) IsPubliclyVisible() bool {
	return c.ShowTo != ""
}
