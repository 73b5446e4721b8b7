package model

import "time"

// FeedbackSession is one feedback collection round within a course.
// swagger:model FeedbackSession
type FeedbackSession struct {
	BaseModel
	CourseID              string    `gorm:"size:64;index:idx_course_session;not null" json:"courseId"`
	Name                  string    `gorm:"size:255;index:idx_course_session;not null" json:"feedbackSessionName"`
	CreatorEmail          string    `gorm:"size:100;not null" json:"creatorEmail"`
	Instructions          string    `gorm:"type:text" json:"instructions"`
	StartTime             time.Time `json:"startTime"`
	EndTime               time.Time `json:"endTime"`
	Published             bool      `gorm:"default:false" json:"published"`
	RespondingStudents    int       `gorm:"default:0" json:"respondingStudents"`
	RespondingInstructors int       `gorm:"default:0" json:"respondingInstructors"`
}

func (FeedbackSession) TableName() string {
	return "feedback_sessions"
}

func (s *FeedbackSession) IsClosed() bool {
	return time.Now().After(s.EndTime)
}

// RespondentCount is the number of participants who submitted at least
// one response, used against the autoload threshold.
func (s *FeedbackSession) RespondentCount() int {
	return s.RespondingStudents + s.RespondingInstructors
}
