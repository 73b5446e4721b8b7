package model

// swagger:model Course
type Course struct {
	BaseModel
	CourseID string `gorm:"size:64;unique;not null" json:"courseId"`
	Name     string `gorm:"size:255;not null" json:"name"`
	TimeZone string `gorm:"size:64;default:'UTC'" json:"timeZone"`
}

func (Course) TableName() string {
	return "courses"
}
