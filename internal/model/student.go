package model

// swagger:model Student
type Student struct {
	BaseModel
	CourseID string `gorm:"size:64;index;not null" json:"courseId"`
	Email    string `gorm:"size:100;index;not null" json:"email"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Team     string `gorm:"size:100;not null" json:"team"`
	Section  string `gorm:"size:100;default:'None'" json:"section"`
}

func (Student) TableName() string {
	return "students"
}
