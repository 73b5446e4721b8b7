package model

import "encoding/json"

// Instructor is a course staff member who can view results and, per
// section, moderate responses on behalf of students.
// swagger:model Instructor
type Instructor struct {
	BaseModel
	CourseID   string          `gorm:"size:64;index;not null" json:"courseId"`
	Email      string          `gorm:"size:100;index;not null" json:"email"`
	Name       string          `gorm:"size:100;not null" json:"name"`
	Password   string          `gorm:"size:100;not null" json:"-"`
	Privileges json.RawMessage `gorm:"type:json" json:"privileges"` // JSON: InstructorPrivileges
}

func (Instructor) TableName() string {
	return "instructors"
}

// InstructorPrivileges is the decoded shape of Instructor.Privileges.
// SectionModeration lists the sections the instructor may moderate; an
// empty list with CanModerateAll unset means no moderation rights.
type InstructorPrivileges struct {
	CanModifySession  bool     `json:"canModifySession"`
	CanModerateAll    bool     `json:"canModerateAll"`
	SectionModeration []string `json:"sectionModeration"`
}

func (i *Instructor) DecodedPrivileges() InstructorPrivileges {
	var p InstructorPrivileges
	if len(i.Privileges) > 0 {
		_ = json.Unmarshal(i.Privileges, &p)
	}
	return p
}

// IsAllowedToModerate reports whether the instructor may act on behalf
// of a giver in the given section.
func (i *Instructor) IsAllowedToModerate(section string) bool {
	p := i.DecodedPrivileges()
	if p.CanModerateAll {
		return true
	}
	for _, s := range p.SectionModeration {
		if s == section {
			return true
		}
	}
	return false
}
