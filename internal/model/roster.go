package model

import "sort"

// CourseRoster is a read-only index over the students and instructors
// of one course: identifier to team/section/name lookups plus the
// team and section partitions, all in deterministic order.
type CourseRoster struct {
	studentsByEmail    map[string]*Student
	instructorsByEmail map[string]*Instructor

	studentEmails    []string // insertion order of the student list
	instructorEmails []string

	teamMembers  map[string][]string // team -> member emails, roster order
	teamSection  map[string]string
	sectionTeams map[string][]string
	teamOrder    []string
}

func NewCourseRoster(students []*Student, instructors []*Instructor) *CourseRoster {
	r := &CourseRoster{
		studentsByEmail:    make(map[string]*Student, len(students)),
		instructorsByEmail: make(map[string]*Instructor, len(instructors)),
		teamMembers:        make(map[string][]string),
		teamSection:        make(map[string]string),
		sectionTeams:       make(map[string][]string),
	}

	for _, s := range students {
		if _, ok := r.studentsByEmail[s.Email]; ok {
			continue
		}
		r.studentsByEmail[s.Email] = s
		r.studentEmails = append(r.studentEmails, s.Email)

		if _, ok := r.teamMembers[s.Team]; !ok {
			r.teamOrder = append(r.teamOrder, s.Team)
			r.teamSection[s.Team] = s.Section
			r.sectionTeams[s.Section] = append(r.sectionTeams[s.Section], s.Team)
		}
		r.teamMembers[s.Team] = append(r.teamMembers[s.Team], s.Email)
	}

	for _, i := range instructors {
		if _, ok := r.instructorsByEmail[i.Email]; ok {
			continue
		}
		r.instructorsByEmail[i.Email] = i
		r.instructorEmails = append(r.instructorEmails, i.Email)
	}

	return r
}

func (r *CourseRoster) IsStudent(identifier string) bool {
	_, ok := r.studentsByEmail[identifier]
	return ok
}

func (r *CourseRoster) IsInstructor(identifier string) bool {
	_, ok := r.instructorsByEmail[identifier]
	return ok
}

// IsTeam reports whether the identifier is a known team name.
func (r *CourseRoster) IsTeam(identifier string) bool {
	_, ok := r.teamMembers[identifier]
	return ok
}

// NameFor resolves a display name, or "" when the identifier is not in
// the roster.
func (r *CourseRoster) NameFor(identifier string) string {
	if s, ok := r.studentsByEmail[identifier]; ok {
		return s.Name
	}
	if i, ok := r.instructorsByEmail[identifier]; ok {
		return i.Name
	}
	if r.IsTeam(identifier) {
		return identifier
	}
	return ""
}

// TeamFor resolves the team of a participant; instructors map to the
// Instructors pseudo team, team identifiers map to themselves.
func (r *CourseRoster) TeamFor(identifier string) string {
	if s, ok := r.studentsByEmail[identifier]; ok {
		return s.Team
	}
	if r.IsInstructor(identifier) {
		return InstructorTeam
	}
	if r.IsTeam(identifier) {
		return identifier
	}
	return ""
}

// SectionFor resolves the section of a participant. Instructors and
// unknown identifiers fall into DefaultSection; team identifiers take
// the team's section.
func (r *CourseRoster) SectionFor(identifier string) string {
	if s, ok := r.studentsByEmail[identifier]; ok {
		return s.Section
	}
	if sec, ok := r.teamSection[identifier]; ok {
		return sec
	}
	return DefaultSection
}

// StudentEmails returns all student identifiers in roster order.
func (r *CourseRoster) StudentEmails() []string {
	return append([]string(nil), r.studentEmails...)
}

func (r *CourseRoster) InstructorEmails() []string {
	return append([]string(nil), r.instructorEmails...)
}

// Teams returns all team names in roster order.
func (r *CourseRoster) Teams() []string {
	return append([]string(nil), r.teamOrder...)
}

// TeamMembers returns member identifiers of a team in roster order.
func (r *CourseRoster) TeamMembers(team string) []string {
	return append([]string(nil), r.teamMembers[team]...)
}

// TeamsInSection returns teams belonging to a section in roster order.
func (r *CourseRoster) TeamsInSection(section string) []string {
	return append([]string(nil), r.sectionTeams[section]...)
}

// Sections returns the named sections of the course, sorted, excluding
// DefaultSection.
func (r *CourseRoster) Sections() []string {
	var out []string
	for section := range r.sectionTeams {
		if section != DefaultSection {
			out = append(out, section)
		}
	}
	sort.Strings(out)
	return out
}

// InstructorByEmail returns the instructor record, or nil.
func (r *CourseRoster) InstructorByEmail(email string) *Instructor {
	return r.instructorsByEmail[email]
}
