package model

// ParticipantType identifies who gives, receives or may see feedback.
type ParticipantType string

const (
	ParticipantSelf                ParticipantType = "SELF"
	ParticipantStudents            ParticipantType = "STUDENTS"
	ParticipantInstructors         ParticipantType = "INSTRUCTORS"
	ParticipantTeams               ParticipantType = "TEAMS"
	ParticipantOwnTeam             ParticipantType = "OWN_TEAM"
	ParticipantOwnTeamMembers      ParticipantType = "OWN_TEAM_MEMBERS"
	ParticipantNone                ParticipantType = "NONE"
	ParticipantGiver               ParticipantType = "GIVER"
	ParticipantReceiver            ParticipantType = "RECEIVER"
	ParticipantReceiverTeamMembers ParticipantType = "RECEIVER_TEAM_MEMBERS"
)

const (
	// DefaultSection is the section name for students not placed in any section.
	DefaultSection = "None"

	// NoSpecificSection is the display label for DefaultSection panels.
	NoSpecificSection = "Not in a section"

	// AllSections is the section filter value meaning no section filter.
	AllSections = "All"

	// InstructorTeam is the pseudo team that groups all instructors.
	InstructorTeam = "Instructors"

	// GeneralRecipient is the recipient identifier for questions directed
	// at nobody in particular.
	GeneralRecipient = "%GENERAL%"

	// GeneralRecipientName is the display name for GeneralRecipient.
	GeneralRecipientName = "Nobody specific (the class)"
)
