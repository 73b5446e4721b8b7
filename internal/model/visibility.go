package model

import "fmt"

// visibilityRoles are the roles a response or its comments can be shown
// to, in the order the rendering layer expects.
var visibilityRoles = []ParticipantType{
	ParticipantGiver,
	ParticipantReceiver,
	ParticipantOwnTeamMembers,
	ParticipantReceiverTeamMembers,
	ParticipantStudents,
	ParticipantInstructors,
}

// ResponseVisibilityMap derives, per role, whether responses to the
// question are visible to that role. The raw configured set is
// overridden where the role is meaningless for the question's giver or
// recipient type: team visibility is off for instructor and self
// givers, receiver visibility is off for self and unaddressed
// questions, and receiver-team visibility additionally for instructor
// recipients.
func ResponseVisibilityMap(q *FeedbackQuestion) map[ParticipantType]bool {
	m := make(map[ParticipantType]bool, len(visibilityRoles))
	for _, role := range visibilityRoles {
		m[role] = isResponseVisibleToRole(q, role)
	}
	return m
}

func isResponseVisibleToRole(q *FeedbackQuestion, role ParticipantType) bool {
	switch role {
	case ParticipantGiver, ParticipantInstructors, ParticipantStudents:
		return q.IsResponseVisibleTo(role)
	case ParticipantOwnTeamMembers:
		return q.GiverType != ParticipantInstructors &&
			q.GiverType != ParticipantSelf &&
			q.IsResponseVisibleTo(role)
	case ParticipantReceiver:
		return q.RecipientType != ParticipantSelf &&
			q.RecipientType != ParticipantNone &&
			q.IsResponseVisibleTo(role)
	case ParticipantReceiverTeamMembers:
		return q.RecipientType != ParticipantInstructors &&
			q.RecipientType != ParticipantSelf &&
			q.RecipientType != ParticipantNone &&
			q.IsResponseVisibleTo(role)
	default:
		panic(fmt.Sprintf("invalid visibility role %q", role))
	}
}
