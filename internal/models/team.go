package models

// Team member roles.
const (
	RoleLeader = "LEADER"
	RoleMember = "MEMBER"
)

// Team formation states.
const (
	TeamStatusForming   = "FORMING"
	TeamStatusComplete  = "COMPLETE"
	TeamStatusDisbanded = "DISBANDED"
)

// Team embeds its member list. The list is ordered by join time; the first
// member is the founding leader. Invariant: whenever the team is non-empty,
// exactly one member has RoleLeader and its UID equals LeaderID.
type Team struct {
	ID       string       `bson:"_id" json:"id"`
	Name     string       `bson:"name" json:"name"`
	EventID  string       `bson:"event_id" json:"event_id"`
	LeaderID string       `bson:"leader_id" json:"leader_id"`
	Members  []TeamMember `bson:"members" json:"members"`
	Status   string       `bson:"status" json:"status"`
}

type TeamMember struct {
	UID   string `bson:"uid" json:"uid"`
	Email string `bson:"email" json:"email"`
	Role  string `bson:"role" json:"role"`
}

// MemberIndex returns the position of uid in the member list, or -1.
func (t *Team) MemberIndex(uid string) int {
	for i, m := range t.Members {
		if m.UID == uid {
			return i
		}
	}
	return -1
}

// HasMember reports whether uid is on the roster.
func (t *Team) HasMember(uid string) bool {
	return t.MemberIndex(uid) >= 0
}
