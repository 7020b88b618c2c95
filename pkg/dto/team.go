package dto

type RegisterIndividualRequest struct {
	EventID string `json:"event_id"`
}

type RegisterTeamRequest struct {
	EventID      string   `json:"event_id"`
	TeamName     string   `json:"team_name"`
	MemberEmails []string `json:"member_emails"`
}

type JoinTeamRequest struct {
	EventID string `json:"event_id"`
}

type LeaveTeamRequest struct {
	EventID string `json:"event_id"`
}

type RemoveMemberRequest struct {
	MemberUID string `json:"member_uid"`
}
