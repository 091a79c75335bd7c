package handler

import "github.com/assettracker/admin-console/internal/core/domain"

func toUserResponse(u *domain.User) userResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Active:    u.Active,
		Roles:     roles,
		CreatedAt: u.CreatedAt.UTC().Format(timestampFormat),
	}
}

func toListUsersResponse(users []*domain.User) listUsersResponse {
	items := make([]userResponse, 0, len(users))
	for _, u := range users {
		items = append(items, toUserResponse(u))
	}
	return listUsersResponse{Users: items, Total: len(items)}
}

func toAuditResponse(events []*domain.AuditEvent) []auditEventResponse {
	items := make([]auditEventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, auditEventResponse{
			ID:        e.ID,
			Actor:     e.Actor,
			Action:    e.Action,
			TargetID:  e.TargetID,
			Detail:    e.Detail,
			Timestamp: e.Timestamp.UTC().Format(timestampFormat),
		})
	}
	return items
}
