package services

import "strings"

// AuthorizationPolicy decides which authenticated users get the admin view.
// This is a client-side convenience only: the backend independently
// re-authorizes every privileged operation.
type AuthorizationPolicy interface {
	IsAdmin(email string) bool
}

// AdminAllowList is a fixed set of administrator email addresses.
type AdminAllowList struct {
	emails map[string]struct{}
}

func NewAdminAllowList(emails []string) *AdminAllowList {
	set := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		set[normalizeEmail(email)] = struct{}{}
	}
	return &AdminAllowList{emails: set}
}

func (a *AdminAllowList) IsAdmin(email string) bool {
	_, ok := a.emails[normalizeEmail(email)]
	return ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
