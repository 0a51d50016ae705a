package access

import (
	"errors"

	"advent-app/internal/domain/calendar"
)

var (
	// ErrAdminRequired denies any mutation attempted without admin
	// permission.
	ErrAdminRequired = errors.New("admin permission required")

	// ErrForbidden denies viewing a calendar not assigned to the
	// principal. Callers surface it as a not-found so existence is not
	// leaked.
	ErrForbidden = errors.New("forbidden")
)

// AuthorizeMutate allows calendar mutations for admins only.
func AuthorizeMutate(p Principal) error {
	if !p.Admin {
		return ErrAdminRequired
	}
	return nil
}

// AuthorizeView allows admins unconditionally, and otherwise only the exact
// assignee. An unassigned calendar is never visible to a non-admin; nil is
// not a wildcard. Demo calendars never reach this policy, they are served
// through the unauthenticated test channel.
func AuthorizeView(p Principal, cal calendar.Calendar) error {
	if cal.Channel != calendar.ChannelReal {
		return calendar.ErrWrongChannel
	}
	if p.Admin {
		return nil
	}
	if cal.AssigneeSub != nil && *cal.AssigneeSub == p.Sub {
		return nil
	}
	return ErrForbidden
}
