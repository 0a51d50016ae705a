package access

import (
	"testing"

	"advent-app/internal/domain/calendar"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestAuthorizeMutate(t *testing.T) {
	assert.NoError(t, AuthorizeMutate(Principal{Sub: "a", Admin: true}))
	assert.ErrorIs(t, AuthorizeMutate(Principal{Sub: "a"}), ErrAdminRequired)
}

func TestAuthorizeView(t *testing.T) {
	owner := Principal{Sub: "user-1"}
	other := Principal{Sub: "user-2"}
	admin := Principal{Sub: "root", Admin: true}

	assigned := calendar.Calendar{
		Channel:     calendar.ChannelReal,
		AssigneeSub: strptr("user-1"),
	}
	unassigned := calendar.Calendar{Channel: calendar.ChannelReal}

	tests := []struct {
		name string
		p    Principal
		cal  calendar.Calendar
		want error
	}{
		{"admin sees everything", admin, unassigned, nil},
		{"assignee sees own calendar", owner, assigned, nil},
		{"other user denied", other, assigned, ErrForbidden},
		{"unassigned is not a wildcard", owner, unassigned, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeView(tt.p, tt.cal)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestAuthorizeViewDeniesRegardlessOfPublication(t *testing.T) {
	other := Principal{Sub: "user-2"}
	cal := calendar.Calendar{
		Channel:     calendar.ChannelReal,
		AssigneeSub: strptr("user-1"),
		IsPublished: true,
	}
	assert.ErrorIs(t, AuthorizeView(other, cal), ErrForbidden)
}

func TestAuthorizeViewWrongChannel(t *testing.T) {
	admin := Principal{Sub: "root", Admin: true}
	demo := calendar.Calendar{Channel: calendar.ChannelTest}
	assert.ErrorIs(t, AuthorizeView(admin, demo), calendar.ErrWrongChannel)
}
