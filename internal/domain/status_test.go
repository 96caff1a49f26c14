package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		current AppointmentStatus
		next    AppointmentStatus
		role    Role
		want    bool
	}{
		{"client cancels pending", StatusPending, StatusCancelled, RoleClient, true},
		{"client cannot confirm pending", StatusPending, StatusConfirmed, RoleClient, false},
		{"master confirms pending", StatusPending, StatusConfirmed, RoleMaster, true},
		{"master cancels pending", StatusPending, StatusCancelled, RoleMaster, true},
		{"admin confirms pending", StatusPending, StatusConfirmed, RoleAdmin, true},
		{"master completes confirmed", StatusConfirmed, StatusCompleted, RoleMaster, true},
		{"master cancels confirmed", StatusConfirmed, StatusCancelled, RoleMaster, true},
		{"client cannot cancel confirmed", StatusConfirmed, StatusCancelled, RoleClient, false},
		{"client cannot complete confirmed", StatusConfirmed, StatusCompleted, RoleClient, false},
		{"cannot skip pending to completed", StatusPending, StatusCompleted, RoleMaster, false},
		{"cannot skip pending to completed as admin", StatusPending, StatusCompleted, RoleAdmin, false},
		{"completed is terminal for admin", StatusCompleted, StatusCancelled, RoleAdmin, false},
		{"completed is terminal for master", StatusCompleted, StatusConfirmed, RoleMaster, false},
		{"cancelled is terminal for admin", StatusCancelled, StatusPending, RoleAdmin, false},
		{"cancelled is terminal for client", StatusCancelled, StatusConfirmed, RoleClient, false},
		{"no self transition", StatusPending, StatusPending, RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.current, tt.next, tt.role))
		})
	}
}

func TestAllowedTransitions(t *testing.T) {
	t.Run("pending for client", func(t *testing.T) {
		got := AllowedTransitions(StatusPending, RoleClient)
		assert.Equal(t, []AppointmentStatus{StatusCancelled}, got)
	})

	t.Run("pending for master", func(t *testing.T) {
		got := AllowedTransitions(StatusPending, RoleMaster)
		assert.ElementsMatch(t, []AppointmentStatus{StatusConfirmed, StatusCancelled}, got)
	})

	t.Run("confirmed for client is empty", func(t *testing.T) {
		assert.Empty(t, AllowedTransitions(StatusConfirmed, RoleClient))
	})

	t.Run("terminal statuses have no transitions for any role", func(t *testing.T) {
		for _, status := range []AppointmentStatus{StatusCompleted, StatusCancelled} {
			for _, role := range []Role{RoleClient, RoleMaster, RoleAdmin} {
				assert.Empty(t, AllowedTransitions(status, role), "status=%s role=%s", status, role)
			}
		}
	})
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "completed", "cancelled"} {
		status, ok := ParseStatus(valid)
		assert.True(t, ok, "status %q must parse", valid)
		assert.Equal(t, AppointmentStatus(valid), status)
	}

	for _, invalid := range []string{"", "Pending", "canceled", "done", "active"} {
		_, ok := ParseStatus(invalid)
		assert.False(t, ok, "status %q must not parse", invalid)
	}
}

func TestRole_IsStaff(t *testing.T) {
	assert.False(t, RoleClient.IsStaff())
	assert.True(t, RoleMaster.IsStaff())
	assert.True(t, RoleAdmin.IsStaff())
}
