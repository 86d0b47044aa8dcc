package models

import (
	"testing"
	"time"
)

func TestAdminEffectiveStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-48 * time.Hour)
	stale := now.Add(-8 * 24 * time.Hour)

	tests := []struct {
		name  string
		admin Admin
		want  string
	}{
		{"never logged in", Admin{Status: AdminStatusActive}, AdminStatusActive},
		{"recent login", Admin{Status: AdminStatusActive, LastLoginAt: &recent}, AdminStatusActive},
		{"stale login", Admin{Status: AdminStatusActive, LastLoginAt: &stale}, AdminStatusInactive},
		{"suspended wins", Admin{Status: AdminStatusSuspended, LastLoginAt: &recent}, AdminStatusSuspended},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.admin.EffectiveStatus(now); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
