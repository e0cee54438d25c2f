package models

import "testing"

func TestVideoJobValidate(t *testing.T) {
	t.Run("Valid Job", func(t *testing.T) {
		job := NewVideoJob(1, "clip.mp4")
		job.SetID("abc")

		if err := job.Validate(); err != nil {
			t.Errorf("expected valid job, got %v", err)
		}
	})

	t.Run("Missing ID", func(t *testing.T) {
		job := NewVideoJob(1, "clip.mp4")
		if err := job.Validate(); err == nil {
			t.Error("expected error for missing ID")
		}
	})

	t.Run("Missing Source", func(t *testing.T) {
		job := NewVideoJob(1, "")
		job.SetID("abc")
		if err := job.Validate(); err == nil {
			t.Error("expected error for missing source")
		}
	})

	t.Run("Invalid Status", func(t *testing.T) {
		job := NewVideoJob(1, "clip.mp4")
		job.SetID("abc")
		job.SetStatus("queued")
		if err := job.Validate(); err == nil {
			t.Error("expected error for unknown status")
		}
	})
}

func TestUserIsAdmin(t *testing.T) {
	if !(User{Role: "admin"}).IsAdmin() {
		t.Error("expected admin role to report admin")
	}
	if (User{Role: "member"}).IsAdmin() {
		t.Error("expected member role to not report admin")
	}
}
