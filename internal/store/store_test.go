package store

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/nocturnedev/lantern/internal/api"
	"github.com/nocturnedev/lantern/internal/models"
	"github.com/nocturnedev/lantern/internal/shared"
)

// newTestDB opens an in-memory database with migrations applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// In-memory databases exist per connection, so the pool must not
	// rotate connections away from the migrated one.
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestNextSequence(t *testing.T) {
	db := newTestDB(t)

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "video_jobs")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}
}

func TestSessionStore(t *testing.T) {
	t.Run("Load Without Token", func(t *testing.T) {
		store := NewSessionStore(newTestDB(t))

		token, err := store.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token != "" {
			t.Errorf("expected empty token, got %q", token)
		}
	})

	t.Run("Save Load Clear Round Trip", func(t *testing.T) {
		store := NewSessionStore(newTestDB(t))

		if err := store.Save("tok-1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token, _ := store.Load(); token != "tok-1" {
			t.Errorf("expected tok-1, got %q", token)
		}

		// Saving again overwrites under the same key.
		if err := store.Save("tok-2"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token, _ := store.Load(); token != "tok-2" {
			t.Errorf("expected tok-2, got %q", token)
		}

		if err := store.Clear(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token, _ := store.Load(); token != "" {
			t.Errorf("expected cleared token, got %q", token)
		}
	})

	t.Run("Backs A Session", func(t *testing.T) {
		db := newTestDB(t)

		first, err := api.NewSession(NewSessionStore(db))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := first.SetToken("persisted", nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		// A fresh session over the same database sees the token.
		second, err := api.NewSession(NewSessionStore(db))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if second.Token() != "persisted" {
			t.Errorf("expected persisted token, got %q", second.Token())
		}
	})
}

func TestVideoJobRepository(t *testing.T) {
	t.Run("Create Assigns ID and Sequence", func(t *testing.T) {
		repo := NewVideoJobRepository(newTestDB(t))

		job := models.NewVideoJob(0, "clip.mp4")
		if err := repo.Create(job); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if job.ID() == "" {
			t.Error("expected generated ID")
		}
		if job.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", job.Sequence())
		}
		if job.Status() != models.JobStatusSubmitted {
			t.Errorf("expected submitted status, got %s", job.Status())
		}
	})

	t.Run("Get Round Trip", func(t *testing.T) {
		repo := NewVideoJobRepository(newTestDB(t))

		job := models.NewVideoJob(0, "https://example.com/v.mp4")
		repo.Create(job)

		got, err := repo.Get(job.ID())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.Source() != "https://example.com/v.mp4" {
			t.Errorf("expected source to round-trip, got %s", got.Source())
		}
	})

	t.Run("Update Status and Remote ID", func(t *testing.T) {
		repo := NewVideoJobRepository(newTestDB(t))

		job := models.NewVideoJob(0, "clip.mp4")
		repo.Create(job)

		job.SetRemoteID("j-42")
		job.SetStatus(models.JobStatusComplete)
		if err := repo.Update(job); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got, _ := repo.Get(job.ID())
		if got.RemoteID() != "j-42" {
			t.Errorf("expected remote ID j-42, got %s", got.RemoteID())
		}
		if got.Status() != models.JobStatusComplete {
			t.Errorf("expected complete status, got %s", got.Status())
		}
	})

	t.Run("Update Missing Job", func(t *testing.T) {
		repo := NewVideoJobRepository(newTestDB(t))

		job := models.NewVideoJob(1, "ghost.mp4")
		job.SetID("missing")
		err := repo.Update(job)
		if !errors.Is(err, shared.ErrJobNotFound) {
			t.Errorf("expected ErrJobNotFound, got %v", err)
		}
	})

	t.Run("Delete Hides From Get and List", func(t *testing.T) {
		repo := NewVideoJobRepository(newTestDB(t))

		job := models.NewVideoJob(0, "clip.mp4")
		repo.Create(job)

		if err := repo.Delete(job.ID()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := repo.Get(job.ID()); err == nil {
			t.Error("expected soft-deleted job to be invisible")
		}

		jobs, err := repo.List(nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(jobs) != 0 {
			t.Errorf("expected empty list, got %d jobs", len(jobs))
		}
	})

	t.Run("List Newest First With Status Filter", func(t *testing.T) {
		repo := NewVideoJobRepository(newTestDB(t))

		first := models.NewVideoJob(0, "a.mp4")
		second := models.NewVideoJob(0, "b.mp4")
		third := models.NewVideoJob(0, "c.mp4")
		for _, job := range []*models.VideoJob{first, second, third} {
			repo.Create(job)
		}

		second.SetStatus(models.JobStatusFailed)
		repo.Update(second)

		jobs, err := repo.List(nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(jobs) != 3 {
			t.Fatalf("expected 3 jobs, got %d", len(jobs))
		}
		if jobs[0].Source() != "c.mp4" {
			t.Errorf("expected newest first, got %s", jobs[0].Source())
		}

		failed, err := repo.List(map[string]any{"status": models.JobStatusFailed})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(failed) != 1 || failed[0].Source() != "b.mp4" {
			t.Errorf("expected only the failed job, got %d", len(failed))
		}
	})
}
