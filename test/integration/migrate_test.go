//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/cvdss/cvdss/internal/platform/db"
	"github.com/cvdss/cvdss/migrations"
)

func TestMigrator_Idempotent(t *testing.T) {
	ctx := context.Background()
	m := db.NewMigrator(globalPool, migrations.FS)

	n, err := m.Up(ctx)
	if err != nil {
		t.Fatalf("second up: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no pending migrations, applied %d", n)
	}

	statuses, err := m.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, s := range statuses {
		if !s.Applied || s.AppliedAt == nil {
			t.Errorf("migration %d not applied", s.Version)
		}
	}
}
