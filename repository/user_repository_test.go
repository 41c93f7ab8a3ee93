package repository

import (
	"context"
	"testing"

	"warehouseManagement/internal/db"
	"warehouseManagement/models"
)

func TestUserRepository_CreateGetListUpdate(t *testing.T) {
	d, err := db.Open("file:userrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewUserRepository(d)
	ctx := context.Background()

	// CreateIfAbsent
	alice := &models.User{Username: "alice", Password: "pw1", Role: models.RoleUser}
	if err := repo.CreateIfAbsent(ctx, alice); err != nil {
		t.Fatalf("create: %v", err)
	}

	// GetByUsername loads the stored password for credential checks.
	g, err := repo.GetByUsername(ctx, "alice")
	if err != nil || g == nil {
		t.Fatalf("get by username: %v %+v", err, g)
	}
	if g.Password != "pw1" || g.Role != models.RoleUser {
		t.Fatalf("unexpected user: %+v", g)
	}

	// Creating the same username again is a no-op: no error, no overwrite.
	dupe := &models.User{Username: "alice", Password: "other", Role: models.RoleAdmin}
	if err := repo.CreateIfAbsent(ctx, dupe); err != nil {
		t.Fatalf("create dupe: %v", err)
	}
	g2, _ := repo.GetByUsername(ctx, "alice")
	if g2.Password != "pw1" || g2.Role != models.RoleUser {
		t.Fatalf("existing row was overwritten: %+v", g2)
	}

	// Unknown username yields nil, nil.
	missing, err := repo.GetByUsername(ctx, "nobody")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for unknown user, got %+v err=%v", missing, err)
	}

	// List returns usernames and roles only.
	if err := repo.CreateIfAbsent(ctx, &models.User{Username: "bob", Password: "x", Role: models.RoleAdmin}); err != nil {
		t.Fatalf("create bob: %v", err)
	}
	list, err := repo.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
	if list[0].Username != "alice" || list[1].Username != "bob" {
		t.Fatalf("unexpected order: %+v", list)
	}
	for _, u := range list {
		if u.Password != "" {
			t.Fatalf("list leaked a password: %+v", u)
		}
	}

	// UpdatePassword
	if err := repo.UpdatePassword(ctx, "alice", "rotated"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	g3, _ := repo.GetByUsername(ctx, "alice")
	if g3.Password != "rotated" {
		t.Fatalf("password not updated: %+v", g3)
	}
}
