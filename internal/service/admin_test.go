package service

import (
	"context"
	"errors"
	"testing"

	"github.com/citywave/table-reservation/internal/model"
	"github.com/citywave/table-reservation/internal/repository"
	"github.com/citywave/table-reservation/internal/store"
)

func newAdminRepo(t *testing.T) *repository.AdminRepo {
	t.Helper()
	return repository.NewAdminRepo(store.NewMemory())
}

func mainAdmin() *model.AdminAccount {
	return &model.AdminAccount{ID: RootAdminID, Username: "boss", IsMain: true}
}

func TestAdminCreate(t *testing.T) {
	repo := newAdminRepo(t)
	svc := NewAdminService(repo, "boss")

	admin, err := svc.Create(context.Background(), mainAdmin(), "alice", "pw")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if admin.ID == "" || admin.IsMain {
		t.Errorf("unexpected account: %+v", admin)
	}

	stored, err := repo.Get(context.Background(), admin.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Password != "pw" {
		t.Errorf("password stored as %q, want the plain text", stored.Password)
	}
}

func TestAdminCreatePermissionsAndConflicts(t *testing.T) {
	repo := newAdminRepo(t)
	svc := NewAdminService(repo, "boss")

	if _, err := svc.Create(context.Background(), mainAdmin(), "alice", "pw"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	scoped := &model.AdminAccount{ID: "adm-x", Username: "alice"}
	if _, err := svc.Create(context.Background(), scoped, "eve", "pw"); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("scoped admin creating accounts: got %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.Create(context.Background(), mainAdmin(), "alice", "pw2"); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("duplicate username: got %v, want ErrConflict", err)
	}
	if _, err := svc.Create(context.Background(), mainAdmin(), "boss", "pw"); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("root username: got %v, want ErrConflict", err)
	}
	if _, err := svc.Create(context.Background(), mainAdmin(), " ", "pw"); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("blank username: got %v, want ErrMalformedInput", err)
	}
}

func TestAdminDelete(t *testing.T) {
	repo := newAdminRepo(t)
	svc := NewAdminService(repo, "boss")

	admin, err := svc.Create(context.Background(), mainAdmin(), "alice", "pw")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.Delete(context.Background(), mainAdmin(), admin.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(context.Background(), admin.ID); !errors.Is(err, repository.ErrAdminNotFound) {
		t.Error("record still present after delete")
	}
	if err := svc.Delete(context.Background(), mainAdmin(), admin.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: got %v, want ErrNotFound", err)
	}
}

func TestMainAdminNotDeletable(t *testing.T) {
	repo := newAdminRepo(t)
	svc := NewAdminService(repo, "boss")

	// The synthetic root id is refused outright.
	if err := svc.Delete(context.Background(), mainAdmin(), RootAdminID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("deleting root id: got %v, want ErrPermissionDenied", err)
	}

	// A stored record flagged main is refused too.
	stored := &model.AdminAccount{ID: "adm-m", Username: "legacy", Password: "pw", IsMain: true}
	if err := repo.Put(context.Background(), stored); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(context.Background(), mainAdmin(), "adm-m"); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("deleting stored main record: got %v, want ErrPermissionDenied", err)
	}
}

func TestAdminListMainOnly(t *testing.T) {
	repo := newAdminRepo(t)
	svc := NewAdminService(repo, "boss")

	if _, err := svc.Create(context.Background(), mainAdmin(), "alice", "pw"); err != nil {
		t.Fatal(err)
	}
	admins, err := svc.List(context.Background(), mainAdmin())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(admins) != 1 || admins[0].Username != "alice" {
		t.Errorf("unexpected listing: %+v", admins)
	}

	scoped := &model.AdminAccount{ID: "adm-x", Username: "alice"}
	if _, err := svc.List(context.Background(), scoped); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("scoped admin listing: got %v, want ErrPermissionDenied", err)
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newAdminRepo(t)
	auth := NewAuthenticator(repo, "boss", "secret")

	stored := &model.AdminAccount{ID: "adm-1", Username: "alice", Password: "pw"}
	if err := repo.Put(context.Background(), stored); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		user     string
		pass     string
		wantID   string
		wantMain bool
		wantErr  bool
	}{
		{"root pair", "boss", "secret", RootAdminID, true, false},
		{"stored admin", "alice", "pw", "adm-1", false, false},
		{"wrong password", "alice", "nope", "", false, true},
		{"unknown user", "eve", "pw", "", false, true},
		{"root with wrong password", "boss", "nope", "", false, true},
		{"case-sensitive username", "Alice", "pw", "", false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			admin, err := auth.Authenticate(context.Background(), tc.user, tc.pass)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidCredential) {
					t.Errorf("got %v, want ErrInvalidCredential", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("authenticate: %v", err)
			}
			if admin.ID != tc.wantID || admin.IsMain != tc.wantMain {
				t.Errorf("got %+v, want id=%q main=%v", admin, tc.wantID, tc.wantMain)
			}
		})
	}

	// The root secret is never echoed on the synthetic account.
	root, err := auth.Authenticate(context.Background(), "boss", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if root.Password != "" {
		t.Error("root password leaked into the synthetic account")
	}
}

func TestResolve(t *testing.T) {
	repo := newAdminRepo(t)
	auth := NewAuthenticator(repo, "boss", "secret")

	stored := &model.AdminAccount{ID: "adm-1", Username: "alice", Password: "pw"}
	if err := repo.Put(context.Background(), stored); err != nil {
		t.Fatal(err)
	}

	if admin, err := auth.Resolve(context.Background(), RootAdminID); err != nil || !admin.IsMain {
		t.Errorf("root resolve: admin=%+v err=%v", admin, err)
	}
	if admin, err := auth.Resolve(context.Background(), "adm-1"); err != nil || admin.Username != "alice" {
		t.Errorf("stored resolve: admin=%+v err=%v", admin, err)
	}

	// Deleting the record kills the session on the next resolve.
	if err := repo.Delete(context.Background(), "adm-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.Resolve(context.Background(), "adm-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted admin resolve: got %v, want ErrNotFound", err)
	}
}
