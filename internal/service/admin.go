package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/citywave/table-reservation/internal/model"
	"github.com/citywave/table-reservation/internal/repository"
)

// AdminService provisions and revokes scoped admin accounts. Every
// operation requires the main admin; scoped admins cannot see or manage
// each other.
type AdminService struct {
	Admins       *repository.AdminRepo
	RootUsername string
}

// NewAdminService constructs an AdminService. The root username is needed
// to keep sub-accounts from shadowing the hardcoded root login.
func NewAdminService(admins *repository.AdminRepo, rootUsername string) *AdminService {
	if admins == nil {
		panic("nil admin repository passed to NewAdminService")
	}
	return &AdminService{Admins: admins, RootUsername: rootUsername}
}

// Create provisions a scoped admin account. Usernames must be unique:
// duplicates (including the root username) are rejected with ErrConflict
// rather than left to whichever record a later login scan hits first.
func (s *AdminService) Create(ctx context.Context, requestor *model.AdminAccount, username, password string) (*model.AdminAccount, error) {
	if !requestor.CanManageAdmins() {
		return nil, fmt.Errorf("%w: only the main admin manages accounts", ErrPermissionDenied)
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrMalformedInput)
	}
	if username == s.RootUsername {
		return nil, fmt.Errorf("%w: username %q is taken", repository.ErrConflict, username)
	}
	if _, err := s.Admins.FindByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username %q is taken", repository.ErrConflict, username)
	} else if !errors.Is(err, repository.ErrAdminNotFound) {
		return nil, err
	}
	admin := &model.AdminAccount{
		ID:       "adm-" + uuid.NewString(),
		Username: username,
		Password: password,
	}
	if err := s.Admins.Put(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Delete revokes a scoped admin account. The main admin is never
// deletable: neither the synthetic root id nor any stored record flagged
// isMain can be removed through this path.
func (s *AdminService) Delete(ctx context.Context, requestor *model.AdminAccount, adminID string) error {
	if !requestor.CanManageAdmins() {
		return fmt.Errorf("%w: only the main admin manages accounts", ErrPermissionDenied)
	}
	if adminID == RootAdminID {
		return fmt.Errorf("%w: the main admin cannot be deleted", ErrPermissionDenied)
	}
	admin, err := s.Admins.Get(ctx, adminID)
	if errors.Is(err, repository.ErrAdminNotFound) {
		return fmt.Errorf("%w: admin %s", ErrNotFound, adminID)
	}
	if err != nil {
		return err
	}
	if admin.IsMain {
		return fmt.Errorf("%w: the main admin cannot be deleted", ErrPermissionDenied)
	}
	return s.Admins.Delete(ctx, adminID)
}

// List returns all stored accounts for the management panel, main admin
// only. Passwords are included in plain text by design so the main admin
// can read them back to sub-admins.
func (s *AdminService) List(ctx context.Context, requestor *model.AdminAccount) ([]*model.AdminAccount, error) {
	if !requestor.CanManageAdmins() {
		return nil, fmt.Errorf("%w: only the main admin manages accounts", ErrPermissionDenied)
	}
	return s.Admins.List(ctx)
}
