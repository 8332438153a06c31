package service

import (
	"context"
	"errors"

	"github.com/citywave/table-reservation/internal/model"
	"github.com/citywave/table-reservation/internal/repository"
)

// RootAdminID is the synthetic id of the hardcoded main admin. It never
// corresponds to a stored document.
const RootAdminID = "root"

// Authenticator validates admin credentials. Two credential sources are
// checked in order: the hardcoded root pair from configuration, then a
// linear scan of stored accounts for an exact username+password match.
// There is no lockout and no rate limiting; every mismatch fails open to
// "not authenticated".
type Authenticator struct {
	Admins       *repository.AdminRepo
	RootUsername string
	RootPassword string
}

// NewAuthenticator constructs an Authenticator. The root credentials come
// from deployment configuration and are known only to the operator.
func NewAuthenticator(admins *repository.AdminRepo, rootUser, rootPass string) *Authenticator {
	if admins == nil {
		panic("nil admin repository passed to NewAuthenticator")
	}
	return &Authenticator{Admins: admins, RootUsername: rootUser, RootPassword: rootPass}
}

// Authenticate returns the matching admin identity or ErrInvalidCredential.
// A root match produces a synthetic main-admin account that is not backed
// by any stored record; its password field is left empty so the secret is
// never echoed back to a client.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*model.AdminAccount, error) {
	if a.RootUsername != "" && username == a.RootUsername && password == a.RootPassword {
		return &model.AdminAccount{ID: RootAdminID, Username: a.RootUsername, IsMain: true}, nil
	}
	admin, err := a.Admins.FindByCredentials(ctx, username, password)
	if errors.Is(err, repository.ErrAdminNotFound) {
		return nil, ErrInvalidCredential
	}
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// Resolve maps a session's account id back to a live identity: the
// synthetic root for RootAdminID, otherwise the stored record. A deleted
// sub-admin resolves to ErrNotFound, which ends their session.
func (a *Authenticator) Resolve(ctx context.Context, id string) (*model.AdminAccount, error) {
	if id == RootAdminID {
		return &model.AdminAccount{ID: RootAdminID, Username: a.RootUsername, IsMain: true}, nil
	}
	admin, err := a.Admins.Get(ctx, id)
	if errors.Is(err, repository.ErrAdminNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return admin, nil
}
