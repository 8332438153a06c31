package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/citywave/table-reservation/internal/model"
	"github.com/citywave/table-reservation/internal/store"
)

// adminsCollection names the document collection holding admin accounts.
const adminsCollection = "admins"

// AdminRepo provides data access to stored admin accounts. The hardcoded
// root identity is not stored here; it lives in configuration and is
// checked by the authenticator before this repository is consulted.
type AdminRepo struct {
	s store.Store
}

// NewAdminRepo returns a new AdminRepo bound to the provided store.
func NewAdminRepo(s store.Store) *AdminRepo { return &AdminRepo{s: s} }

// List returns all stored admin accounts ordered by document id.
func (r *AdminRepo) List(ctx context.Context) ([]*model.AdminAccount, error) {
	docs, err := r.s.List(ctx, adminsCollection)
	if err != nil {
		return nil, err
	}
	admins := make([]*model.AdminAccount, 0, len(docs))
	for _, d := range docs {
		var a model.AdminAccount
		if err := json.Unmarshal(d.Data, &a); err != nil {
			return nil, fmt.Errorf("decode admin %s: %w", d.ID, err)
		}
		admins = append(admins, &a)
	}
	return admins, nil
}

// Get loads one admin account by id. Returns ErrAdminNotFound when absent.
func (r *AdminRepo) Get(ctx context.Context, id string) (*model.AdminAccount, error) {
	doc, err := r.s.Get(ctx, adminsCollection, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	var a model.AdminAccount
	if err := json.Unmarshal(doc.Data, &a); err != nil {
		return nil, fmt.Errorf("decode admin %s: %w", id, err)
	}
	return &a, nil
}

// Put upserts the admin document.
func (r *AdminRepo) Put(ctx context.Context, a *model.AdminAccount) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode admin %s: %w", a.ID, err)
	}
	return r.s.Upsert(ctx, adminsCollection, a.ID, data)
}

// Delete removes the admin document.
func (r *AdminRepo) Delete(ctx context.Context, id string) error {
	return r.s.Remove(ctx, adminsCollection, id)
}

// FindByCredentials scans stored accounts for an exact, case-sensitive
// username and plain-text password match. The first match wins. Returns
// ErrAdminNotFound when nothing matches; callers decide how to present
// that (the authenticator deliberately collapses it into a generic
// credential failure).
func (r *AdminRepo) FindByCredentials(ctx context.Context, username, password string) (*model.AdminAccount, error) {
	admins, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range admins {
		if a.Username == username && a.Password == password {
			return a, nil
		}
	}
	return nil, ErrAdminNotFound
}

// FindByUsername returns the first stored account with the given username,
// or ErrAdminNotFound. Used to reject duplicate usernames at creation time.
func (r *AdminRepo) FindByUsername(ctx context.Context, username string) (*model.AdminAccount, error) {
	admins, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, ErrAdminNotFound
}
