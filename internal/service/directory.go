// Package service implements the operations the presentation layer calls:
// Directory (accounts), Catalog (menu), OrderLedger (orders) and Billing.
// Every operation returns either a success value or an error wrapping one
// of the records sentinel errors.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rkhatiwada/restro/internal/models"
	"github.com/rkhatiwada/restro/internal/records"
)

// Directory manages login accounts.
type Directory struct {
	store *records.Store
}

// NewDirectory creates a Directory over the given record store.
func NewDirectory(store *records.Store) *Directory {
	return &Directory{store: store}
}

// Authenticate returns the user only if the username exists and the
// password matches byte for byte. Credentials are compared in plain form;
// this inherited behavior is deliberate and must not be hardened here.
func (d *Directory) Authenticate(username, password string) (*models.User, error) {
	user, ok := d.store.User(username)
	if !ok || user.Password != password {
		slog.Warn("Login failed", "username", username)
		return nil, records.ErrInvalidCredentials
	}
	slog.Info("Login succeeded", "username", username, "role", user.Role)
	return user, nil
}

// CreateStaff provisions a new staff account.
func (d *Directory) CreateStaff(ctx context.Context, username, password, displayName string) (*models.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	displayName = strings.TrimSpace(displayName)
	if username == "" || password == "" || displayName == "" {
		return nil, fmt.Errorf("%w: all fields are required", records.ErrValidation)
	}

	user := &models.User{
		Username:    username,
		Password:    password,
		DisplayName: displayName,
		Role:        models.RoleStaff,
	}
	if err := d.store.AddUser(ctx, user); err != nil {
		return nil, err
	}
	slog.Info("Staff account created", "username", username, "user_id", user.ID)
	return user, nil
}

// EditUser updates an account's display name and password in place.
func (d *Directory) EditUser(ctx context.Context, username, newDisplayName, newPassword string) error {
	newDisplayName = strings.TrimSpace(newDisplayName)
	newPassword = strings.TrimSpace(newPassword)
	if newDisplayName == "" || newPassword == "" {
		return fmt.Errorf("%w: display name and password are required", records.ErrValidation)
	}

	user, ok := d.store.User(username)
	if !ok {
		return fmt.Errorf("%w: user %q", records.ErrNotFound, username)
	}
	user.DisplayName = newDisplayName
	user.Password = newPassword
	if err := d.store.PersistUsers(ctx); err != nil {
		return err
	}
	slog.Info("User updated", "username", username)
	return nil
}

// DeleteUser removes an account. The reserved administrator is protected.
// Orders that reference the username by value are untouched.
func (d *Directory) DeleteUser(ctx context.Context, username string) error {
	if username == records.DefaultAdminUsername {
		return records.ErrProtectedAccount
	}
	if err := d.store.RemoveUser(ctx, username); err != nil {
		return err
	}
	slog.Info("User deleted", "username", username)
	return nil
}

// Users returns all accounts sorted by username.
func (d *Directory) Users() []*models.User {
	return d.store.Users()
}

// StaffCount returns the number of staff accounts.
func (d *Directory) StaffCount() int {
	return d.store.StaffCount()
}
