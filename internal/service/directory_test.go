package service

import (
	"errors"
	"testing"

	"github.com/rkhatiwada/restro/internal/records"
)

func TestAuthenticate(t *testing.T) {
	e := newEnv(t)
	e.addStaff(t, "amy")

	t.Run("valid credentials", func(t *testing.T) {
		user, err := e.directory.Authenticate("amy", "pw")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.Username != "amy" {
			t.Errorf("Wrong user returned: %s", user.Username)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := e.directory.Authenticate("amy", "PW"); !errors.Is(err, records.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		if _, err := e.directory.Authenticate("nobody", "pw"); !errors.Is(err, records.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("default admin can log in", func(t *testing.T) {
		user, err := e.directory.Authenticate("admin", "admin123")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if !user.IsAdmin() {
			t.Error("Expected administrator role")
		}
	})
}

func TestCreateStaff(t *testing.T) {
	t.Run("empty fields rejected", func(t *testing.T) {
		e := newEnv(t)
		for _, args := range [][3]string{
			{"", "pw", "Amy"},
			{"amy", "", "Amy"},
			{"amy", "pw", ""},
			{"  ", "pw", "Amy"},
		} {
			if _, err := e.directory.CreateStaff(e.ctx, args[0], args[1], args[2]); !errors.Is(err, records.ErrValidation) {
				t.Errorf("CreateStaff(%q,%q,%q): expected ErrValidation, got %v", args[0], args[1], args[2], err)
			}
		}
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		e := newEnv(t)
		e.addStaff(t, "amy")
		if _, err := e.directory.CreateStaff(e.ctx, "amy", "pw2", "Other Amy"); !errors.Is(err, records.ErrDuplicateUsername) {
			t.Errorf("Expected ErrDuplicateUsername, got %v", err)
		}
		// The reserved admin username is taken too.
		if _, err := e.directory.CreateStaff(e.ctx, "admin", "pw", "Fake Admin"); !errors.Is(err, records.ErrDuplicateUsername) {
			t.Errorf("Expected ErrDuplicateUsername for admin, got %v", err)
		}
	})
}

func TestEditUser(t *testing.T) {
	e := newEnv(t)
	e.addStaff(t, "amy")

	t.Run("updates in place", func(t *testing.T) {
		if err := e.directory.EditUser(e.ctx, "amy", "Amy Shrestha", "newpw"); err != nil {
			t.Fatalf("EditUser failed: %v", err)
		}
		user, err := e.directory.Authenticate("amy", "newpw")
		if err != nil {
			t.Fatalf("Authenticate with new password failed: %v", err)
		}
		if user.DisplayName != "Amy Shrestha" {
			t.Errorf("Display name not updated: %s", user.DisplayName)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if err := e.directory.EditUser(e.ctx, "nobody", "X", "pw"); !errors.Is(err, records.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("admin is protected in any store state", func(t *testing.T) {
		e := newEnv(t)
		if err := e.directory.DeleteUser(e.ctx, "admin"); !errors.Is(err, records.ErrProtectedAccount) {
			t.Errorf("Expected ErrProtectedAccount, got %v", err)
		}
		e.addStaff(t, "amy")
		if err := e.directory.DeleteUser(e.ctx, "admin"); !errors.Is(err, records.ErrProtectedAccount) {
			t.Errorf("Expected ErrProtectedAccount, got %v", err)
		}
	})

	t.Run("deleting a staff account leaves their orders", func(t *testing.T) {
		e := newEnv(t)
		e.addStaff(t, "amy")
		order := e.newOrder(t)

		if err := e.directory.DeleteUser(e.ctx, "amy"); err != nil {
			t.Fatalf("DeleteUser failed: %v", err)
		}
		got, ok := e.ledger.Order(order.ID)
		if !ok {
			t.Fatal("Order vanished with its placing user")
		}
		if got.PlacedBy != "amy" {
			t.Errorf("Order lost its placedBy reference: %q", got.PlacedBy)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		e := newEnv(t)
		if err := e.directory.DeleteUser(e.ctx, "nobody"); !errors.Is(err, records.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}
