package testutil

import (
	"context"
	"testing"

	"github.com/trezcool/classroom/core/module"
	"github.com/trezcool/classroom/core/page"
	"github.com/trezcool/classroom/core/user"
	"github.com/trezcool/classroom/storage/database"
	"github.com/trezcool/classroom/storage/kv/memkv"
)

// NewDB returns a DB over a fresh in-memory store, closed when the test ends.
func NewDB(t *testing.T) *database.DB {
	t.Helper()
	db := database.New(memkv.Open(), nil)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	email, pwd, firstname, lastname string,
	userType user.UserType,
	hashPassword ...bool,
) user.User {
	t.Helper()
	usr := user.User{
		Email:     email,
		Firstname: firstname,
		Lastname:  lastname,
		UserType:  userType,
	}
	if err := usr.SetPassword(pwd, len(hashPassword) > 0 && hashPassword[0]); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// CreateModules creates one module per title with orders 0..n-1.
func CreateModules(t *testing.T, repo module.Repository, status module.Status, titles ...string) []module.Module {
	t.Helper()
	mods := make([]module.Module, 0, len(titles))
	for i, title := range titles {
		m, err := repo.CreateModule(context.Background(), module.Module{
			Title:  title,
			Status: status,
			Pages:  []string{},
			Order:  i,
		})
		if err != nil {
			t.Fatalf("CreateModules() failed: %v", err)
		}
		mods = append(mods, m)
	}
	return mods
}

func CreatePage(t *testing.T, repo page.Repository, title, pageType string) page.Page {
	t.Helper()
	p, err := repo.CreatePage(context.Background(), page.Page{Title: title, PageType: pageType})
	if err != nil {
		t.Fatalf("CreatePage() failed: %v", err)
	}
	return p
}
