package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"drinkstand/internal/adapters/outbound/csvfile"
	"drinkstand/internal/adapters/outbound/memory"
	"drinkstand/internal/core/domain"
)

func TestMenuServiceInitializesDefaults(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "default_drinks.csv")
	svc := NewMenuService(csvfile.NewMenuRepository(path))

	m, err := svc.Menu(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m, domain.DefaultDrinks()) {
		t.Errorf("Menu() = %v", m)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("defaults not persisted: %v", err)
	}
}

func TestMenuServiceAddDrink(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewMenuRepository()
	svc := NewMenuService(repo)

	name, err := svc.AddDrink(ctx, "  Iced Tea ")
	if err != nil {
		t.Fatal(err)
	}
	if name != "Iced Tea" {
		t.Errorf("AddDrink returned %q", name)
	}

	stored, err := repo.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 10 || stored[9] != "Iced Tea" {
		t.Errorf("stored menu = %v", stored)
	}
}

func TestMenuServiceRejectsBlank(t *testing.T) {
	svc := NewMenuService(memory.NewMenuRepository())
	if _, err := svc.AddDrink(context.Background(), " \t"); !errors.Is(err, domain.ErrEmptyInput) {
		t.Errorf("err = %v, want ErrEmptyInput", err)
	}
}

func TestMenuServiceDuplicateLeavesFileUntouched(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "default_drinks.csv")
	svc := NewMenuService(csvfile.NewMenuRepository(path))

	if _, err := svc.Menu(ctx); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AddDrink(ctx, "Pepsi"); !errors.Is(err, domain.ErrDuplicateDrink) {
		t.Fatalf("err = %v, want ErrDuplicateDrink", err)
	}

	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Errorf("menu file changed:\nbefore %q\nafter  %q", before, after)
	}
}

func TestMenuServiceSaveFailureKeepsMenu(t *testing.T) {
	ctx := context.Background()
	repo := &failingMenu{menu: domain.Menu{"Pepsi"}}
	svc := NewMenuService(repo)

	repo.saveErr = errDiskFull
	_, err := svc.AddDrink(ctx, "Fanta")
	if !errors.Is(err, domain.ErrIO) || !errors.Is(err, errDiskFull) {
		t.Fatalf("err = %v, want ErrIO wrapping disk full", err)
	}

	m, err := svc.Menu(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m, domain.Menu{"Pepsi"}) {
		t.Errorf("Menu() = %v after failed add", m)
	}
}

func TestMenuServiceRestoresCorruptMenu(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default_drinks.csv")
	if err := os.WriteFile(path, []byte("a,b\n1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := NewMenuService(csvfile.NewMenuRepository(path)).Menu(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != len(domain.DefaultDrinks()) {
		t.Errorf("Menu() = %v", m)
	}
}
