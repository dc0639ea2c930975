package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/vedvijaywargiya23/InvoiceVista/internal/shared/database"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()

	db, err := database.NewDB("sqlite://"+filepath.Join(t.TempDir(), "store.db"), database.Options{})
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := NewGormStore(db.GORM)
	if err := s.AutoMigrate(); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}
	return s
}

func TestGormStore_GetMissingKey(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), KeyInvoices)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestGormStore_PutReplacesWholeValue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	writes := []string{
		`[{"id":"INV-0001"}]`,
		`[{"id":"INV-0001"},{"id":"INV-0002"}]`,
		`[]`,
	}
	for _, w := range writes {
		if err := s.Put(ctx, KeyInvoices, []byte(w)); err != nil {
			t.Fatalf("Put(%s) error = %v", w, err)
		}
		got, err := s.Get(ctx, KeyInvoices)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(got) != w {
			t.Errorf("Get() = %s, want %s", got, w)
		}
	}

	rev, err := s.Revision(ctx, KeyInvoices)
	if err != nil {
		t.Fatalf("Revision() error = %v", err)
	}
	if rev != int64(len(writes)) {
		t.Errorf("Revision() = %d, want %d", rev, len(writes))
	}
}

func TestGormStore_KeysAreIndependent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, KeyInvoices, []byte(`[1]`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, KeyClients, []byte(`[2]`)); err != nil {
		t.Fatal(err)
	}

	inv, _ := s.Get(ctx, KeyInvoices)
	cl, _ := s.Get(ctx, KeyClients)
	if string(inv) != `[1]` || string(cl) != `[2]` {
		t.Errorf("Get() = %s, %s, want [1], [2]", inv, cl)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := Open(ctx, OpenOptions{
		DatabaseURL: "sqlite://" + filepath.Join(t.TempDir(), "open.db"),
		AutoMigrate: true,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer closeFn()

	if s.Name() != "sql:sqlite" {
		t.Errorf("Name() = %s, want sql:sqlite", s.Name())
	}
	if err := s.Put(ctx, KeyInvoices, []byte(`[]`)); err != nil {
		t.Errorf("Put() after auto-migrate error = %v", err)
	}

	if _, _, err := Open(ctx, OpenOptions{Driver: "etcd"}); err == nil {
		t.Error("Open() with unknown driver error = nil")
	}
}
