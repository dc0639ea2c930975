package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/store"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/models"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/shared/database"
)

func newTestStore(t *testing.T) *store.GormStore {
	t.Helper()

	db, err := database.NewDB("sqlite://"+filepath.Join(t.TempDir(), "repo.db"), database.Options{})
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := store.NewGormStore(db.GORM)
	if err := s.AutoMigrate(); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}
	return s
}

func TestInvoiceRepo_RoundTripPreservesOrderAndFields(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepo(newTestStore(t))

	created := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	want := []models.Invoice{
		{
			ID: "INV-0002", Client: "Globex", Amount: 118, Date: "2026-10-01", DueDate: "2026-10-31",
			Status: models.StatusPending, Currency: "EUR",
			Items:    []models.LineItem{{Description: "Design", Quantity: 2, Price: 50, Amount: 100}},
			Subtotal: 100, TaxRate: 18, TaxAmount: 18, Notes: "net 30",
			Company:   &models.Company{Name: "Vista Ltd", BankIFSC: "HDFC0001"},
			CreatedAt: &created,
		},
		{ID: "INV-0001", Client: "Acme", Amount: 99.99, Date: "2026-09-12", DueDate: "2026-10-12", Status: models.StatusPaid},
	}

	if err := repo.SaveAll(ctx, want); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Load() returned %d invoices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].CreatedAt != nil {
			ts := got[i].CreatedAt.UTC()
			got[i].CreatedAt = &ts
		}
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Errorf("invoice %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestInvoiceRepo_LoadMissingIsEmpty(t *testing.T) {
	repo := NewInvoiceRepo(newTestStore(t))

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Load() = %#v, want empty slice", got)
	}
}

func TestInvoiceRepo_MalformedValueIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if err := s.Put(ctx, store.KeyInvoices, []byte(`{"not":"an array"}`)); err != nil {
		t.Fatal(err)
	}

	got, err := NewInvoiceRepo(s).Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if len(got) != 0 {
		t.Errorf("Load() = %+v, want empty", got)
	}
}

func TestInvoiceRepo_SaveCanonicalizesStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepo(newTestStore(t))

	if err := repo.SaveAll(ctx, []models.Invoice{{ID: "a", Status: "paid"}, {ID: "b", Status: "OVERDUE"}}); err != nil {
		t.Fatal(err)
	}
	got, _ := repo.Load(ctx)
	if got[0].Status != models.StatusPaid || got[1].Status != models.StatusOverdue {
		t.Errorf("statuses = %q, %q", got[0].Status, got[1].Status)
	}
}

func TestInvoiceRepo_UpdateWithoutChangeDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	repo := NewInvoiceRepo(s)

	if err := repo.SaveAll(ctx, []models.Invoice{{ID: "a"}}); err != nil {
		t.Fatal(err)
	}
	_, changed, err := repo.Update(ctx, func(cur []models.Invoice) ([]models.Invoice, bool, error) {
		return cur, false, nil
	})
	if err != nil || changed {
		t.Fatalf("Update() = %v, %v", changed, err)
	}

	rev, _ := s.Revision(ctx, store.KeyInvoices)
	if rev != 1 {
		t.Errorf("Revision = %d, want 1", rev)
	}
}

func TestInvoiceRepo_UpdateErrorLeavesStore(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepo(newTestStore(t))
	boom := errors.New("boom")

	_, _, err := repo.Update(ctx, func(cur []models.Invoice) ([]models.Invoice, bool, error) {
		return append(cur, models.Invoice{ID: "x"}), true, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update() error = %v, want boom", err)
	}
	if got, _ := repo.Load(ctx); len(got) != 0 {
		t.Errorf("Load() = %+v, want empty", got)
	}
}

func TestClientRepo_ConcurrentUpdatesAreNotLost(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepo(newTestStore(t))

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := repo.Update(ctx, func(cur []models.Client) ([]models.Client, bool, error) {
				return append(cur, models.Client{Name: "client"}), true, nil
			})
			if err != nil {
				t.Errorf("Update() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != n {
		t.Errorf("len = %d, want %d", len(got), n)
	}
}

func TestProfileRepo_GetDefaultsAndSave(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepo(newTestStore(t))

	p, err := repo.Get(ctx)
	if err != nil || p != (models.Profile{}) {
		t.Fatalf("Get() = %+v, %v, want zero profile", p, err)
	}

	want := models.Profile{BusinessName: "Vista", Email: "owner@vista.test", Currency: "INR", BankIFSC: "HDFC0001"}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatal(err)
	}
	if got, _ := repo.Get(ctx); got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestInvoiceRepo_RewriteKeepsUndeclaredKeys(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	repo := NewInvoiceRepo(s)

	legacy := `[
		{"id":"INV-77","client":"Acme","date":"2026-09-01","dueDate":"2026-10-01","status":"Pending",
		 "subtotal":500,"total":500,"invoiceNumber":"INV-0042","companyName":"Your Company","companyLogo":"data:image/png;base64,AAAA"},
		{"id":"INV-2","client":"Globex","amount":"$50.00","date":"2026-09-03","dueDate":"2026-10-03","status":"Pending"}
	]`
	if err := s.Put(ctx, store.KeyInvoices, []byte(legacy)); err != nil {
		t.Fatal(err)
	}

	_, changed, err := repo.Update(ctx, func(current []models.Invoice) ([]models.Invoice, bool, error) {
		next, changed := models.MarkPaid(current, "INV-2", time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
		return next, changed, nil
	})
	if err != nil || !changed {
		t.Fatalf("Update() = %v, %v", changed, err)
	}

	raw, err := s.Get(ctx, store.KeyInvoices)
	if err != nil {
		t.Fatal(err)
	}
	var stored []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatal(err)
	}

	want := map[string]string{
		"total":         `500`,
		"invoiceNumber": `"INV-0042"`,
		"companyName":   `"Your Company"`,
		"companyLogo":   `"data:image/png;base64,AAAA"`,
	}
	for key, value := range want {
		if got := string(stored[0][key]); got != value {
			t.Errorf("INV-77 %s = %s, want %s", key, got, value)
		}
	}
	if _, ok := stored[1]["total"]; ok {
		t.Error("undeclared key leaked into another record")
	}
	if string(stored[1]["status"]) != `"Paid"` {
		t.Errorf("INV-2 status = %s, want \"Paid\"", stored[1]["status"])
	}

	// the typed view ignores the extra keys
	got, _ := repo.Load(ctx)
	if got[0].Extra == nil || got[0].ID != "INV-77" || got[1].Extra != nil {
		t.Errorf("Load() = %+v", got)
	}
}

func TestClientRepo_RewriteKeepsUndeclaredKeys(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	repo := NewClientRepo(s)

	legacy := `[{"id":1718000000000,"name":"Acme","avatar":"A","tags":["vip"]},{"id":"b1","name":"Globex"}]`
	if err := s.Put(ctx, store.KeyClients, []byte(legacy)); err != nil {
		t.Fatal(err)
	}

	_, _, err := repo.Update(ctx, func(current []models.Client) ([]models.Client, bool, error) {
		return current[:1], true, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	raw, _ := s.Get(ctx, store.KeyClients)
	var stored []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || string(stored[0]["avatar"]) != `"A"` || string(stored[0]["tags"]) != `["vip"]` {
		t.Errorf("stored = %s", raw)
	}
}
