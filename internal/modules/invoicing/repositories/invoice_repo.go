package repositories

import (
	"context"

	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/store"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/models"
)

type InvoiceRepo interface {
	Load(ctx context.Context) ([]models.Invoice, error)
	SaveAll(ctx context.Context, invoices []models.Invoice) error
	Update(ctx context.Context, fn func([]models.Invoice) ([]models.Invoice, bool, error)) ([]models.Invoice, bool, error)
}

type invoiceRepo struct {
	*collection[models.Invoice]
}

func NewInvoiceRepo(s store.Store) InvoiceRepo {
	return &invoiceRepo{collection: newCollection[models.Invoice](s, store.KeyInvoices)}
}

// SaveAll writes statuses in canonical form
func (r *invoiceRepo) SaveAll(ctx context.Context, invoices []models.Invoice) error {
	return r.collection.SaveAll(ctx, canonicalize(invoices))
}

func (r *invoiceRepo) Update(ctx context.Context, fn func([]models.Invoice) ([]models.Invoice, bool, error)) ([]models.Invoice, bool, error) {
	return r.collection.Update(ctx, func(current []models.Invoice) ([]models.Invoice, bool, error) {
		next, changed, err := fn(current)
		if err != nil || !changed {
			return next, changed, err
		}
		return canonicalize(next), true, nil
	})
}

func canonicalize(invoices []models.Invoice) []models.Invoice {
	out := make([]models.Invoice, len(invoices))
	for i, inv := range invoices {
		if status, ok := models.CanonicalStatus(inv.Status); ok {
			inv.Status = status
		}
		out[i] = inv
	}
	return out
}
