package repositories

import (
	"context"

	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/store"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/models"
)

type ClientRepo interface {
	Load(ctx context.Context) ([]models.Client, error)
	SaveAll(ctx context.Context, clients []models.Client) error
	Update(ctx context.Context, fn func([]models.Client) ([]models.Client, bool, error)) ([]models.Client, bool, error)
}

func NewClientRepo(s store.Store) ClientRepo {
	return newCollection[models.Client](s, store.KeyClients)
}
