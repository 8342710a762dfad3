package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/academyhub/stats/apps/api/pkg/model"
)

// InvoiceRepository reads player invoices.
type InvoiceRepository struct {
	client *firestore.Client
	loc    *time.Location
}

func NewInvoiceRepository(client *firestore.Client, loc *time.Location) *InvoiceRepository {
	return &InvoiceRepository{client: client, loc: loc}
}

// ListInvoices loads every invoice regardless of status.
func (r *InvoiceRepository) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	var out []model.Invoice
	err := eachDocument(ctx, r.client, invoicesCollection, func(id string, data map[string]any) {
		out = append(out, decodeInvoice(id, data, r.loc))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeInvoice(id string, data map[string]any, loc *time.Location) model.Invoice {
	amt, _ := asFloat(data["amount"])
	return model.Invoice{
		ID:        id,
		PlayerID:  asString(data["playerId"]),
		Amount:    amt,
		DueDate:   asTime(data["dueDate"], loc),
		CreatedAt: asTime(data["createdAt"], loc),
		Status:    model.ParseInvoiceStatus(asString(data["status"])),
	}
}
