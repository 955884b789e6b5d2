package sheetrepo

import (
	"context"

	"dispatch/internal/core/domain/model/inbox"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// Inbox sheet columns.
const (
	inboxColID         = 0
	inboxColUserID     = 1
	inboxColReceivedAt = 2
	inboxColText       = 3
)

// SheetInboxRepository records incoming messages on the Inbox sheet.
type SheetInboxRepository struct {
	store ports.TabularStore
}

// NewSheetInboxRepository creates an inbox repository over a tabular store.
func NewSheetInboxRepository(store ports.TabularStore) (*SheetInboxRepository, error) {
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	return &SheetInboxRepository{store: store}, nil
}

// Append records one message.
func (r *SheetInboxRepository) Append(ctx context.Context, message inbox.Message) error {
	return r.store.Append(ctx, InboxSheet, []ports.Row{{
		message.ID().String(),
		message.UserID(),
		message.ReceivedAt().Format(timeLayout),
		message.Text(),
	}})
}
