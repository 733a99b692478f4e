package actions

import (
	"context"

	"github.com/ledgerline/finance-server/internal/storage"
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
