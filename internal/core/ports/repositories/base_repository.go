package repositories

import (
	"context"
)

// WorkflowTxFunc is the body of one atomic workflow unit. Returning an error
// discards every write made through tx.
type WorkflowTxFunc func(ctx context.Context, tx WorkflowTx) error

// TransactionManager runs a workflow unit atomically.
type TransactionManager interface {
	// WithinTx runs fn in a transaction and commits when fn returns nil.
	// Any error from fn or from commit rolls the whole unit back.
	WithinTx(ctx context.Context, fn WorkflowTxFunc) error
}
