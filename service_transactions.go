package core

import (
	"context"
	"fmt"
	"time"

	"github.com/fernandezvara/dbkit"
)

// txContextKey carries the active transaction through the context so that
// service calls made inside a Transaction closure run on it. The Service
// itself is never mutated; a Service shared across goroutines stays safe
// while one of them is mid-transaction.
type txContextKey struct{}

func withTx(ctx context.Context, tx dbkit.IDB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

func txFromContext(ctx context.Context) (dbkit.IDB, bool) {
	tx, ok := ctx.Value(txContextKey{}).(dbkit.IDB)
	return tx, ok
}

// handle resolves the database handle for one call: the transaction carried
// in the context when there is one, the root handle otherwise.
func (s *Service) handle(ctx context.Context) dbkit.IDB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return s.db
}

// Transaction executes a function within a database transaction with
// automatic commit/rollback. If the function returns an error the
// transaction is rolled back, otherwise it is committed. The transaction is
// carried in the context handed to fn; service calls made with that context
// run inside it.
//
// Example:
//
//	err := service.Transaction(ctx, func(ctx context.Context) error {
//	    if err := service.Assign(ctx, owner, RoleOwner, ScopeCompany, companyID); err != nil {
//	        return err // rollback
//	    }
//	    return service.Assign(ctx, worker, RoleMember, ScopeCompany, companyID)
//	})
func (s *Service) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	start := time.Now()
	var err error

	// An active transaction in the context means we are nested; use a
	// savepoint instead of opening a second transaction.
	switch db := s.handle(ctx).(type) {
	case *dbkit.Tx:
		err = db.Transaction(ctx, func(tx *dbkit.Tx) error {
			return fn(withTx(ctx, tx))
		})
	case *dbkit.DBKit:
		err = db.Transaction(ctx, func(tx *dbkit.Tx) error {
			return fn(withTx(ctx, tx))
		})
	default:
		err = fmt.Errorf("transaction support requires a dbkit.DBKit or dbkit.Tx instance")
	}

	duration := time.Since(start)
	s.txMonitor.recordTransaction(duration, err == nil)

	return err
}

// TransactionWithOptions executes a function within a database transaction
// with custom options. Supports read-only transactions and isolation levels.
//
// Example:
//
//	err := service.TransactionWithOptions(ctx, dbkit.SerializableTxOptions(), func(ctx context.Context) error {
//	    return service.Assign(ctx, userID, RoleBank, ScopeGlobal, "*")
//	})
func (s *Service) TransactionWithOptions(ctx context.Context, opts dbkit.TxOptions, fn func(ctx context.Context) error) error {
	switch db := s.handle(ctx).(type) {
	case *dbkit.Tx:
		// Nested transactions use savepoints; options do not apply there.
		return db.Transaction(ctx, func(tx *dbkit.Tx) error {
			return fn(withTx(ctx, tx))
		})
	case *dbkit.DBKit:
		return db.TransactionWithOptions(ctx, opts, func(tx *dbkit.Tx) error {
			return fn(withTx(ctx, tx))
		})
	default:
		return fmt.Errorf("transaction support requires a dbkit.DBKit or dbkit.Tx instance")
	}
}

// ReadOnlyTransaction executes a function within a read-only database
// transaction. Useful for multi-query reads that want a consistent snapshot.
func (s *Service) ReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.TransactionWithOptions(ctx, dbkit.ReadOnlyTxOptions(), fn)
}
