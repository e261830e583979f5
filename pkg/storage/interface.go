// Package storage defines the storage interfaces the contact service relies on.
// It abstracts persistence and transaction management so that different
// backends (e.g. PostgreSQL) can provide concrete implementations.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import (
	"context"
	"errors"
)

var (
	// ErrAlreadyInTx is returned by Begin and WithTx on a handle that is
	// already bound to a transaction. Submit stores a message and queues its
	// notify job in one transaction, so nesting is a programming error.
	ErrAlreadyInTx = errors.New("storage: transaction already open")
	// ErrNotInTx is returned by Commit and Rollback on a handle without an
	// open transaction.
	ErrNotInTx = errors.New("storage: no open transaction")
)

// AllStorage is the composite of every domain-specific capability.
type AllStorage interface {
	ContactStorage
	JobStorage
}

// TxStorage is a storage handle bound to a database transaction. It becomes
// unusable after Commit or Rollback.
type TxStorage interface {
	AllStorage

	// Commit finalizes the transaction, persisting all changes.
	Commit() error
	// Rollback aborts the transaction, discarding all uncommitted changes.
	Rollback() error
}

// Storage is a non-transactional storage handle able to start transactions.
type Storage interface {
	AllStorage

	// Close releases the underlying connection pool.
	Close() error

	// Begin starts a new transaction.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx begins a transaction, invokes cb with it, and commits when cb
	// returns nil or rolls back otherwise.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}
