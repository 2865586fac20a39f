package store

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Reader exposes the queries the indexer needs outside of a write transaction.
type Reader interface {
	// GetLastProcessedBlock returns the highest processed block, or nil if none was processed yet.
	GetLastProcessedBlock(ctx context.Context) (*ProcessedBlock, error)

	// FindTransactionByHash returns the local transaction with the given call hash, or nil.
	FindTransactionByHash(ctx context.Context, hash common.Hash) (*Transaction, error)

	// FindCertificateIDByLatestTokenID returns the id of the certificate currently
	// represented on chain by tokenID.
	FindCertificateIDByLatestTokenID(ctx context.Context, tokenID uint64) (string, bool, error)

	// FindAttachmentIDByIPFSHash returns the id of the oldest attachment stored under the
	// given IPFS content id.
	FindAttachmentIDByIPFSHash(ctx context.Context, ipfsHash string) (string, bool, error)
}

// Writer applies the changes of one block. It is only valid inside WithTransaction.
type Writer interface {
	InsertProcessedBlock(ctx context.Context, block ProcessedBlock) error
	InsertAttachment(ctx context.Context, attachment Attachment) error
	InsertCertificate(ctx context.Context, certificate Certificate) error
	UpdateCertificate(ctx context.Context, id string, patch CertificatePatch) error
	InsertCertificateEvent(ctx context.Context, event CertificateEvent) error
}

// Store is the relational store the indexer mirrors the ledger into.
type Store interface {
	Reader

	// WithTransaction runs fn in a single database transaction. The transaction is
	// committed if fn returns nil and rolled back otherwise.
	WithTransaction(ctx context.Context, fn func(tx Writer) error) error
}
