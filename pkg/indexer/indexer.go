package indexer

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Indexer mirrors finalized ledger blocks into the certificate store.
// Implementations process at most one block at a time.
type Indexer interface {
	// Start loads the indexer's progress and returns the last processed block hash,
	// or nil if no block was processed yet.
	Start(ctx context.Context) (*common.Hash, error)

	// ProcessNextBlock commits the next block on the way to the finalized head hint
	// and returns its hash, or nil if the store is already at or past the hint.
	ProcessNextBlock(ctx context.Context, hint common.Hash) (*common.Hash, error)

	// ProcessAllBlocks commits every block up to the finalized head hint and returns
	// the hash of the last committed block, or nil if none was committed.
	ProcessAllBlocks(ctx context.Context, hint common.Hash) (*common.Hash, error)

	// Close stops pending retries and waits for the in-flight block.
	Close() error
}
