package ledger

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Header is the part of a finalized block header the indexer walks on.
type Header struct {
	Hash   common.Hash
	Height uint64
	Parent common.Hash
}

// Process identifies the process definition a transaction ran.
type Process struct {
	ID      string
	Version uint32
}

// ProcessRanEvent is emitted once per successful process transaction in a block.
type ProcessRanEvent struct {
	CallHash  common.Hash
	BlockHash common.Hash
	BlockTime time.Time
	Sender    string
	Process   Process
	Inputs    []uint64
	Outputs   []uint64
}

// Token is a ledger token as of a given block, with decoded role and metadata keys.
// File metadata values are base58 IPFS content ids.
type Token struct {
	ID       uint64
	Roles    map[string]string
	Metadata map[string]string
	// Files lists the metadata keys holding file values, sorted.
	Files []string
}

// Client defines the ledger operations the indexer depends on.
// This abstraction allows for easier testing and alternative node implementations.
type Client interface {
	// Close closes the ledger connection.
	Close()

	// GetLastFinalisedBlockHash returns the hash of the current finalized head.
	GetLastFinalisedBlockHash(ctx context.Context) (common.Hash, error)

	// GetHeader returns the header of the block with the given hash.
	GetHeader(ctx context.Context, hash common.Hash) (*Header, error)

	// WatchFinalisedBlocks calls fn with every new finalized head until ctx is done.
	WatchFinalisedBlocks(ctx context.Context, fn func(hash common.Hash)) error

	// GetProcessRanEvents returns the process-ran events of a block in emission order.
	GetProcessRanEvents(ctx context.Context, blockHash common.Hash) ([]ProcessRanEvent, error)

	// GetToken returns the token with the given id as of blockHash.
	GetToken(ctx context.Context, id uint64, blockHash common.Hash) (*Token, error)
}
