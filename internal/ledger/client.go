package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	internalcommon "github.com/goran-ethernal/CertIndexor/internal/common"
	"github.com/goran-ethernal/CertIndexor/internal/logger"
	"github.com/goran-ethernal/CertIndexor/pkg/config"
	pkgledger "github.com/goran-ethernal/CertIndexor/pkg/ledger"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mr-tron/base58"
	"go.uber.org/ratelimit"
)

// Compile-time check to ensure Client implements pkgledger.Client interface.
var _ pkgledger.Client = (*Client)(nil)

const (
	methodFinalizedHead    = "chain_getFinalizedHead"
	methodHeader           = "chain_getHeader"
	methodProcessRanEvents = "utxoNFT_processRanEvents"
	methodTokenByID        = "utxoNFT_tokenById"

	defaultPollInterval = 6 * time.Second
)

// Client talks JSON-RPC to a ledger node.
// It implements the pkgledger.Client interface.
type Client struct {
	rpc          *rpc.Client
	headers      *lru.Cache[common.Hash, pkgledger.Header]
	limiter      ratelimit.Limiter
	retry        *config.RetryConfig
	pollInterval time.Duration
	log          *logger.Logger
}

// NewClient creates a new ledger client connected to cfg.RPCURL.
func NewClient(ctx context.Context, cfg *config.LedgerConfig, log *logger.Logger) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial ledger node %s: %w", cfg.RPCURL, err)
	}

	client, err := NewClientWithRPC(rpcClient, cfg, log)
	if err != nil {
		rpcClient.Close()
		return nil, err
	}

	return client, nil
}

// NewClientWithRPC creates a ledger client on top of an existing RPC connection.
func NewClientWithRPC(rpcClient *rpc.Client, cfg *config.LedgerConfig, log *logger.Logger) (*Client, error) {
	cacheSize := cfg.HeaderCacheSize
	if cacheSize <= 0 {
		cacheSize = 1
	}

	headers, err := lru.New[common.Hash, pkgledger.Header](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create header cache: %w", err)
	}

	limiter := ratelimit.NewUnlimited()
	if cfg.RequestsPerSecond > 0 {
		limiter = ratelimit.New(cfg.RequestsPerSecond)
	}

	pollInterval := cfg.PollInterval.Duration
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	return &Client{
		rpc:          rpcClient,
		headers:      headers,
		limiter:      limiter,
		retry:        cfg.Retry,
		pollInterval: pollInterval,
		log:          log,
	}, nil
}

// Close closes the RPC client connection.
func (c *Client) Close() {
	c.rpc.Close()
}

// GetLastFinalisedBlockHash returns the hash of the current finalized head.
func (c *Client) GetLastFinalisedBlockHash(ctx context.Context) (common.Hash, error) {
	var hash common.Hash
	if err := c.call(ctx, &hash, methodFinalizedHead); err != nil {
		return common.Hash{}, err
	}

	return hash, nil
}

// GetHeader returns the header of the block with the given hash.
// Finalized headers never change, so they are served from cache once fetched.
func (c *Client) GetHeader(ctx context.Context, hash common.Hash) (*pkgledger.Header, error) {
	if header, ok := c.headers.Get(hash); ok {
		return &header, nil
	}

	var raw *rpcHeader
	if err := c.call(ctx, &raw, methodHeader, hash); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, &HeaderNotFoundError{Hash: hash}
	}

	height, err := internalcommon.ParseUint64orHex(&raw.Number)
	if err != nil {
		return nil, fmt.Errorf("invalid height %q in header %s: %w", raw.Number, hash.Hex(), err)
	}

	header := pkgledger.Header{
		Hash:   hash,
		Height: height,
		Parent: raw.ParentHash,
	}
	c.headers.Add(hash, header)

	return &header, nil
}

// WatchFinalisedBlocks polls the finalized head and calls fn whenever it changes.
// It returns when ctx is done.
func (c *Client) WatchFinalisedBlocks(ctx context.Context, fn func(hash common.Hash)) error {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	var last common.Hash
	for {
		hash, err := c.GetLastFinalisedBlockHash(ctx)
		switch {
		case err != nil && ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			c.log.Warnw("failed to poll finalized head", "error", err)
		case hash != last:
			last = hash
			fn(hash)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// GetProcessRanEvents returns the process-ran events of a block in emission order.
func (c *Client) GetProcessRanEvents(ctx context.Context, blockHash common.Hash) ([]pkgledger.ProcessRanEvent, error) {
	var raw []rpcProcessRanEvent
	if err := c.call(ctx, &raw, methodProcessRanEvents, blockHash); err != nil {
		return nil, err
	}

	events := make([]pkgledger.ProcessRanEvent, 0, len(raw))
	for _, ev := range raw {
		events = append(events, pkgledger.ProcessRanEvent{
			CallHash:  ev.CallHash,
			BlockHash: blockHash,
			BlockTime: time.UnixMilli(ev.BlockTime).UTC(),
			Sender:    ev.Sender,
			Process: pkgledger.Process{
				ID:      ev.Process.ID,
				Version: ev.Process.Version,
			},
			Inputs:  ev.Inputs,
			Outputs: ev.Outputs,
		})
	}

	return events, nil
}

// GetToken returns the token with the given id as of blockHash.
func (c *Client) GetToken(ctx context.Context, id uint64, blockHash common.Hash) (*pkgledger.Token, error) {
	var raw *rpcToken
	if err := c.call(ctx, &raw, methodTokenByID, id, blockHash); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, &TokenNotFoundError{ID: id, BlockHash: blockHash}
	}

	return raw.decode()
}

// call executes a single RPC method with rate limiting, retries and metrics.
func (c *Client) call(ctx context.Context, result any, method string, args ...any) error {
	err := retryWithBackoff(ctx, c.retry, method, func() error {
		c.limiter.Take()

		RPCMethodInc(method)
		start := time.Now()
		err := c.rpc.CallContext(ctx, result, method, args...)
		RPCMethodDuration(method, time.Since(start))

		if err != nil {
			RPCMethodError(method, errorType(err))
		}

		return err
	})
	if err != nil {
		if IsMethodNotFoundError(err) {
			return fmt.Errorf("ledger node does not support %s: %w", method, err)
		}
		return fmt.Errorf("%s failed: %w", method, err)
	}

	return nil
}

type rpcHeader struct {
	ParentHash common.Hash `json:"parentHash"`
	Number     string      `json:"number"`
}

type rpcProcess struct {
	ID      string `json:"id"`
	Version uint32 `json:"version"`
}

type rpcProcessRanEvent struct {
	CallHash  common.Hash `json:"callHash"`
	BlockTime int64       `json:"blockTime"`
	Sender    string      `json:"sender"`
	Process   rpcProcess  `json:"process"`
	Inputs    []uint64    `json:"inputs"`
	Outputs   []uint64    `json:"outputs"`
}

// rpcMetadataValue is a tagged metadata entry. Exactly one field is set, or none for an
// explicit None value.
type rpcMetadataValue struct {
	Literal *string `json:"literal,omitempty"`
	File    *string `json:"file,omitempty"`
	TokenID *uint64 `json:"tokenId,omitempty"`
}

// rpcToken carries hex encoded role and metadata keys.
type rpcToken struct {
	ID       uint64                      `json:"id"`
	Roles    map[string]string           `json:"roles"`
	Metadata map[string]rpcMetadataValue `json:"metadata"`
}

var errEmptyHex = errors.New("empty hex string")

func (t *rpcToken) decode() (*pkgledger.Token, error) {
	token := &pkgledger.Token{
		ID:       t.ID,
		Roles:    make(map[string]string, len(t.Roles)),
		Metadata: make(map[string]string, len(t.Metadata)),
	}

	for keyHex, account := range t.Roles {
		key, err := decodeHexText(keyHex)
		if err != nil {
			return nil, fmt.Errorf("token %d: invalid role key %q: %w", t.ID, keyHex, err)
		}
		token.Roles[key] = account
	}

	for keyHex, entry := range t.Metadata {
		key, err := decodeHexText(keyHex)
		if err != nil {
			return nil, fmt.Errorf("token %d: invalid metadata key %q: %w", t.ID, keyHex, err)
		}

		switch {
		case entry.Literal != nil:
			value, err := decodeHexText(*entry.Literal)
			if err != nil && !errors.Is(err, errEmptyHex) {
				return nil, fmt.Errorf("token %d: invalid literal for %q: %w", t.ID, key, err)
			}
			token.Metadata[key] = value
		case entry.File != nil:
			cid, err := encodeFileHash(*entry.File)
			if err != nil {
				return nil, fmt.Errorf("token %d: invalid file hash for %q: %w", t.ID, key, err)
			}
			token.Metadata[key] = cid
			token.Files = append(token.Files, key)
		case entry.TokenID != nil:
			token.Metadata[key] = strconv.FormatUint(*entry.TokenID, 10)
		default:
			token.Metadata[key] = ""
		}
	}

	slices.Sort(token.Files)

	return token, nil
}

// encodeFileHash converts a 0x prefixed multihash into the base58 form used as IPFS content id.
func encodeFileHash(s string) (string, error) {
	if s == "" {
		return "", errEmptyHex
	}

	b, err := hexutil.Decode(s)
	if err != nil {
		return "", err
	}

	return base58.Encode(b), nil
}

// decodeHexText decodes a 0x prefixed hex string into UTF-8 text.
func decodeHexText(s string) (string, error) {
	if s == "" {
		return "", errEmptyHex
	}

	b, err := hexutil.Decode(s)
	if err != nil {
		return "", err
	}

	return string(b), nil
}
