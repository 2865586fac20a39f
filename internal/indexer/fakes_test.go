package indexer

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/CertIndexor/internal/changeset"
	"github.com/goran-ethernal/CertIndexor/pkg/ledger"
	"github.com/goran-ethernal/CertIndexor/pkg/store"
)

var errTransient = errors.New("503 service unavailable")

func blockHash(height uint64) common.Hash {
	return common.HexToHash(fmt.Sprintf("0xb10c%04x", height))
}

// fakeChain is a linear ledger with blocks 0..n.
type fakeChain struct {
	mu sync.Mutex

	headers map[common.Hash]ledger.Header
	events  map[common.Hash][]ledger.ProcessRanEvent
	tokens  map[uint64]ledger.Token
	head    common.Hash

	headerFailures int
	failedHeaders  int
}

var _ ledger.Client = (*fakeChain)(nil)

func newFakeChain(n uint64) *fakeChain {
	c := &fakeChain{
		headers: make(map[common.Hash]ledger.Header),
		events:  make(map[common.Hash][]ledger.ProcessRanEvent),
		tokens:  make(map[uint64]ledger.Token),
	}

	c.headers[blockHash(0)] = ledger.Header{Hash: blockHash(0), Height: 0}
	for h := uint64(1); h <= n; h++ {
		c.headers[blockHash(h)] = ledger.Header{Hash: blockHash(h), Height: h, Parent: blockHash(h - 1)}
	}
	c.head = blockHash(n)

	return c
}

func (c *fakeChain) Close() {}

func (c *fakeChain) GetLastFinalisedBlockHash(context.Context) (common.Hash, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.head, nil
}

func (c *fakeChain) GetHeader(_ context.Context, hash common.Hash) (*ledger.Header, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.headerFailures > 0 {
		c.headerFailures--
		c.failedHeaders++
		return nil, errTransient
	}

	header, ok := c.headers[hash]
	if !ok {
		return nil, fmt.Errorf("header %s not found", hash.Hex())
	}
	return &header, nil
}

func (c *fakeChain) WatchFinalisedBlocks(ctx context.Context, fn func(common.Hash)) error {
	fn(c.head)
	<-ctx.Done()
	return ctx.Err()
}

func (c *fakeChain) GetProcessRanEvents(_ context.Context, blockHash common.Hash) ([]ledger.ProcessRanEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events[blockHash], nil
}

func (c *fakeChain) GetToken(_ context.Context, id uint64, _ common.Hash) (*ledger.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	token, ok := c.tokens[id]
	if !ok {
		return nil, fmt.Errorf("token %d not found", id)
	}
	return &token, nil
}

// fakeStore keeps processed blocks in memory and records every write in commit order.
type fakeStore struct {
	mu sync.Mutex

	blocks []store.ProcessedBlock
	writes []string

	lastBlockCalls  int
	lastBlockErrors int
	txCalls         int
	failCommits     int
}

var _ store.Store = (*fakeStore)(nil)

func (s *fakeStore) seed(blocks ...store.ProcessedBlock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = append(s.blocks, blocks...)
}

func (s *fakeStore) GetLastProcessedBlock(context.Context) (*store.ProcessedBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastBlockCalls++
	if s.lastBlockErrors != 0 {
		if s.lastBlockErrors > 0 {
			s.lastBlockErrors--
		}
		return nil, errTransient
	}

	if len(s.blocks) == 0 {
		return nil, nil
	}

	last := slices.MaxFunc(s.blocks, func(a, b store.ProcessedBlock) int {
		return int(a.Height) - int(b.Height)
	})
	return &last, nil
}

func (s *fakeStore) FindTransactionByHash(context.Context, common.Hash) (*store.Transaction, error) {
	return nil, nil
}

func (s *fakeStore) FindCertificateIDByLatestTokenID(context.Context, uint64) (string, bool, error) {
	return "", false, nil
}

func (s *fakeStore) FindAttachmentIDByIPFSHash(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func (s *fakeStore) WithTransaction(ctx context.Context, fn func(tx store.Writer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txCalls++
	tx := &fakeTx{}
	if err := fn(tx); err != nil {
		return err
	}

	if s.failCommits > 0 {
		s.failCommits--
		return errTransient
	}

	for _, b := range tx.blocks {
		for _, existing := range s.blocks {
			if existing.Hash == b.Hash || existing.Height == b.Height {
				return fmt.Errorf("UNIQUE constraint failed: processed_blocks (height %d)", b.Height)
			}
		}
	}

	s.blocks = append(s.blocks, tx.blocks...)
	s.writes = append(s.writes, tx.writes...)

	return nil
}

func (s *fakeStore) heights() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	heights := make([]uint64, 0, len(s.blocks))
	for _, b := range s.blocks {
		heights = append(heights, b.Height)
	}
	return heights
}

type fakeTx struct {
	blocks []store.ProcessedBlock
	writes []string
}

func (t *fakeTx) InsertProcessedBlock(_ context.Context, block store.ProcessedBlock) error {
	t.blocks = append(t.blocks, block)
	t.writes = append(t.writes, fmt.Sprintf("block:%d", block.Height))
	return nil
}

func (t *fakeTx) InsertAttachment(_ context.Context, a store.Attachment) error {
	t.writes = append(t.writes, "attachment:"+a.ID)
	return nil
}

func (t *fakeTx) InsertCertificate(_ context.Context, c store.Certificate) error {
	t.writes = append(t.writes, "certificate.insert:"+c.ID)
	return nil
}

func (t *fakeTx) UpdateCertificate(_ context.Context, id string, _ store.CertificatePatch) error {
	t.writes = append(t.writes, "certificate.update:"+id)
	return nil
}

func (t *fakeTx) InsertCertificateEvent(_ context.Context, e store.CertificateEvent) error {
	t.writes = append(t.writes, "event:"+e.ID)
	return nil
}

// stubBlocks returns a fixed change set per block and records the blocks it handled.
type stubBlocks struct {
	mu      sync.Mutex
	changes map[common.Hash]changeset.ChangeSet
	handled []common.Hash
}

func (b *stubBlocks) HandleBlock(_ context.Context, hash common.Hash) (changeset.ChangeSet, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handled = append(b.handled, hash)
	return b.changes[hash], nil
}
