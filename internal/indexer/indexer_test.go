package indexer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/CertIndexor/internal/changeset"
	internalcommon "github.com/goran-ethernal/CertIndexor/internal/common"
	"github.com/goran-ethernal/CertIndexor/internal/logger"
	"github.com/goran-ethernal/CertIndexor/internal/metrics"
	"github.com/goran-ethernal/CertIndexor/pkg/config"
	"github.com/goran-ethernal/CertIndexor/pkg/ledger"
	"github.com/goran-ethernal/CertIndexor/pkg/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const testRetryDelay = 5 * time.Millisecond

func ptr[T any](v T) *T { return &v }

func processedBlock(height uint64) store.ProcessedBlock {
	return store.ProcessedBlock{Hash: blockHash(height), Height: height, Parent: blockHash(height - 1)}
}

func setupTestIndexer(t *testing.T, chain *fakeChain, st *fakeStore, blocks *stubBlocks) *Indexer {
	t.Helper()

	cfg := &config.IndexerConfig{RetryDelay: internalcommon.NewDuration(testRetryDelay)}
	idx := New(cfg, chain, st, blocks, logger.NewNopLogger())
	t.Cleanup(func() { require.NoError(t, idx.Close()) })

	return idx
}

func TestIndexer_StartOnEmptyStore(t *testing.T) {
	idx := setupTestIndexer(t, newFakeChain(3), &fakeStore{}, &stubBlocks{})

	last, err := idx.Start(context.Background())
	require.NoError(t, err)
	require.Nil(t, last)
}

func TestIndexer_StartReturnsLastProcessedBlock(t *testing.T) {
	st := &fakeStore{}
	st.seed(processedBlock(1), processedBlock(2))
	blocks := &stubBlocks{}
	idx := setupTestIndexer(t, newFakeChain(3), st, blocks)

	last, err := idx.Start(context.Background())
	require.NoError(t, err)
	require.Equal(t, blockHash(2), *last)
	require.Empty(t, blocks.handled, "start must not process blocks")
}

func TestIndexer_ProcessesBlocksInOrderFromSeed(t *testing.T) {
	st := &fakeStore{}
	st.seed(processedBlock(1))
	blocks := &stubBlocks{}
	idx := setupTestIndexer(t, newFakeChain(3), st, blocks)
	ctx := context.Background()

	_, err := idx.Start(ctx)
	require.NoError(t, err)

	hash, err := idx.ProcessNextBlock(ctx, blockHash(3))
	require.NoError(t, err)
	require.Equal(t, blockHash(2), *hash)

	hash, err = idx.ProcessNextBlock(ctx, blockHash(3))
	require.NoError(t, err)
	require.Equal(t, blockHash(3), *hash)

	hash, err = idx.ProcessNextBlock(ctx, blockHash(3))
	require.NoError(t, err)
	require.Nil(t, hash)

	require.Equal(t, []common.Hash{blockHash(2), blockHash(3)}, blocks.handled)
	require.Equal(t, []uint64{1, 2, 3}, st.heights())
}

func TestIndexer_FirstBlockRecordsGenesisParent(t *testing.T) {
	st := &fakeStore{}
	idx := setupTestIndexer(t, newFakeChain(2), st, &stubBlocks{})
	ctx := context.Background()

	_, err := idx.Start(ctx)
	require.NoError(t, err)

	hash, err := idx.ProcessNextBlock(ctx, blockHash(2))
	require.NoError(t, err)
	require.Equal(t, blockHash(1), *hash)

	require.Equal(t, []string{"block:0", "block:1"}, st.writes)
	require.Equal(t, blockHash(0), st.blocks[0].Hash)
	require.Equal(t, blockHash(0), st.blocks[0].Parent)
	require.Equal(t, uint64(0), st.blocks[0].Height)
	require.Equal(t, blockHash(0), st.blocks[1].Parent)
}

func TestIndexer_SkipsBlocksCommittedByAnotherInstance(t *testing.T) {
	st := &fakeStore{}
	st.seed(processedBlock(1))
	blocks := &stubBlocks{}
	idx := setupTestIndexer(t, newFakeChain(4), st, blocks)
	ctx := context.Background()

	_, err := idx.Start(ctx)
	require.NoError(t, err)

	hash, err := idx.ProcessNextBlock(ctx, blockHash(4))
	require.NoError(t, err)
	require.Equal(t, blockHash(2), *hash)

	// another instance commits block 3 in the meantime
	st.seed(processedBlock(3))

	hash, err = idx.ProcessNextBlock(ctx, blockHash(4))
	require.NoError(t, err)
	require.Equal(t, blockHash(4), *hash)

	require.Equal(t, []common.Hash{blockHash(2), blockHash(4)}, blocks.handled)
	require.Equal(t, []uint64{1, 2, 3, 4}, st.heights())
}

func TestIndexer_BackwardFinalityIsNoop(t *testing.T) {
	st := &fakeStore{}
	st.seed(processedBlock(3))
	blocks := &stubBlocks{}
	idx := setupTestIndexer(t, newFakeChain(3), st, blocks)
	ctx := context.Background()

	_, err := idx.Start(ctx)
	require.NoError(t, err)

	hash, err := idx.ProcessNextBlock(ctx, blockHash(2))
	require.NoError(t, err)
	require.Nil(t, hash)

	hash, err = idx.ProcessNextBlock(ctx, blockHash(3))
	require.NoError(t, err)
	require.Nil(t, hash)

	require.Empty(t, blocks.handled)
	require.Zero(t, st.txCalls)
}

func TestIndexer_RetriesTransientHeaderFailureOnce(t *testing.T) {
	chain := newFakeChain(2)
	chain.headerFailures = 1
	st := &fakeStore{}
	st.seed(processedBlock(1))
	blocks := &stubBlocks{}
	idx := setupTestIndexer(t, chain, st, blocks)
	ctx := context.Background()

	_, err := idx.Start(ctx)
	require.NoError(t, err)

	retriesBefore := testutil.ToFloat64(metrics.IndexerRetries)

	hash, err := idx.ProcessNextBlock(ctx, blockHash(2))
	require.NoError(t, err)
	require.Equal(t, blockHash(2), *hash)

	require.Equal(t, 1, chain.failedHeaders)
	require.Equal(t, 3, st.lastBlockCalls, "start plus two attempts")
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.IndexerRetries)-retriesBefore)
	require.Equal(t, []common.Hash{blockHash(2)}, blocks.handled)
	require.Equal(t, 1, st.txCalls)
}

func TestIndexer_RetriesFailedCommit(t *testing.T) {
	st := &fakeStore{failCommits: 1}
	st.seed(processedBlock(1))
	blocks := &stubBlocks{}
	idx := setupTestIndexer(t, newFakeChain(2), st, blocks)
	ctx := context.Background()

	_, err := idx.Start(ctx)
	require.NoError(t, err)

	hash, err := idx.ProcessNextBlock(ctx, blockHash(2))
	require.NoError(t, err)
	require.Equal(t, blockHash(2), *hash)

	require.Equal(t, 2, st.txCalls)
	require.Equal(t, []uint64{1, 2}, st.heights())
	require.Equal(t, []string{"block:2"}, st.writes)
}

func TestIndexer_CommitsInDependencyOrder(t *testing.T) {
	var cs changeset.ChangeSet
	cs.AddAttachment(changeset.AttachmentRecord{Kind: changeset.KindInsert, ID: "att-1", IPFSHash: "Qm1"})
	cs.AddAttachment(changeset.AttachmentRecord{Kind: changeset.KindInsert, ID: "att-2", IPFSHash: "Qm2"})
	cs.AddCertificate(changeset.CertificateRecord{
		Kind:          changeset.KindUpdate,
		ID:            "cert-updated",
		State:         ptr(store.CertificateStateIssued),
		LatestTokenID: ptr(uint64(5)),
	})
	cs.AddCertificate(changeset.CertificateRecord{
		Kind:               changeset.KindInsert,
		ID:                 "cert-new",
		State:              ptr(store.CertificateStateInitiated),
		HydrogenOwner:      ptr("alice"),
		EnergyOwner:        ptr("bob"),
		Regulator:          ptr("reg"),
		HydrogenQuantityWh: ptr(int64(10)),
		Commitment:         ptr("0x01"),
	})
	cs.AddCertificateEvent(changeset.CertificateEventRecord{Kind: changeset.KindInsert, ID: "ev-1"})
	cs.AddCertificateEvent(changeset.CertificateEventRecord{Kind: changeset.KindInsert, ID: "ev-2"})

	st := &fakeStore{}
	st.seed(processedBlock(1))
	blocks := &stubBlocks{changes: map[common.Hash]changeset.ChangeSet{blockHash(2): cs}}
	idx := setupTestIndexer(t, newFakeChain(2), st, blocks)
	ctx := context.Background()

	_, err := idx.Start(ctx)
	require.NoError(t, err)

	_, err = idx.ProcessNextBlock(ctx, blockHash(2))
	require.NoError(t, err)

	require.Equal(t, []string{
		"block:2",
		"attachment:att-1",
		"attachment:att-2",
		"certificate.insert:cert-new",
		"certificate.update:cert-updated",
		"event:ev-1",
		"event:ev-2",
	}, st.writes)
}

func TestIndexer_CommitsTwoOfEachKindInOrder(t *testing.T) {
	newCert := func(id string) changeset.CertificateRecord {
		return changeset.CertificateRecord{
			Kind:               changeset.KindInsert,
			ID:                 id,
			State:              ptr(store.CertificateStateInitiated),
			HydrogenOwner:      ptr("alice"),
			EnergyOwner:        ptr("bob"),
			Regulator:          ptr("reg"),
			HydrogenQuantityWh: ptr(int64(10)),
			Commitment:         ptr("0x01"),
		}
	}

	var cs changeset.ChangeSet
	cs.AddAttachment(changeset.AttachmentRecord{Kind: changeset.KindInsert, ID: "att-b", IPFSHash: "Qm1"})
	cs.AddAttachment(changeset.AttachmentRecord{Kind: changeset.KindInsert, ID: "att-a", IPFSHash: "Qm2"})
	cs.AddCertificate(newCert("cert-b"))
	cs.AddCertificate(newCert("cert-a"))
	cs.AddCertificateEvent(changeset.CertificateEventRecord{Kind: changeset.KindInsert, ID: "ev-b", CertificateID: "cert-b"})
	cs.AddCertificateEvent(changeset.CertificateEventRecord{Kind: changeset.KindInsert, ID: "ev-a", CertificateID: "cert-a"})

	st := &fakeStore{}
	st.seed(processedBlock(1))
	blocks := &stubBlocks{changes: map[common.Hash]changeset.ChangeSet{blockHash(2): cs}}
	idx := setupTestIndexer(t, newFakeChain(2), st, blocks)
	ctx := context.Background()

	_, err := idx.Start(ctx)
	require.NoError(t, err)

	_, err = idx.ProcessNextBlock(ctx, blockHash(2))
	require.NoError(t, err)

	require.Equal(t, []string{
		"block:2",
		"attachment:att-b",
		"attachment:att-a",
		"certificate.insert:cert-b",
		"certificate.insert:cert-a",
		"event:ev-b",
		"event:ev-a",
	}, st.writes)
}

// failingWriter rejects certificate updates the way the SQL store does.
type failingWriter struct {
	fakeTx
}

func (w *failingWriter) UpdateCertificate(_ context.Context, id string, _ store.CertificatePatch) error {
	return fmt.Errorf("failed to update certificate %s: %w", id, errTransient)
}

func TestCommit_ReturnsWriterErrorsUnwrapped(t *testing.T) {
	var cs changeset.ChangeSet
	cs.AddCertificate(changeset.CertificateRecord{Kind: changeset.KindUpdate, ID: "c1", State: ptr(store.CertificateStateRevoked)})

	header := &ledger.Header{Hash: blockHash(2), Height: 2, Parent: blockHash(1)}
	err := commit(context.Background(), &failingWriter{}, header, cs)

	require.ErrorIs(t, err, errTransient)
	require.Equal(t, 1, strings.Count(err.Error(), "failed to update certificate c1"))
}

func TestIndexer_IncompleteCertificateInsertIsRejected(t *testing.T) {
	var cs changeset.ChangeSet
	cs.AddCertificate(changeset.CertificateRecord{Kind: changeset.KindInsert, ID: "cert-new"})

	_, err := certificateRow(cs.CertificateList()[0])
	require.ErrorContains(t, err, "missing required fields")
}

func TestIndexer_ProcessAllBlocks(t *testing.T) {
	st := &fakeStore{}
	blocks := &stubBlocks{}
	idx := setupTestIndexer(t, newFakeChain(3), st, blocks)
	ctx := context.Background()

	_, err := idx.Start(ctx)
	require.NoError(t, err)

	last, err := idx.ProcessAllBlocks(ctx, blockHash(3))
	require.NoError(t, err)
	require.Equal(t, blockHash(3), *last)
	require.Equal(t, []common.Hash{blockHash(1), blockHash(2), blockHash(3)}, blocks.handled)

	last, err = idx.ProcessAllBlocks(ctx, blockHash(3))
	require.NoError(t, err)
	require.Nil(t, last)
}

func TestIndexer_UnbridgeableGapKeepsRetrying(t *testing.T) {
	st := &fakeStore{}
	// the store follows a block the ledger does not know
	st.seed(store.ProcessedBlock{Hash: common.HexToHash("0xdead"), Height: 1, Parent: blockHash(0)})
	blocks := &stubBlocks{}

	cfg := &config.IndexerConfig{
		RetryDelay:           internalcommon.NewDuration(testRetryDelay),
		PoisonBlockThreshold: 2,
	}
	idx := New(cfg, newFakeChain(3), st, blocks, logger.NewNopLogger())
	defer func() { require.NoError(t, idx.Close()) }()

	_, err := idx.Start(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	hash, err := idx.ProcessNextBlock(ctx, blockHash(3))
	require.Nil(t, hash)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Empty(t, blocks.handled)
	require.Greater(t, st.lastBlockCalls, 2)
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.PoisonBlock))
}

func TestIndexer_CloseCancelsPendingRetry(t *testing.T) {
	st := &fakeStore{}
	chain := newFakeChain(2)
	cfg := &config.IndexerConfig{RetryDelay: internalcommon.NewDuration(time.Hour)}
	idx := New(cfg, chain, st, &stubBlocks{}, logger.NewNopLogger())

	_, err := idx.Start(context.Background())
	require.NoError(t, err)

	st.mu.Lock()
	st.lastBlockErrors = -1
	st.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		_, err := idx.ProcessNextBlock(context.Background(), blockHash(2))
		done <- err
	}()

	require.Eventually(t, func() bool {
		st.mu.Lock()
		defer st.mu.Unlock()
		return st.lastBlockCalls >= 2
	}, time.Second, time.Millisecond)

	require.NoError(t, idx.Close())

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrIndexerClosed)
	case <-time.After(time.Second):
		t.Fatal("close did not cancel the pending retry")
	}

	_, err = idx.Start(context.Background())
	require.ErrorIs(t, err, ErrIndexerClosed)
}

// blockingBlocks holds a block until its context is cancelled.
type blockingBlocks struct {
	started chan struct{}
}

func (b *blockingBlocks) HandleBlock(ctx context.Context, _ common.Hash) (changeset.ChangeSet, error) {
	close(b.started)
	<-ctx.Done()
	return changeset.ChangeSet{}, ctx.Err()
}

func TestIndexer_CloseInterruptsInFlightBlock(t *testing.T) {
	st := &fakeStore{}
	blocks := &blockingBlocks{started: make(chan struct{})}
	cfg := &config.IndexerConfig{RetryDelay: internalcommon.NewDuration(testRetryDelay)}
	idx := New(cfg, newFakeChain(2), st, blocks, logger.NewNopLogger())

	_, err := idx.Start(context.Background())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := idx.ProcessNextBlock(context.Background(), blockHash(1))
		done <- err
	}()

	<-blocks.started
	require.NoError(t, idx.Close())

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrIndexerClosed)
	case <-time.After(time.Second):
		t.Fatal("close did not interrupt the in-flight block")
	}

	require.Empty(t, st.heights())
	require.Zero(t, st.txCalls)
}

func TestIgnoreShutdown(t *testing.T) {
	require.NoError(t, ignoreShutdown(context.Canceled))
	require.NoError(t, ignoreShutdown(ErrIndexerClosed))
	require.Error(t, ignoreShutdown(errors.New("boom")))
	require.NoError(t, ignoreShutdown(nil))
}
