package indexer

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/CertIndexor/internal/changeset"
	ledgermocks "github.com/goran-ethernal/CertIndexor/internal/ledger/mocks"
	"github.com/goran-ethernal/CertIndexor/internal/logger"
	"github.com/goran-ethernal/CertIndexor/pkg/ledger"
	"github.com/stretchr/testify/require"
)

// appendingEvents adds one certificate event per handled event, keyed by the call hash.
type appendingEvents struct {
	seen []int
}

func (a *appendingEvents) HandleEvent(
	_ context.Context,
	event ledger.ProcessRanEvent,
	current changeset.ChangeSet,
) (changeset.ChangeSet, error) {
	a.seen = append(a.seen, len(current.CertificateEventList()))
	if event.Process.ID == "fail" {
		return current, errTransient
	}

	var delta changeset.ChangeSet
	delta.AddCertificateEvent(changeset.CertificateEventRecord{Kind: changeset.KindInsert, ID: event.CallHash.Hex()})
	return changeset.Merge(current, delta), nil
}

func TestBlockHandler_FoldsEventsInOrder(t *testing.T) {
	client := ledgermocks.NewClient(t)
	ctx := context.Background()

	client.EXPECT().GetProcessRanEvents(ctx, testBlockHash).Return([]ledger.ProcessRanEvent{
		{CallHash: common.HexToHash("0x01")},
		{CallHash: common.HexToHash("0x02")},
		{CallHash: common.HexToHash("0x03")},
	}, nil)

	events := &appendingEvents{}
	handler := NewBlockHandler(client, events, logger.NewNopLogger())

	cs, err := handler.HandleBlock(ctx, testBlockHash)
	require.NoError(t, err)

	require.Equal(t, []int{0, 1, 2}, events.seen, "each event sees the changes of the previous ones")
	list := cs.CertificateEventList()
	require.Len(t, list, 3)
	require.Equal(t, common.HexToHash("0x01").Hex(), list[0].ID)
	require.Equal(t, common.HexToHash("0x03").Hex(), list[2].ID)
}

func TestBlockHandler_EmptyBlock(t *testing.T) {
	client := ledgermocks.NewClient(t)
	ctx := context.Background()
	client.EXPECT().GetProcessRanEvents(ctx, testBlockHash).Return(nil, nil)

	cs, err := NewBlockHandler(client, &appendingEvents{}, logger.NewNopLogger()).HandleBlock(ctx, testBlockHash)
	require.NoError(t, err)
	require.True(t, cs.IsEmpty())
}

func TestBlockHandler_PropagatesErrors(t *testing.T) {
	client := ledgermocks.NewClient(t)
	ctx := context.Background()

	client.EXPECT().GetProcessRanEvents(ctx, testBlockHash).Return([]ledger.ProcessRanEvent{
		{CallHash: common.HexToHash("0x01")},
		{CallHash: common.HexToHash("0x02"), Process: ledger.Process{ID: "fail"}},
	}, nil)

	cs, err := NewBlockHandler(client, &appendingEvents{}, logger.NewNopLogger()).HandleBlock(ctx, testBlockHash)
	require.ErrorIs(t, err, errTransient)
	require.True(t, cs.IsEmpty())

	client2 := ledgermocks.NewClient(t)
	client2.EXPECT().GetProcessRanEvents(ctx, testBlockHash).Return(nil, errTransient)

	_, err = NewBlockHandler(client2, &appendingEvents{}, logger.NewNopLogger()).HandleBlock(ctx, testBlockHash)
	require.ErrorIs(t, err, errTransient)
}
