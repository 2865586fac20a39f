package indexer

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrIndexerClosed is returned by every operation once Close was called.
	ErrIndexerClosed = errors.New("indexer closed")

	// ErrUnbridgeableGap is returned when the blocks walked back from a finalized head
	// do not connect to the last known block.
	ErrUnbridgeableGap = errors.New("new blocks do not connect to the last known block")
)

// UnknownProcessError is returned for process-ran events of a process no processor handles.
type UnknownProcessError struct {
	Process  string
	CallHash common.Hash
}

func (e *UnknownProcessError) Error() string {
	return fmt.Sprintf("unknown process %q in call %s", e.Process, e.CallHash.Hex())
}

// UnresolvedTokenError is returned when an input token maps to no local certificate.
type UnresolvedTokenError struct {
	TokenID  uint64
	CallHash common.Hash
}

func (e *UnresolvedTokenError) Error() string {
	return fmt.Sprintf("no local certificate for input token %d in call %s", e.TokenID, e.CallHash.Hex())
}
