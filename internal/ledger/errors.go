package ledger

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
)

const methodNotFoundCode = -32601

// HeaderNotFoundError is returned when the node has no header for a hash.
type HeaderNotFoundError struct {
	Hash common.Hash
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("header %s not found", e.Hash.Hex())
}

// TokenNotFoundError is returned when a token does not exist at the requested block.
type TokenNotFoundError struct {
	ID        uint64
	BlockHash common.Hash
}

func (e *TokenNotFoundError) Error() string {
	return fmt.Sprintf("token %d not found at block %s", e.ID, e.BlockHash.Hex())
}

// IsMethodNotFoundError checks if the node rejected the call because it does not expose the method.
func IsMethodNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.ErrorCode() == methodNotFoundCode
	}

	return false
}

// errorType buckets an error for the error metric.
func errorType(err error) string {
	switch {
	case IsMethodNotFoundError(err):
		return "method_not_found"
	case retryableError(err):
		return "transient"
	default:
		return "permanent"
	}
}
