package db

import (
	"database/sql"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	icommon "github.com/goran-ethernal/CertIndexor/internal/common"
	"github.com/russross/meddler"
)

func init() {
	meddler.Register("hash", HashMeddler{})
}

// HashMeddler handles conversion between common.Hash and its database form,
// 64 lowercase hex characters without the 0x prefix.
type HashMeddler struct{}

func (h HashMeddler) PreRead(fieldAddr any) (scanTarget any, err error) {
	return new(sql.NullString), nil
}

func (h HashMeddler) PostRead(fieldAddr, scanTarget any) error {
	ns, ok := scanTarget.(*sql.NullString)
	if !ok {
		return fmt.Errorf("expected *sql.NullString, got %T", scanTarget)
	}

	switch ptr := fieldAddr.(type) {
	case **common.Hash:
		if !ns.Valid {
			*ptr = nil
			return nil
		}
		hash := common.HexToHash(ns.String)
		*ptr = &hash
		return nil
	case *common.Hash:
		if !ns.Valid {
			*ptr = common.Hash{}
			return nil
		}
		*ptr = common.HexToHash(ns.String)
		return nil
	}

	return fmt.Errorf("expected *common.Hash or **common.Hash, got %T", fieldAddr)
}

func (h HashMeddler) PreWrite(field any) (saveValue any, err error) {
	switch hash := field.(type) {
	case *common.Hash:
		if hash == nil {
			return nil, nil
		}
		return HashToColumn(*hash), nil
	case common.Hash:
		return HashToColumn(hash), nil
	}

	return nil, fmt.Errorf("expected common.Hash or *common.Hash, got %T", field)
}

// HashToColumn renders a hash the way it is stored, for use in hand-written queries.
func HashToColumn(h common.Hash) string {
	return icommon.Trim0x(h.Hex())
}
