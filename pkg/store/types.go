package store

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// CertificateState is the lifecycle state of a certificate.
// Transitions: pending -> initiated -> issued -> revoked.
type CertificateState string

const (
	CertificateStatePending   CertificateState = "pending"
	CertificateStateInitiated CertificateState = "initiated"
	CertificateStateIssued    CertificateState = "issued"
	CertificateStateRevoked   CertificateState = "revoked"
)

// CertificateEventKind is the kind of a certificate audit trail entry.
type CertificateEventKind string

const (
	CertificateEventInitiated CertificateEventKind = "initiated"
	CertificateEventIssued    CertificateEventKind = "issued"
	CertificateEventRevoked   CertificateEventKind = "revoked"
)

// TransactionState is the state of a locally submitted ledger transaction.
type TransactionState string

const (
	TransactionStateSubmitted TransactionState = "submitted"
	TransactionStateInBlock   TransactionState = "inBlock"
	TransactionStateFinalised TransactionState = "finalised"
	TransactionStateFailed    TransactionState = "failed"
)

// ProcessedBlock marks a finalized block whose changes have been fully applied.
type ProcessedBlock struct {
	Hash   common.Hash `meddler:"hash,hash"`
	Height uint64      `meddler:"height"`
	Parent common.Hash `meddler:"parent,hash"`
}

// Attachment references content stored outside the ledger.
type Attachment struct {
	ID       string  `meddler:"id"`
	Filename *string `meddler:"filename"`
	Size     *int64  `meddler:"size"`
	IPFSHash string  `meddler:"ipfs_hash"`
}

// Certificate is a full certificate row as first observed on chain.
type Certificate struct {
	ID                 string           `meddler:"id"`
	State              CertificateState `meddler:"state"`
	HydrogenOwner      string           `meddler:"hydrogen_owner"`
	EnergyOwner        string           `meddler:"energy_owner"`
	Regulator          string           `meddler:"regulator"`
	HydrogenQuantityWh int64            `meddler:"hydrogen_quantity_wh"`
	Commitment         string           `meddler:"commitment"`
	EmbodiedCO2        *int64           `meddler:"embodied_co2"`
	LatestTokenID      *uint64          `meddler:"latest_token_id"`
	OriginalTokenID    *uint64          `meddler:"original_token_id"`
	RevocationReason   *string          `meddler:"revocation_reason"`
}

// CertificatePatch is a partial certificate update. Nil fields are left untouched.
type CertificatePatch struct {
	State            *CertificateState
	LatestTokenID    *uint64
	OriginalTokenID  *uint64
	EmbodiedCO2      *int64
	RevocationReason *string
}

// IsEmpty reports whether the patch changes nothing.
func (p CertificatePatch) IsEmpty() bool {
	return p.State == nil && p.LatestTokenID == nil && p.OriginalTokenID == nil &&
		p.EmbodiedCO2 == nil && p.RevocationReason == nil
}

// CertificateEvent is an append-only audit trail entry stamped with the block time.
type CertificateEvent struct {
	ID            string               `meddler:"id"`
	CertificateID string               `meddler:"certificate_id"`
	Event         CertificateEventKind `meddler:"event"`
	OccurredAt    time.Time            `meddler:"occurred_at,utctime"`
}

// Transaction is a ledger transaction submitted by this service, keyed by its call hash.
type Transaction struct {
	ID              string           `meddler:"id"`
	LocalID         string           `meddler:"local_id"`
	State           TransactionState `meddler:"state"`
	Hash            common.Hash      `meddler:"hash,hash"`
	APIType         string           `meddler:"api_type"`
	TransactionType string           `meddler:"transaction_type"`
	TokenID         *uint64          `meddler:"token_id"`
}
