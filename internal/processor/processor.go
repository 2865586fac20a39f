// Package processor maps decoded process-ran events to change set deltas.
// Processors are pure apart from id generation and never touch the ledger or the store.
package processor

import (
	"time"

	"github.com/goran-ethernal/CertIndexor/internal/changeset"
	"github.com/goran-ethernal/CertIndexor/internal/common"
	"github.com/goran-ethernal/CertIndexor/pkg/ledger"
	"github.com/goran-ethernal/CertIndexor/pkg/store"
	"github.com/google/uuid"
)

// ProcessName is the on-chain identifier of a process definition.
type ProcessName string

const (
	InitiateCert ProcessName = "initiate_cert"
	IssueCert    ProcessName = "issue_cert"
	RevokeCert   ProcessName = "revoke_cert"
)

// SupportedVersion is the only process version the processors understand.
const SupportedVersion = 1

const (
	roleHydrogenOwner = "hydrogen_owner"
	roleEnergyOwner   = "energy_owner"
	roleRegulator     = "regulator"

	metaHydrogenQuantityWh = "hydrogen_quantity_wh"
	metaCommitment         = "commitment"
	metaEmbodiedCO2        = "embodied_co2"
	metaReason             = "reason"
)

// ValidateProcessName reports whether name is a known process.
func ValidateProcessName(name string) (ProcessName, bool) {
	switch p := ProcessName(name); p {
	case InitiateCert, IssueCert, RevokeCert:
		return p, true
	default:
		return "", false
	}
}

// Input is a consumed token together with the local certificate it belongs to.
type Input struct {
	ID      uint64
	LocalID string
}

// Args is everything a processor gets to see about one event.
type Args struct {
	Version     uint32
	BlockTime   time.Time
	Transaction *store.Transaction
	Sender      string
	Inputs      []Input
	Outputs     []ledger.Token
	// Attachments maps the IPFS content ids found in output file metadata to the ids of
	// attachments that already exist locally.
	Attachments map[string]string
}

// Processor translates one event into a change set delta.
type Processor func(args Args) (changeset.ChangeSet, error)

// Processors maps each known process to its processor.
type Processors map[ProcessName]Processor

// DefaultProcessors returns the certificate processors using random UUIDs for new records.
func DefaultProcessors() Processors {
	return NewProcessors(uuid.NewString)
}

// NewProcessors returns the certificate processors using newID for new records.
func NewProcessors(newID func() string) Processors {
	return Processors{
		InitiateCert: initiateCert(newID),
		IssueCert:    issueCert(newID),
		RevokeCert:   revokeCert(newID),
	}
}

func initiateCert(newID func() string) Processor {
	return func(args Args) (changeset.ChangeSet, error) {
		var cs changeset.ChangeSet

		output, err := firstOutput(InitiateCert, args)
		if err != nil {
			return cs, err
		}

		tokenID := output.ID
		state := store.CertificateStateInitiated

		var certID string
		if args.Transaction != nil {
			certID = args.Transaction.LocalID
			cs.AddCertificate(changeset.CertificateRecord{
				Kind:            changeset.KindUpdate,
				ID:              certID,
				State:           &state,
				LatestTokenID:   &tokenID,
				OriginalTokenID: ptr(tokenID),
			})
		} else {
			record, err := newCertificate(output)
			if err != nil {
				return changeset.ChangeSet{}, err
			}
			certID = newID()
			record.ID = certID
			cs.AddCertificate(record)
		}

		cs.AddCertificateEvent(newEvent(newID(), certID, store.CertificateEventInitiated, args.BlockTime))

		return cs, nil
	}
}

func newCertificate(output ledger.Token) (changeset.CertificateRecord, error) {
	var record changeset.CertificateRecord

	hydrogenOwner, err := lookup(InitiateCert, "role", output.Roles, roleHydrogenOwner)
	if err != nil {
		return record, err
	}
	energyOwner, err := lookup(InitiateCert, "role", output.Roles, roleEnergyOwner)
	if err != nil {
		return record, err
	}
	regulator, err := lookup(InitiateCert, "role", output.Roles, roleRegulator)
	if err != nil {
		return record, err
	}
	quantity, err := lookupInt(InitiateCert, output.Metadata, metaHydrogenQuantityWh)
	if err != nil {
		return record, err
	}
	commitment, err := lookup(InitiateCert, "metadata", output.Metadata, metaCommitment)
	if err != nil {
		return record, err
	}

	return changeset.CertificateRecord{
		Kind:               changeset.KindInsert,
		State:              ptr(store.CertificateStateInitiated),
		HydrogenOwner:      &hydrogenOwner,
		EnergyOwner:        &energyOwner,
		Regulator:          &regulator,
		HydrogenQuantityWh: &quantity,
		Commitment:         &commitment,
		LatestTokenID:      ptr(output.ID),
		OriginalTokenID:    ptr(output.ID),
	}, nil
}

func issueCert(newID func() string) Processor {
	return func(args Args) (changeset.ChangeSet, error) {
		var cs changeset.ChangeSet

		certID, err := firstInputLocalID(IssueCert, args)
		if err != nil {
			return cs, err
		}
		output, err := firstOutput(IssueCert, args)
		if err != nil {
			return cs, err
		}
		embodied, err := lookupInt(IssueCert, output.Metadata, metaEmbodiedCO2)
		if err != nil {
			return cs, err
		}

		cs.AddCertificate(changeset.CertificateRecord{
			Kind:          changeset.KindUpdate,
			ID:            certID,
			State:         ptr(store.CertificateStateIssued),
			LatestTokenID: ptr(output.ID),
			EmbodiedCO2:   &embodied,
		})
		cs.AddCertificateEvent(newEvent(newID(), certID, store.CertificateEventIssued, args.BlockTime))

		return cs, nil
	}
}

func revokeCert(newID func() string) Processor {
	return func(args Args) (changeset.ChangeSet, error) {
		var cs changeset.ChangeSet

		certID, err := firstInputLocalID(RevokeCert, args)
		if err != nil {
			return cs, err
		}
		output, err := firstOutput(RevokeCert, args)
		if err != nil {
			return cs, err
		}
		reason, err := lookup(RevokeCert, "metadata", output.Metadata, metaReason)
		if err != nil {
			return cs, err
		}

		// A local revocation references the attachment uploaded with it. Anything else
		// gets an attachment row of its own for the content id.
		if attachmentID, ok := args.Attachments[reason]; ok && args.Transaction != nil {
			reason = attachmentID
		} else {
			attachmentID := newID()
			cs.AddAttachment(changeset.AttachmentRecord{
				Kind:     changeset.KindInsert,
				ID:       attachmentID,
				IPFSHash: reason,
			})
			reason = attachmentID
		}

		cs.AddCertificate(changeset.CertificateRecord{
			Kind:             changeset.KindUpdate,
			ID:               certID,
			State:            ptr(store.CertificateStateRevoked),
			LatestTokenID:    ptr(output.ID),
			RevocationReason: &reason,
		})
		cs.AddCertificateEvent(newEvent(newID(), certID, store.CertificateEventRevoked, args.BlockTime))

		return cs, nil
	}
}

func checkVersion(process ProcessName, args Args) error {
	if args.Version != SupportedVersion {
		return newValidationError(process, "incompatible version %d", args.Version)
	}
	return nil
}

func firstOutput(process ProcessName, args Args) (ledger.Token, error) {
	if err := checkVersion(process, args); err != nil {
		return ledger.Token{}, err
	}
	if len(args.Outputs) == 0 {
		return ledger.Token{}, newValidationError(process, "no output token")
	}
	return args.Outputs[0], nil
}

func firstInputLocalID(process ProcessName, args Args) (string, error) {
	if err := checkVersion(process, args); err != nil {
		return "", err
	}
	if len(args.Inputs) == 0 || args.Inputs[0].LocalID == "" {
		return "", newValidationError(process, "no local certificate for input token")
	}
	return args.Inputs[0].LocalID, nil
}

func lookup(process ProcessName, kind string, values map[string]string, key string) (string, error) {
	value, ok := values[key]
	if !ok {
		return "", newValidationError(process, "missing %s %s", kind, key)
	}
	return value, nil
}

func lookupInt(process ProcessName, values map[string]string, key string) (int64, error) {
	raw, err := lookup(process, "metadata", values, key)
	if err != nil {
		return 0, err
	}

	value, err := common.ParseInt64(raw)
	if err != nil {
		return 0, newValidationError(process, "metadata %s is not an integer: %q", key, raw)
	}
	return value, nil
}

func newEvent(id, certID string, kind store.CertificateEventKind, at time.Time) changeset.CertificateEventRecord {
	return changeset.CertificateEventRecord{
		Kind:          changeset.KindInsert,
		ID:            id,
		CertificateID: certID,
		Event:         kind,
		OccurredAt:    at,
	}
}

func ptr[T any](v T) *T {
	return &v
}
