package indexer

import (
	"context"
	"fmt"

	"github.com/goran-ethernal/CertIndexor/internal/changeset"
	"github.com/goran-ethernal/CertIndexor/pkg/ledger"
	"github.com/goran-ethernal/CertIndexor/pkg/store"
)

// commit writes a block's progress marker and changes in dependency order: attachments,
// certificate inserts, certificate updates, then certificate events. Writer errors are
// returned as is since they already name the row.
func commit(ctx context.Context, tx store.Writer, header *ledger.Header, cs changeset.ChangeSet) error {
	// block 1's parent is stored at height 0 so every processed block has a processed parent
	if header.Height == 1 {
		if err := tx.InsertProcessedBlock(ctx, store.ProcessedBlock{
			Hash:   header.Parent,
			Height: 0,
			Parent: header.Parent,
		}); err != nil {
			return err
		}
	}

	if err := tx.InsertProcessedBlock(ctx, store.ProcessedBlock{
		Hash:   header.Hash,
		Height: header.Height,
		Parent: header.Parent,
	}); err != nil {
		return err
	}

	for _, rec := range cs.AttachmentList() {
		if err := tx.InsertAttachment(ctx, store.Attachment{
			ID:       rec.ID,
			Filename: rec.Filename,
			Size:     rec.Size,
			IPFSHash: rec.IPFSHash,
		}); err != nil {
			return err
		}
	}

	certs := cs.CertificateList()
	for _, rec := range certs {
		if rec.Kind != changeset.KindInsert {
			continue
		}

		row, err := certificateRow(rec)
		if err != nil {
			return err
		}
		if err := tx.InsertCertificate(ctx, row); err != nil {
			return err
		}
	}

	for _, rec := range certs {
		if rec.Kind != changeset.KindUpdate {
			continue
		}

		if err := tx.UpdateCertificate(ctx, rec.ID, store.CertificatePatch{
			State:            rec.State,
			LatestTokenID:    rec.LatestTokenID,
			OriginalTokenID:  rec.OriginalTokenID,
			EmbodiedCO2:      rec.EmbodiedCO2,
			RevocationReason: rec.RevocationReason,
		}); err != nil {
			return err
		}
	}

	for _, rec := range cs.CertificateEventList() {
		if err := tx.InsertCertificateEvent(ctx, store.CertificateEvent{
			ID:            rec.ID,
			CertificateID: rec.CertificateID,
			Event:         rec.Event,
			OccurredAt:    rec.OccurredAt,
		}); err != nil {
			return err
		}
	}

	return nil
}

// certificateRow converts an insert record into a full row. Every column without a
// default must be set.
func certificateRow(rec changeset.CertificateRecord) (store.Certificate, error) {
	if rec.HydrogenOwner == nil || rec.EnergyOwner == nil || rec.Regulator == nil ||
		rec.HydrogenQuantityWh == nil || rec.Commitment == nil {
		return store.Certificate{}, fmt.Errorf("certificate %s: insert is missing required fields", rec.ID)
	}

	state := store.CertificateStatePending
	if rec.State != nil {
		state = *rec.State
	}

	return store.Certificate{
		ID:                 rec.ID,
		State:              state,
		HydrogenOwner:      *rec.HydrogenOwner,
		EnergyOwner:        *rec.EnergyOwner,
		Regulator:          *rec.Regulator,
		HydrogenQuantityWh: *rec.HydrogenQuantityWh,
		Commitment:         *rec.Commitment,
		EmbodiedCO2:        rec.EmbodiedCO2,
		LatestTokenID:      rec.LatestTokenID,
		OriginalTokenID:    rec.OriginalTokenID,
		RevocationReason:   rec.RevocationReason,
	}, nil
}
