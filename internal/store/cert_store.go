package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/CertIndexor/internal/db"
	"github.com/goran-ethernal/CertIndexor/internal/logger"
	"github.com/goran-ethernal/CertIndexor/internal/metrics"
	"github.com/goran-ethernal/CertIndexor/pkg/store"
	"github.com/jmoiron/sqlx"
	"github.com/russross/meddler"
)

const (
	tableProcessedBlocks  = "processed_blocks"
	tableAttachment       = "attachment"
	tableCertificate      = "certificate"
	tableCertificateEvent = "certificate_event"
	tableTransaction      = "transaction"
)

// ErrCertificateNotFound is returned when a certificate update matches no row.
var ErrCertificateNotFound = errors.New("certificate not found")

// Compile-time check to ensure CertStore implements store.Store interface.
var _ store.Store = (*CertStore)(nil)

// CertStore implements store.Store on top of database/sql, for SQLite and PostgreSQL.
type CertStore struct {
	db       *sql.DB
	dialect  *meddler.Database
	bindType int
	log      *logger.Logger
}

// NewCertStore creates a new SQL-backed certificate store for the given driver.
func NewCertStore(sqlDB *sql.DB, driver string, log *logger.Logger) (*CertStore, error) {
	dialect, err := db.Dialect(driver)
	if err != nil {
		return nil, err
	}

	return &CertStore{
		db:       sqlDB,
		dialect:  dialect,
		bindType: sqlx.BindType(driver),
		log:      log,
	}, nil
}

// rebind converts ? placeholders to the driver's placeholder syntax.
func (s *CertStore) rebind(query string) string {
	return sqlx.Rebind(s.bindType, query)
}

// track starts timing an operation. The returned func records query count,
// latency and the outcome held by errp once the operation returns.
func track(operation string) func(errp *error) {
	start := time.Now()
	return func(errp *error) {
		metrics.DBQueryInc(operation)
		metrics.DBQueryDuration(operation, time.Since(start))
		if errp != nil && *errp != nil {
			metrics.DBErrorsInc(operation)
		}
	}
}

// GetLastProcessedBlock returns the highest processed block, or nil if the table is empty.
func (s *CertStore) GetLastProcessedBlock(ctx context.Context) (block *store.ProcessedBlock, err error) {
	defer track("get_last_processed_block")(&err)

	const query = `SELECT hash, height, parent FROM processed_blocks ORDER BY height DESC LIMIT 1`

	var row store.ProcessedBlock
	if err = s.dialect.QueryRow(s.db, &row, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query last processed block: %w", err)
	}

	return &row, nil
}

// FindTransactionByHash returns the local transaction with the given call hash, or nil.
func (s *CertStore) FindTransactionByHash(ctx context.Context, hash common.Hash) (tx *store.Transaction, err error) {
	defer track("find_transaction")(&err)

	query := s.rebind(`
		SELECT id, local_id, state, hash, api_type, transaction_type, token_id
		FROM "transaction"
		WHERE hash = ?
	`)

	var row store.Transaction
	if err = s.dialect.QueryRow(s.db, &row, query, db.HashToColumn(hash)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query transaction %s: %w", hash.Hex(), err)
	}

	return &row, nil
}

// FindCertificateIDByLatestTokenID returns the id of the certificate whose latest token is tokenID.
func (s *CertStore) FindCertificateIDByLatestTokenID(ctx context.Context, tokenID uint64) (id string, found bool, err error) {
	defer track("find_certificate_by_token")(&err)

	query := s.rebind(`SELECT id FROM certificate WHERE latest_token_id = ? LIMIT 1`)

	if err = s.db.QueryRowContext(ctx, query, tokenID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to query certificate by token %d: %w", tokenID, err)
	}

	return id, true, nil
}

// FindAttachmentIDByIPFSHash returns the id of the oldest attachment with the given IPFS hash.
func (s *CertStore) FindAttachmentIDByIPFSHash(ctx context.Context, ipfsHash string) (id string, found bool, err error) {
	defer track("find_attachment_by_ipfs_hash")(&err)

	query := s.rebind(`SELECT id FROM attachment WHERE ipfs_hash = ? ORDER BY created_at, id LIMIT 1`)

	if err = s.db.QueryRowContext(ctx, query, ipfsHash).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to query attachment by ipfs hash %s: %w", ipfsHash, err)
	}

	return id, true, nil
}

// GetCertificate loads a certificate by id, or returns nil if it does not exist.
func (s *CertStore) GetCertificate(ctx context.Context, id string) (cert *store.Certificate, err error) {
	defer track("get_certificate")(&err)

	query := s.rebind(`
		SELECT id, state, hydrogen_owner, energy_owner, regulator, hydrogen_quantity_wh, commitment,
		       embodied_co2, latest_token_id, original_token_id, revocation_reason
		FROM certificate
		WHERE id = ?
	`)

	var row store.Certificate
	if err = s.dialect.QueryRow(s.db, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query certificate %s: %w", id, err)
	}

	return &row, nil
}

// GetCertificateEvents returns the audit trail of a certificate ordered by occurrence.
func (s *CertStore) GetCertificateEvents(ctx context.Context, certificateID string) (events []*store.CertificateEvent, err error) {
	defer track("get_certificate_events")(&err)

	query := s.rebind(`
		SELECT id, certificate_id, event, occurred_at
		FROM certificate_event
		WHERE certificate_id = ?
		ORDER BY occurred_at ASC
	`)

	if err = s.dialect.QueryAll(s.db, &events, query, certificateID); err != nil {
		return nil, fmt.Errorf("failed to query events of certificate %s: %w", certificateID, err)
	}

	return events, nil
}

// InsertTransaction records a submitted ledger transaction.
func (s *CertStore) InsertTransaction(ctx context.Context, tx store.Transaction) (err error) {
	defer track("insert_transaction")(&err)

	if err = s.dialect.Insert(s.db, tableTransaction, &tx); err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", tx.Hash.Hex(), err)
	}

	return nil
}

// WithTransaction runs fn inside a single database transaction.
func (s *CertStore) WithTransaction(ctx context.Context, fn func(tx store.Writer) error) (err error) {
	defer track("commit")(&err)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.log.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	if err = fn(&txWriter{tx: tx, store: s}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// txWriter applies writes within one database transaction.
type txWriter struct {
	tx    *sql.Tx
	store *CertStore
}

func (w *txWriter) InsertProcessedBlock(ctx context.Context, block store.ProcessedBlock) error {
	if err := w.store.dialect.Insert(w.tx, tableProcessedBlocks, &block); err != nil {
		return fmt.Errorf("failed to insert processed block %d (%s): %w", block.Height, block.Hash.Hex(), err)
	}

	return nil
}

func (w *txWriter) InsertAttachment(ctx context.Context, attachment store.Attachment) error {
	if err := w.store.dialect.Insert(w.tx, tableAttachment, &attachment); err != nil {
		return fmt.Errorf("failed to insert attachment %s: %w", attachment.ID, err)
	}

	return nil
}

func (w *txWriter) InsertCertificate(ctx context.Context, certificate store.Certificate) error {
	if err := w.store.dialect.Insert(w.tx, tableCertificate, &certificate); err != nil {
		return fmt.Errorf("failed to insert certificate %s: %w", certificate.ID, err)
	}

	return nil
}

func (w *txWriter) UpdateCertificate(ctx context.Context, id string, patch store.CertificatePatch) error {
	if patch.IsEmpty() {
		return nil
	}

	var (
		sets []string
		args []any
	)

	if patch.State != nil {
		sets = append(sets, "state = ?")
		args = append(args, string(*patch.State))
	}
	if patch.LatestTokenID != nil {
		sets = append(sets, "latest_token_id = ?")
		args = append(args, *patch.LatestTokenID)
	}
	if patch.OriginalTokenID != nil {
		sets = append(sets, "original_token_id = ?")
		args = append(args, *patch.OriginalTokenID)
	}
	if patch.EmbodiedCO2 != nil {
		sets = append(sets, "embodied_co2 = ?")
		args = append(args, *patch.EmbodiedCO2)
	}
	if patch.RevocationReason != nil {
		sets = append(sets, "revocation_reason = ?")
		args = append(args, *patch.RevocationReason)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := w.store.rebind(fmt.Sprintf("UPDATE certificate SET %s WHERE id = ?", strings.Join(sets, ", ")))

	res, err := w.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update certificate %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update certificate %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("failed to update certificate %s: %w", id, ErrCertificateNotFound)
	}

	return nil
}

func (w *txWriter) InsertCertificateEvent(ctx context.Context, event store.CertificateEvent) error {
	if err := w.store.dialect.Insert(w.tx, tableCertificateEvent, &event); err != nil {
		return fmt.Errorf("failed to insert %s event for certificate %s: %w", event.Event, event.CertificateID, err)
	}

	return nil
}
