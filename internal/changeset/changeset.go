// Package changeset holds the pending inserts and updates produced while translating
// the events of one finalized block, before they are committed to the store.
package changeset

import (
	"time"

	"github.com/goran-ethernal/CertIndexor/pkg/store"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind tags a record as a new row or a partial patch of an existing row.
type Kind int

const (
	KindUpdate Kind = iota
	KindInsert
)

func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindUpdate:
		return "update"
	default:
		return "unknown"
	}
}

func mergeKind(base, update Kind) Kind {
	if base == KindInsert || update == KindInsert {
		return KindInsert
	}
	return KindUpdate
}

// pick returns update when it is set, base otherwise.
func pick[T any](base, update *T) *T {
	if update != nil {
		return update
	}
	return base
}

func pickString(base, update string) string {
	if update != "" {
		return update
	}
	return base
}

// AttachmentRecord is a pending attachment row.
type AttachmentRecord struct {
	Kind     Kind
	ID       string
	Filename *string
	Size     *int64
	IPFSHash string
}

func (r AttachmentRecord) mergeWith(update AttachmentRecord) AttachmentRecord {
	return AttachmentRecord{
		Kind:     mergeKind(r.Kind, update.Kind),
		ID:       pickString(r.ID, update.ID),
		Filename: pick(r.Filename, update.Filename),
		Size:     pick(r.Size, update.Size),
		IPFSHash: pickString(r.IPFSHash, update.IPFSHash),
	}
}

// CertificateRecord is a pending certificate row (insert) or patch (update).
// Unset fields are nil.
type CertificateRecord struct {
	Kind               Kind
	ID                 string
	State              *store.CertificateState
	HydrogenOwner      *string
	EnergyOwner        *string
	Regulator          *string
	HydrogenQuantityWh *int64
	Commitment         *string
	EmbodiedCO2        *int64
	LatestTokenID      *uint64
	OriginalTokenID    *uint64
	RevocationReason   *string
}

func (r CertificateRecord) mergeWith(update CertificateRecord) CertificateRecord {
	return CertificateRecord{
		Kind:               mergeKind(r.Kind, update.Kind),
		ID:                 pickString(r.ID, update.ID),
		State:              pick(r.State, update.State),
		HydrogenOwner:      pick(r.HydrogenOwner, update.HydrogenOwner),
		EnergyOwner:        pick(r.EnergyOwner, update.EnergyOwner),
		Regulator:          pick(r.Regulator, update.Regulator),
		HydrogenQuantityWh: pick(r.HydrogenQuantityWh, update.HydrogenQuantityWh),
		Commitment:         pick(r.Commitment, update.Commitment),
		EmbodiedCO2:        pick(r.EmbodiedCO2, update.EmbodiedCO2),
		LatestTokenID:      pick(r.LatestTokenID, update.LatestTokenID),
		OriginalTokenID:    pick(r.OriginalTokenID, update.OriginalTokenID),
		RevocationReason:   pick(r.RevocationReason, update.RevocationReason),
	}
}

// CertificateEventRecord is a pending certificate audit trail entry.
type CertificateEventRecord struct {
	Kind          Kind
	ID            string
	CertificateID string
	Event         store.CertificateEventKind
	OccurredAt    time.Time
}

func (r CertificateEventRecord) mergeWith(update CertificateEventRecord) CertificateEventRecord {
	merged := CertificateEventRecord{
		Kind:          mergeKind(r.Kind, update.Kind),
		ID:            pickString(r.ID, update.ID),
		CertificateID: pickString(r.CertificateID, update.CertificateID),
		Event:         store.CertificateEventKind(pickString(string(r.Event), string(update.Event))),
		OccurredAt:    r.OccurredAt,
	}
	if !update.OccurredAt.IsZero() {
		merged.OccurredAt = update.OccurredAt
	}

	return merged
}

// Map is an insertion ordered map from local id to record.
type Map[T any] = orderedmap.OrderedMap[string, T]

// ChangeSet groups pending records per entity kind. A nil map means the kind is untouched.
type ChangeSet struct {
	Attachments       *Map[AttachmentRecord]
	Certificates      *Map[CertificateRecord]
	CertificateEvents *Map[CertificateEventRecord]
}

// IsEmpty reports whether the change set holds no records.
func (c ChangeSet) IsEmpty() bool {
	return size(c.Attachments) == 0 && size(c.Certificates) == 0 && size(c.CertificateEvents) == 0
}

// AddAttachment adds or replaces the attachment record with the same id.
func (c *ChangeSet) AddAttachment(r AttachmentRecord) {
	if c.Attachments == nil {
		c.Attachments = orderedmap.New[string, AttachmentRecord]()
	}
	c.Attachments.Set(r.ID, r)
}

// AddCertificate adds or replaces the certificate record with the same id.
func (c *ChangeSet) AddCertificate(r CertificateRecord) {
	if c.Certificates == nil {
		c.Certificates = orderedmap.New[string, CertificateRecord]()
	}
	c.Certificates.Set(r.ID, r)
}

// AddCertificateEvent adds or replaces the event record with the same id.
func (c *ChangeSet) AddCertificateEvent(r CertificateEventRecord) {
	if c.CertificateEvents == nil {
		c.CertificateEvents = orderedmap.New[string, CertificateEventRecord]()
	}
	c.CertificateEvents.Set(r.ID, r)
}

// AttachmentList returns the attachment records in insertion order.
func (c ChangeSet) AttachmentList() []AttachmentRecord {
	return values(c.Attachments)
}

// CertificateList returns the certificate records in insertion order.
func (c ChangeSet) CertificateList() []CertificateRecord {
	return values(c.Certificates)
}

// CertificateEventList returns the certificate event records in insertion order.
func (c ChangeSet) CertificateEventList() []CertificateEventRecord {
	return values(c.CertificateEvents)
}

// Merge applies update on top of base. For each kind, records with the same id are
// merged field by field with update winning, and the result is an insert if either
// side is. Neither argument is modified.
func Merge(base, update ChangeSet) ChangeSet {
	return ChangeSet{
		Attachments:       mergeMaps(base.Attachments, update.Attachments),
		Certificates:      mergeMaps(base.Certificates, update.Certificates),
		CertificateEvents: mergeMaps(base.CertificateEvents, update.CertificateEvents),
	}
}

// FindLocalID returns the id of the first certificate record whose latest token is tokenID.
func FindLocalID(c ChangeSet, tokenID uint64) (string, bool) {
	if c.Certificates == nil {
		return "", false
	}

	for pair := c.Certificates.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.LatestTokenID != nil && *pair.Value.LatestTokenID == tokenID {
			return pair.Value.ID, true
		}
	}

	return "", false
}

// FindAttachmentID returns the id of the first attachment record stored under ipfsHash.
func FindAttachmentID(c ChangeSet, ipfsHash string) (string, bool) {
	if c.Attachments == nil {
		return "", false
	}

	for pair := c.Attachments.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.IPFSHash == ipfsHash {
			return pair.Value.ID, true
		}
	}

	return "", false
}

type mergeable[T any] interface {
	mergeWith(update T) T
}

func mergeMaps[T mergeable[T]](base, update *Map[T]) *Map[T] {
	if update == nil {
		return base
	}

	result := orderedmap.New[string, T]()
	if base != nil {
		for pair := base.Oldest(); pair != nil; pair = pair.Next() {
			result.Set(pair.Key, pair.Value)
		}
	}

	for pair := update.Oldest(); pair != nil; pair = pair.Next() {
		if existing, ok := result.Get(pair.Key); ok {
			result.Set(pair.Key, existing.mergeWith(pair.Value))
			continue
		}
		result.Set(pair.Key, pair.Value)
	}

	return result
}

func size[T any](m *Map[T]) int {
	if m == nil {
		return 0
	}
	return m.Len()
}

func values[T any](m *Map[T]) []T {
	if m == nil {
		return nil
	}

	out := make([]T, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}

	return out
}
