package domain

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/pfsuite/pfs_backend/internal/apperrors"
)

// VersionMeta holds the versioning bookkeeping shared by every domain entity.
// Version starts at 1 and increments by exactly one on every state transition
// (update, soft-delete, restore, rollback). Snapshot keeps exactly one prior
// state of the entity, excluding the prior state's own snapshot and deletedAt
// keys, and is used for one-level rollback.
type VersionMeta struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Version   int             `json:"version"`
	DeletedAt *time.Time      `json:"deletedAt,omitempty"`
	Snapshot  json.RawMessage `json:"snapshot,omitempty"`
}

// Meta exposes the embedded versioning fields to the generic helpers below.
func (m *VersionMeta) Meta() *VersionMeta { return m }

// IsDeleted reports whether the entity is soft-deleted.
func (m *VersionMeta) IsDeleted() bool { return m.DeletedAt != nil }

// Versioned is implemented by pointers to every versioned domain entity via
// the embedded VersionMeta.
type Versioned interface {
	Meta() *VersionMeta
}

// Ref constrains a type parameter to "pointer to a versioned entity struct".
type Ref[T any] interface {
	*T
	Versioned
}

// metaKeys are the bookkeeping fields excluded from snapshots and diffs.
var metaKeys = []string{"id", "createdAt", "updatedAt", "version", "snapshot", "deletedAt"}

// NewVersioned returns a copy of e initialised as a brand new entity: fresh
// id, version 1, createdAt == updatedAt. Any id, version, timestamps or
// snapshot already present on the input are ignored and overwritten.
func NewVersioned[T any, PT Ref[T]](e T) T {
	now := time.Now().UTC()
	m := PT(&e).Meta()
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now
	m.Version = 1
	m.DeletedAt = nil
	m.Snapshot = nil
	return e
}

// UpdateVersioned merges a JSON merge-patch into e, capturing the prior state
// as the new snapshot and bumping version/updatedAt. Keys naming versioning
// bookkeeping are stripped from the patch; unknown keys are not validated
// against the entity's schema, that is the caller's responsibility.
func UpdateVersioned[T any, PT Ref[T]](e T, patch json.RawMessage) (T, error) {
	snap, err := snapshotOf(e)
	if err != nil {
		return e, err
	}

	updated := e
	if len(patch) > 0 {
		cleaned, err := stripMetaKeys(patch)
		if err != nil {
			return e, fmt.Errorf("%w: malformed patch: %v", apperrors.ErrValidation, err)
		}
		if err := json.Unmarshal(cleaned, &updated); err != nil {
			return e, fmt.Errorf("%w: patch does not fit entity shape: %v", apperrors.ErrValidation, err)
		}
	}

	m := PT(&updated).Meta()
	m.Snapshot = snap
	m.UpdatedAt = time.Now().UTC()
	m.Version++
	return updated, nil
}

// SoftDelete marks e as logically absent while keeping the record intact and
// retrievable by id. Deleting an already-deleted entity is a validation error.
func SoftDelete[T any, PT Ref[T]](e T) (T, error) {
	m := PT(&e).Meta()
	if m.IsDeleted() {
		return e, fmt.Errorf("%w: entity %s is already deleted", apperrors.ErrValidation, m.ID)
	}
	now := time.Now().UTC()
	m.DeletedAt = &now
	m.UpdatedAt = now
	m.Version++
	return e, nil
}

// Restore clears a prior soft-delete.
func Restore[T any, PT Ref[T]](e T) (T, error) {
	m := PT(&e).Meta()
	if !m.IsDeleted() {
		return e, fmt.Errorf("%w: entity %s is not deleted", apperrors.ErrValidation, m.ID)
	}
	m.DeletedAt = nil
	m.UpdatedAt = time.Now().UTC()
	m.Version++
	return e, nil
}

// RestoreFromSnapshot rolls e back to its captured prior state. The
// pre-rollback state becomes the new snapshot, so rollback is symmetric and
// itself undoable. Fails with apperrors.ErrNoSnapshot when no snapshot exists.
func RestoreFromSnapshot[T any, PT Ref[T]](e T) (T, error) {
	m := PT(&e).Meta()
	if len(m.Snapshot) == 0 {
		return e, fmt.Errorf("%w: entity %s", apperrors.ErrNoSnapshot, m.ID)
	}

	pre, err := snapshotOf(e)
	if err != nil {
		return e, err
	}

	var restored T
	if err := json.Unmarshal(m.Snapshot, &restored); err != nil {
		return e, fmt.Errorf("failed to decode snapshot of entity %s: %w", m.ID, err)
	}

	rm := PT(&restored).Meta()
	rm.ID = m.ID
	rm.DeletedAt = m.DeletedAt
	rm.Snapshot = pre
	rm.UpdatedAt = time.Now().UTC()
	rm.Version = m.Version + 1
	return restored, nil
}

// FieldChange records one field's transition between two entity states.
type FieldChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// ExtractChanges returns a field-by-field diff between two states of the same
// entity, keyed by JSON field name. Versioning bookkeeping fields are
// excluded. Identical states yield an empty map.
func ExtractChanges[T any, PT Ref[T]](old, updated T) (map[string]FieldChange, error) {
	oldFields, err := comparableFields(old)
	if err != nil {
		return nil, err
	}
	newFields, err := comparableFields(updated)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]FieldChange)
	for key, from := range oldFields {
		to, ok := newFields[key]
		if !ok {
			changes[key] = FieldChange{From: from, To: nil}
			continue
		}
		if !reflect.DeepEqual(from, to) {
			changes[key] = FieldChange{From: from, To: to}
		}
	}
	for key, to := range newFields {
		if _, ok := oldFields[key]; !ok {
			changes[key] = FieldChange{From: nil, To: to}
		}
	}
	return changes, nil
}

// FilterActive returns the entities that are not soft-deleted.
func FilterActive[T any, PT Ref[T]](list []T) []T {
	active := make([]T, 0, len(list))
	for i := range list {
		if !PT(&list[i]).Meta().IsDeleted() {
			active = append(active, list[i])
		}
	}
	return active
}

// snapshotOf serialises e without its own snapshot and deletedAt keys,
// producing the opaque one-level rollback capture.
func snapshotOf[T any](e T) (json.RawMessage, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to capture entity snapshot: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to capture entity snapshot: %w", err)
	}
	delete(fields, "snapshot")
	delete(fields, "deletedAt")
	snap, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to capture entity snapshot: %w", err)
	}
	return snap, nil
}

func stripMetaKeys(patch json.RawMessage) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil {
		return nil, err
	}
	for _, key := range metaKeys {
		delete(fields, key)
	}
	return json.Marshal(fields)
}

func comparableFields[T any](e T) (map[string]any, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to serialise entity for diff: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to serialise entity for diff: %w", err)
	}
	for _, key := range metaKeys {
		delete(fields, key)
	}
	return fields, nil
}
