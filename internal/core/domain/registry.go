package domain

import (
	"iter"
	"slices"
)

// DuplicatePolicy decides what happens when two manifests export the same name.
type DuplicatePolicy string

const (
	// DuplicateLastWins keeps the entry inserted last.
	DuplicateLastWins DuplicatePolicy = "last-wins"
	// DuplicateError rejects the second insertion.
	DuplicateError DuplicatePolicy = "error"
)

// ParseDuplicatePolicy validates a policy name. The empty string selects last-wins.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(s) {
	case "", DuplicateLastWins:
		return DuplicateLastWins, nil
	case DuplicateError:
		return DuplicateError, nil
	default:
		return "", NewError(ErrInvalidDuplicatePolicy, nil, "policy", s)
	}
}

// PackageRegistry maps exported package names to the files they resolve to.
// It is immutable once built and safe for concurrent reads.
type PackageRegistry struct {
	entries map[string]PackageEntry
	order   []string
}

// Lookup returns the identity registered under name.
func (r *PackageRegistry) Lookup(name string) (FileIdentity, bool) {
	if r == nil {
		return FileIdentity{}, false
	}
	e, ok := r.entries[name]
	return e.Identity, ok
}

// Entry returns the full entry registered under name.
func (r *PackageRegistry) Entry(name string) (PackageEntry, bool) {
	if r == nil {
		return PackageEntry{}, false
	}
	e, ok := r.entries[name]
	return e, ok
}

// Len returns the number of registered names.
func (r *PackageRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Entries yields the registered entries sorted by name.
func (r *PackageRegistry) Entries() iter.Seq[PackageEntry] {
	return func(yield func(PackageEntry) bool) {
		if r == nil {
			return
		}
		for _, name := range r.order {
			if !yield(r.entries[name]) {
				return
			}
		}
	}
}

// Replacement describes a last-wins overwrite reported by the builder.
type Replacement struct {
	Previous PackageEntry
	Current  PackageEntry
}

// RegistryBuilder accumulates entries before freezing them into a PackageRegistry.
type RegistryBuilder struct {
	policy       DuplicatePolicy
	entries      map[string]PackageEntry
	replacements []Replacement
}

// NewRegistryBuilder creates a builder applying the given duplicate policy.
func NewRegistryBuilder(policy DuplicatePolicy) *RegistryBuilder {
	if policy == "" {
		policy = DuplicateLastWins
	}
	return &RegistryBuilder{
		policy:  policy,
		entries: make(map[string]PackageEntry),
	}
}

// Add inserts an entry, applying the duplicate policy on name collisions.
func (b *RegistryBuilder) Add(entry PackageEntry) error {
	prev, exists := b.entries[entry.Name]
	if exists {
		if b.policy == DuplicateError {
			return NewError(ErrDuplicatePackageName, nil,
				"package", entry.Name,
				"first_manifest", prev.Manifest,
				"duplicate_manifest", entry.Manifest,
			)
		}
		b.replacements = append(b.replacements, Replacement{Previous: prev, Current: entry})
	}
	b.entries[entry.Name] = entry
	return nil
}

// Replacements returns the overwrites performed under the last-wins policy, in insertion order.
func (b *RegistryBuilder) Replacements() []Replacement {
	return slices.Clone(b.replacements)
}

// Build freezes the accumulated entries. The builder must not be used afterwards.
func (b *RegistryBuilder) Build() *PackageRegistry {
	order := make([]string, 0, len(b.entries))
	for name := range b.entries {
		order = append(order, name)
	}
	slices.Sort(order)

	entries := b.entries
	b.entries = nil
	return &PackageRegistry{entries: entries, order: order}
}
