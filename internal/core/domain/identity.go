package domain

// IdentityKind distinguishes files on disk from synthetic modules.
type IdentityKind uint8

const (
	// KindConcrete identifies a file on disk by its canonical absolute path.
	KindConcrete IdentityKind = iota + 1
	// KindVirtual identifies a module that has no file on disk.
	KindVirtual
)

// FileIdentity names a module known to the bundler.
// It is a comparable value: two identities are equal when kind and path or tag are equal.
// The zero value is neither concrete nor virtual.
type FileIdentity struct {
	kind  IdentityKind
	value InternedString
}

// Concrete returns the identity of the file at path.
// Callers are expected to pass a canonical path; the constructor does not touch the filesystem.
func Concrete(path string) FileIdentity {
	return FileIdentity{kind: KindConcrete, value: NewInternedString(path)}
}

// Virtual returns the identity of a synthetic module described by tag.
func Virtual(tag string) FileIdentity {
	return FileIdentity{kind: KindVirtual, value: NewInternedString(tag)}
}

// Kind reports whether the identity is concrete or virtual.
func (id FileIdentity) Kind() IdentityKind {
	return id.kind
}

// IsConcrete reports whether the identity names a file on disk.
func (id FileIdentity) IsConcrete() bool {
	return id.kind == KindConcrete
}

// Path returns the file path of a concrete identity.
func (id FileIdentity) Path() (string, bool) {
	if id.kind != KindConcrete {
		return "", false
	}
	return id.value.String(), true
}

// Tag returns the tag of a virtual identity.
func (id FileIdentity) Tag() (string, bool) {
	if id.kind != KindVirtual {
		return "", false
	}
	return id.value.String(), true
}

// String renders the identity for logs and error metadata.
func (id FileIdentity) String() string {
	switch id.kind {
	case KindConcrete:
		return id.value.String()
	case KindVirtual:
		return "virtual:" + id.value.String()
	default:
		return "<invalid>"
	}
}
