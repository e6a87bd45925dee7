package domain

// PackageManifest is the subset of package.json that drives entry point discovery.
// A nil field means the key was absent or null.
type PackageManifest struct {
	Name    *string                 `json:"name"`
	Main    *string                 `json:"main"`
	Browser *string                 `json:"browser"`
	Module  *string                 `json:"module"`
	Exports map[string]ExportTarget `json:"exports"`
}

// ExportTarget is the conditional target of one exports subpath.
type ExportTarget struct {
	Import  *string `json:"import"`
	Default *string `json:"default"`
}

// Select returns the import condition, falling back to default.
func (t ExportTarget) Select() (string, bool) {
	if t.Import != nil {
		return *t.Import, true
	}
	if t.Default != nil {
		return *t.Default, true
	}
	return "", false
}

// PackageName returns the manifest name when it is present and non-empty.
func (m *PackageManifest) PackageName() (string, bool) {
	if m == nil || m.Name == nil || *m.Name == "" {
		return "", false
	}
	return *m.Name, true
}

// HasExports reports whether the exports map takes precedence over the legacy fields.
// An empty exports object is treated as absent.
func (m *PackageManifest) HasExports() bool {
	return m != nil && len(m.Exports) > 0
}

// LegacyEntry returns the first present of browser, module and main.
func (m *PackageManifest) LegacyEntry() (field, path string, ok bool) {
	if m == nil {
		return "", "", false
	}
	for _, candidate := range []struct {
		field string
		value *string
	}{
		{"browser", m.Browser},
		{"module", m.Module},
		{"main", m.Main},
	} {
		if candidate.value != nil {
			return candidate.field, *candidate.value, true
		}
	}
	return "", "", false
}
