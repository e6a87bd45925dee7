package domain

import "strings"

// RootSubpath is the exports key of a package's main entry.
const RootSubpath = "."

// PackageEntry is one importable name a package exposes.
type PackageEntry struct {
	// Name is the bare specifier, e.g. "pkg" or "pkg/feature".
	Name string
	// Identity is the file the name resolves to.
	Identity FileIdentity
	// Manifest is the path of the package.json that declared the entry.
	Manifest string
}

// ExportedName maps a package name and an exports subpath to the specifier users import.
// "." maps to the package name, "./x" maps to "name/x".
func ExportedName(packageName, subpath string) string {
	if subpath == RootSubpath {
		return packageName
	}
	return packageName + strings.TrimPrefix(subpath, RootSubpath)
}

// ResolutionRequest asks for the file a specifier names when imported from Base.
type ResolutionRequest struct {
	Base      FileIdentity
	Specifier string
}
