package domain

// Format is the module format of the emitted bundle.
type Format string

const (
	// FormatESM emits an ES module.
	FormatESM Format = "esm"
	// FormatIIFE emits an immediately invoked function expression.
	FormatIIFE Format = "iife"
	// FormatCJS emits a CommonJS module.
	FormatCJS Format = "cjs"
)

// ParseFormat validates a format name. The empty string selects esm.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatESM:
		return FormatESM, nil
	case FormatIIFE:
		return FormatIIFE, nil
	case FormatCJS:
		return FormatCJS, nil
	default:
		return "", NewError(ErrInvalidFormat, nil, "format", s)
	}
}

// BundleConfig is the resolved project configuration.
// All paths are absolute once returned by the config loader.
type BundleConfig struct {
	// Root is the directory relative paths were rebased onto.
	Root string
	// Output is the path the bundle is written to.
	Output string
	// SourceMap is the path the source map is written to. Empty disables it.
	SourceMap string
	// Format is the module format of the bundle.
	Format Format
	// Minify enables minification.
	Minify bool
	// Packages are package directory patterns.
	Packages []string
	// Entries are the files the bundle starts from.
	Entries []string
	// Duplicates decides how duplicate package names are handled.
	Duplicates DuplicatePolicy
	// StrictAbsolutePaths canonicalizes and checks absolute specifiers.
	StrictAbsolutePaths bool
}
