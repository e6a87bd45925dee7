package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestRead is returned when a package manifest cannot be read or is not valid UTF-8.
	ErrManifestRead = zerr.New("failed to read package manifest")

	// ErrManifestParse is returned when a package manifest does not match the expected JSON shape.
	ErrManifestParse = zerr.New("failed to parse package manifest")

	// ErrMissingPackageName is returned when a manifest has no name and cannot be registered.
	ErrMissingPackageName = zerr.New("package manifest has no name")

	// ErrMissingEntryPoint is returned when a manifest has no exports and none of browser, module or main.
	ErrMissingEntryPoint = zerr.New("package manifest has no entry point")

	// ErrUnresolvedEntryPoint is returned when the legacy entry point file does not exist.
	ErrUnresolvedEntryPoint = zerr.New("package entry point could not be resolved")

	// ErrInvalidExportSubpath is returned when an exports key does not start with ".".
	ErrInvalidExportSubpath = zerr.New("export subpath must start with '.'")

	// ErrMissingConditionEntry is returned when an export target has neither import nor default.
	ErrMissingConditionEntry = zerr.New("export target has no 'import' or 'default' condition")

	// ErrUnresolvedExportTarget is returned when an export target file does not exist.
	ErrUnresolvedExportTarget = zerr.New("export target could not be resolved")

	// ErrDuplicatePackageName is returned when two manifests register the same exported name
	// and the duplicate policy is set to error.
	ErrDuplicatePackageName = zerr.New("duplicate package name")

	// ErrInvalidDuplicatePolicy is returned when the duplicate policy is not last-wins or error.
	ErrInvalidDuplicatePolicy = zerr.New("invalid duplicate policy, expected 'last-wins' or 'error'")

	// ErrBaseNotResolvable is returned when a relative specifier is resolved against a virtual identity.
	ErrBaseNotResolvable = zerr.New("importer is not a file on disk")

	// ErrUnresolvedRelativePath is returned when a relative specifier does not name an existing file.
	ErrUnresolvedRelativePath = zerr.New("relative import could not be resolved")

	// ErrUnresolvedAbsolutePath is returned in strict mode when an absolute specifier does not exist.
	ErrUnresolvedAbsolutePath = zerr.New("absolute import could not be resolved")

	// ErrUnsupportedIdentity is returned when the loader is asked to load a virtual identity.
	ErrUnsupportedIdentity = zerr.New("unsupported module identity")

	// ErrModuleRead is returned when a module source cannot be read.
	ErrModuleRead = zerr.New("failed to read module source")

	// ErrDuplicateOrAmbiguousOutput is returned when the bundler does not produce exactly one output.
	ErrDuplicateOrAmbiguousOutput = zerr.New("bundler produced duplicate or ambiguous output")

	// ErrBundleFailed is returned when the bundler reports errors.
	ErrBundleFailed = zerr.New("bundle failed")

	// ErrNoEntries is returned when no entry files are configured.
	ErrNoEntries = zerr.New("no entry files specified")

	// ErrEntryNotFound is returned when an entry file does not exist.
	ErrEntryNotFound = zerr.New("entry file not found")

	// ErrNoOutput is returned when no output path is configured.
	ErrNoOutput = zerr.New("no output path specified")

	// ErrOutputWriteFailed is returned when the bundle or source map cannot be written.
	ErrOutputWriteFailed = zerr.New("failed to write bundle output")

	// ErrPackageDirNotFound is returned when a package directory is missing or has no manifest.
	ErrPackageDirNotFound = zerr.New("package directory not found or has no package.json")

	// ErrPackageDirUnreadable is returned when a recursive package directory pattern cannot be walked.
	ErrPackageDirUnreadable = zerr.New("package directory could not be read")

	// ErrInvalidPackagePattern is returned when a package directory pattern is malformed.
	ErrInvalidPackagePattern = zerr.New("invalid package directory pattern")

	// ErrInvalidFormat is returned when the output format is not esm, iife or cjs.
	ErrInvalidFormat = zerr.New("invalid output format, expected 'esm', 'iife' or 'cjs'")

	// ErrStoreCreateFailed is returned when the bundle info store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create bundle info store directory")

	// ErrStoreReadFailed is returned when the bundle info cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read bundle info")

	// ErrStoreUnmarshalFailed is returned when the bundle info cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal bundle info")

	// ErrStoreMarshalFailed is returned when the bundle info cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal bundle info")

	// ErrStoreWriteFailed is returned when the bundle info cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write bundle info")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when the config file cannot be found.
	ErrConfigNotFound = zerr.New("could not find knit.yaml")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrCleanFailed is returned when the state directory cannot be removed.
	ErrCleanFailed = zerr.New("failed to remove state directory")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to start file watcher")
)

// NewError returns an error of the given kind.
// The result matches kind and cause with errors.Is and carries kv as zerr metadata.
// kv is a flat list of string keys and values.
func NewError(kind, cause error, kv ...any) error {
	var err error
	if cause == nil {
		err = zerr.Wrap(kind, "")
	} else {
		err = zerr.Wrap(&kindError{kind: kind, cause: cause}, "")
	}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		err = zerr.With(err, key, kv[i+1])
	}
	return err
}

// kindError joins a sentinel with the error that caused it.
type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

// Message returns the sentinel message without the cause.
func (e *kindError) Message() string {
	return e.kind.Error()
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.cause}
}
