// Package resource locates, enumerates and opens resources by name.
//
// Names follow class loader conventions: they are relative, separated by "/",
// a container name (a directory) ends with "/" and the root container is the empty name.
// [NormalizeName] brings any name into that form.
//
// A [Loader] answers names with URIs and content, [PathLoader] implements it over
// an ordered list of directories and archives.
// Scanners enumerate the names under a container of a "file:" directory or a "jar:" archive,
// openers read the content a "classpath:", "file:" or "jar:" URI points to.
// Both are resolved by scheme through [handler] factories, see [DefaultScanners] and [DefaultOpeners].
package resource

//go:generate go tool errtrace -w .
//go:generate go tool mockgen -destination=../internal/testutil/resourcemock/loader.go -package=resourcemock . Loader
