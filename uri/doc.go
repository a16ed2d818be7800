// Package uri parses, classifies and reconstructs Uniform Resource Identifiers
// following the generic syntax of RFC 3986.
//
// # Data model
//
// A [URI] is immutable and either opaque or hierarchical:
//
//	mailto:user@example.com                  opaque: scheme ":" scheme-specific-part
//	https://user@example.com:8443/p?q=1#top  hierarchical: scheme "://" authority path "?" query "#" fragment
//	/path/to/resource:tag                    hierarchical, relative
//
// A URI is opaque when it has a scheme and its scheme-specific part does not start with "/".
// Every hierarchical URI has a path, possibly empty. Components are kept exactly as written,
// percent escapes are never decoded, and [URI.String] returns the parsed text.
//
// An authority that parses as "[userinfo@]host[:port]" is server-based and exposes its parts.
// Any other authority, e.g. "a:b:c", is registry-based: the authority is present while
// the user info and the host are absent and the port is -1.
//
// # Classification
//
// A closed set of [Predicate] values answers questions about a URI, see [Classify]
// for computing all of them at once. [HasStandardScheme] is evaluated against a
// [SchemeSet], [DefaultSchemes] unless a [Classifier] is configured with another set.
//
// # Reconstruction
//
// A URI is rebuilt from a sparse set of [Components] by the first applicable [Rule]:
//
//	RuleOpaque               scheme, scheme-specific-part, fragment
//	RuleAuthorityDecomposed  scheme, user-info, host, port, path, query, fragment
//	RuleServerBased          scheme, host, path, fragment
//	RuleAuthority            scheme, authority, path, query, fragment
//
// Characters not allowed in a component are percent-encoded, existing escapes are preserved,
// and the result is parsed again so that a built URI is indistinguishable from a parsed one.
// [Builder] is a mutable accumulator on top of [Build], [FromURI] decomposes a URI back into
// components and Build(FromURI(u)) reproduces u for every URI a rule can produce.
//
// # Scheme handlers
//
// A [SchemeHandler] describes the traits of a scheme, e.g. "jar" URIs carry an entry and an
// inner URL, and may correct components before reconstruction. [DefaultSchemeHandlers]
// returns the built-in handlers for the file, jar, jdbc and docker schemes.
package uri
