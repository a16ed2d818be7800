// Package handler resolves named handlers through pluggable factories.
//
// A [Factory] answers a name with a handler or reports that it has none.
// Factories compose: a [Chain] asks its members in order and the first hit wins,
// an [Indexed] factory consults only the bucket registered under the requested name
// and a [Named] factory answers exactly one name.
//
// A [Registry] is a factory backed by a [Discoverer]. It discovers the available
// factories lazily, at most once per generation, memoizes the handlers it resolved and
// can be [Registry.Reset] to start a new generation.
//
// A miss is never an error: every factory returns the zero handler and false.
package handler
