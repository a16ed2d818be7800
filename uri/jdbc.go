package uri

import (
	"strings"

	"braces.dev/errtrace"
)

// JDBCProperties returns the ";key=value" properties of a "jdbc" URI.
//
//	jdbc:sqlserver://localhost:1433;databaseName=db;encrypt=true
//
// Keys and values are trimmed, properties without "=" are skipped.
func JDBCProperties(u *URI) (map[string]string, error) {
	if err := SchemeJDBC.Require(u); err != nil {
		return nil, errtrace.Wrap(err)
	}
	props := make(map[string]string)
	_, rest, ok := strings.Cut(u.SchemeSpecificPart(), ";")
	if !ok {
		return props, nil
	}
	for p := range strings.SplitSeq(rest, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok {
			continue
		}
		props[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return props, nil
}

// JDBCInner returns the driver URI wrapped by a "jdbc" URI, without the properties.
//
//	jdbc:mysql://localhost:3306/db -> mysql://localhost:3306/db
func JDBCInner(u *URI) (*URI, error) {
	if err := SchemeJDBC.Require(u); err != nil {
		return nil, errtrace.Wrap(err)
	}
	inner, _, _ := strings.Cut(u.SchemeSpecificPart(), ";")
	return errtrace.Wrap2(Parse(inner))
}
