// Package types contains small value types shared across the module.
package types
