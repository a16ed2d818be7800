package util

import "iter"

func IterFirst[V any](seq iter.Seq[V]) (V, bool) {
	for v := range seq {
		return v, true
	}
	var v V
	return v, false
}
