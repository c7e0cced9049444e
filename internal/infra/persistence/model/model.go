// Package model holds the document tree representations of the domain
// entities. Field names mirror the stored JSON schema, so these types are the
// single place the wire layout is spelled out.
package model

import (
	"encoding/json"
	"time"
)

// Timestamps are written as the backend's server-clock placeholder and read
// back as epoch milliseconds, so timestamp fields are typed as any.

// TimeOf converts a stored timestamp value to time.Time. Placeholders and
// absent values map to the zero time.
func TimeOf(v any) time.Time {
	switch ms := v.(type) {
	case float64:
		return time.UnixMilli(int64(ms))
	case int64:
		return time.UnixMilli(ms)
	case json.Number:
		n, err := ms.Int64()
		if err != nil {
			return time.Time{}
		}

		return time.UnixMilli(n)
	default:
		return time.Time{}
	}
}
