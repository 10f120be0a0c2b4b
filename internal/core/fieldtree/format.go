// If you are AI: This file provides the pure value formatters attached to tree nodes.

package fieldtree

import (
	"fmt"
	"strconv"
	"time"

	"flvedit/internal/core/protocol/amf0"
)

// FormatDefault renders numbers with 10 significant digits, booleans as
// true/false, strings verbatim, and nil as an empty string.
func FormatDefault(v Value) string {
	switch x := v.(type) {
	case float64:
		return formatNumber(x)
	case bool:
		return strconv.FormatBool(x)
	case string:
		return x
	default:
		return ""
	}
}

// formatNumber renders a float like "%g" with 10 significant digits.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', 10, 64)
}

// Enum returns a formatter rendering "name (value)" via a lookup table.
func Enum(name func(byte) string) Formatter {
	return func(v Value) string {
		f, ok := v.(float64)
		if !ok {
			return ""
		}
		return fmt.Sprintf("%s (%s)", name(byte(f)), formatNumber(f))
	}
}

// formatAMFNumber renders "12.5 (double)".
func formatAMFNumber(v Value) string {
	if f, ok := v.(float64); ok {
		return formatNumber(f) + " (double)"
	}
	return ""
}

// formatAMFBoolean renders "true (bool)".
func formatAMFBoolean(v Value) string {
	if b, ok := v.(bool); ok {
		return strconv.FormatBool(b) + " (bool)"
	}
	return ""
}

// formatAMFString renders "value (string)".
func formatAMFString(v Value) string {
	if s, ok := v.(string); ok {
		return s + " (string)"
	}
	return ""
}

// formatAMFDate renders the millisecond timestamp as UTC RFC 3339.
func formatAMFDate(v Value) string {
	if f, ok := v.(float64); ok {
		return time.UnixMilli(int64(f)).UTC().Format(time.RFC3339Nano) + " (date)"
	}
	return ""
}

// formatAMFNull renders null and undefined values.
func formatAMFNull(Value) string {
	return "null"
}

// formatAMFContainer renders "(array size N)" for a positive count and "(object)" otherwise.
func formatAMFContainer(v Value) string {
	if f, ok := v.(float64); ok && f > 0 {
		return fmt.Sprintf("(array size %s)", formatNumber(f))
	}
	return "(object)"
}

// formatAMFUnknown renders a node of an undecodable type as "null/undefined (reference)".
func formatAMFUnknown(typ byte) Formatter {
	return func(v Value) string {
		if s := FormatDefault(v); s != "" {
			return s + " (" + amf0.TypeName(typ) + ")"
		}
		return amf0.TypeName(typ)
	}
}
