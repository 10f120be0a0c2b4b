// If you are AI: This file defines AMF0 type markers and the decoded value node.

package amf0

import "fmt"

// AMF0 type markers
const (
	TypeNumber      = 0x00
	TypeBoolean     = 0x01
	TypeString      = 0x02
	TypeObject      = 0x03
	TypeMovieClip   = 0x04
	TypeNull        = 0x05
	TypeUndefined   = 0x06
	TypeReference   = 0x07
	TypeECMAArray   = 0x08
	TypeObjectEnd   = 0x09
	TypeStrictArray = 0x0A
	TypeDate        = 0x0B
	TypeLongString  = 0x0C
	TypeUnsupported = 0x0D
	TypeRecordSet   = 0x0E
	TypeXMLDocument = 0x0F
	TypeTypedObject = 0x10
	TypeAVMPlus     = 0x11
)

// PlaceholderValue is stored on nodes whose type could not be decoded.
const PlaceholderValue = "null/undefined"

// Value is a decoded AMF0 scalar: float64, bool, string, or nil.
type Value interface{}

// Item is one decoded AMF0 node annotated with its byte span in the source.
// Containers (object, ECMA array, strict array) carry Children; every other
// type carries a scalar Value. For arrays Value holds the declared element
// count as float64; for objects it is nil.
type Item struct {
	Type     byte
	Key      string
	Value    Value
	Children []Item
	Offset   int64
	Size     uint32
}

// IsContainer reports whether the node holds child nodes.
func (it *Item) IsContainer() bool {
	return IsContainerType(it.Type)
}

// Count returns the declared element count of an array node, or -1.
func (it *Item) Count() int64 {
	if f, ok := it.Value.(float64); ok && it.IsContainer() {
		return int64(f)
	}
	return -1
}

// Child returns the first direct child with the given key.
func (it *Item) Child(key string) (*Item, bool) {
	for i := range it.Children {
		if it.Children[i].Key == key {
			return &it.Children[i], true
		}
	}
	return nil, false
}

// Walk visits the node and all descendants depth-first in source order.
func (it *Item) Walk(fn func(*Item)) {
	fn(it)
	for i := range it.Children {
		it.Children[i].Walk(fn)
	}
}

// IsContainerType reports whether t is an object or array marker.
func IsContainerType(t byte) bool {
	return t == TypeObject || t == TypeECMAArray || t == TypeStrictArray
}

// TypeName returns a short human name for an AMF0 type marker.
func TypeName(t byte) string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeString:
		return "string"
	case TypeObject:
		return "object"
	case TypeMovieClip:
		return "movieclip"
	case TypeNull:
		return "null"
	case TypeUndefined:
		return "undefined"
	case TypeReference:
		return "reference"
	case TypeECMAArray:
		return "ecma-array"
	case TypeObjectEnd:
		return "object-end"
	case TypeStrictArray:
		return "strict-array"
	case TypeDate:
		return "date"
	case TypeLongString:
		return "long-string"
	case TypeUnsupported:
		return "unsupported"
	case TypeRecordSet:
		return "recordset"
	case TypeXMLDocument:
		return "xml-document"
	case TypeTypedObject:
		return "typed-object"
	case TypeAVMPlus:
		return "avmplus-object"
	default:
		return fmt.Sprintf("type-0x%02x", t)
	}
}
