// If you are AI: This file implements AMF0 decoding for FLV script data tags.
// Every decoded node records the exact byte span it was read from.

package amf0

import (
	"errors"
	"fmt"
	"io"

	"flvedit/internal/core/protocol/cursor"
)

// maxDepth bounds container nesting so hostile input cannot exhaust the stack.
const maxDepth = 256

var (
	ErrUnknownType = errors.New("amf0: unknown type")
	ErrScriptName  = errors.New("amf0: script data must start with a string")
	ErrTooDeep     = errors.New("amf0: nesting too deep")
)

// UnknownTypeError reports a type marker the decoder cannot interpret.
type UnknownTypeError struct {
	Type   byte
	Offset int64
}

// Error implements the error interface.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("amf0: unknown type 0x%02x at offset 0x%x", e.Type, e.Offset)
}

// Is makes errors.Is(err, ErrUnknownType) match.
func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// DecodeScript decodes an FLV script payload: a STRING name followed by one value.
// end is the absolute position where the payload ends; the value is only read
// when the name leaves bytes before end. The returned item is populated as far
// as decoding got, even when an error is returned.
func DecodeScript(c *cursor.Cursor, end int64) (root Item, err error) {
	start := c.Pos()
	root.Offset = start
	defer func() {
		root.Size = uint32(c.Pos() - start)
	}()

	typ, err := c.U8()
	if err != nil {
		return root, err
	}
	if typ != TypeString {
		root.Type = typ
		root.Key = fmt.Sprintf("error type: 0x%02x", typ)
		return root, fmt.Errorf("%w: got 0x%02x", ErrScriptName, typ)
	}

	if root.Key, err = readString(c); err != nil {
		return root, err
	}
	root.Type = TypeString
	if c.Pos() >= end {
		return root, nil
	}

	if root.Type, err = c.U8(); err != nil {
		return root, err
	}
	if root.IsContainer() {
		err = DecodeContainer(c, &root)
	} else {
		err = decodeValue(c, &root, 0)
	}
	return root, err
}

// DecodeContainer decodes the body of an object, ECMA array, or strict array
// into item, whose Type must already be set and whose type byte has already
// been consumed. Objects and ECMA arrays end at the empty-name END marker; the
// ECMA count is recorded but not trusted. Strict arrays read exactly the
// declared number of unnamed values.
func DecodeContainer(c *cursor.Cursor, item *Item) error {
	return decodeContainer(c, item, 0)
}

// decodeContainer is DecodeContainer with a nesting depth guard.
func decodeContainer(c *cursor.Cursor, item *Item, depth int) error {
	if depth >= maxDepth {
		return ErrTooDeep
	}

	strict := item.Type == TypeStrictArray
	var remaining uint32
	switch item.Type {
	case TypeECMAArray, TypeStrictArray:
		count, err := c.U32()
		if err != nil {
			return err
		}
		item.Value = float64(count)
		remaining = count
	case TypeObject:
		item.Value = nil
	default:
		return &UnknownTypeError{Type: item.Type, Offset: item.Offset}
	}

	for {
		if strict {
			if remaining == 0 {
				return nil
			}
			remaining--
		}

		start := c.Pos()
		var name string
		var typ byte
		var err error
		if strict {
			typ, err = c.U8()
		} else {
			if name, err = readString(c); err != nil {
				return err
			}
			typ, err = c.U8()
			if err == nil && name == "" && typ == TypeObjectEnd {
				return nil
			}
		}
		if err != nil {
			return err
		}

		child := Item{Type: typ, Key: name, Offset: start}
		err = decodeValue(c, &child, depth+1)
		child.Size = uint32(c.Pos() - start)
		item.Children = append(item.Children, child)
		if err != nil {
			return err
		}
	}
}

// decodeValue fills item from the bytes following its type marker.
func decodeValue(c *cursor.Cursor, item *Item, depth int) error {
	var err error
	switch item.Type {
	case TypeNumber:
		item.Value, err = readNumber(c)
	case TypeBoolean:
		item.Value, err = readBoolean(c)
	case TypeString:
		item.Value, err = readString(c)
	case TypeLongString:
		item.Value, err = readLongString(c)
	case TypeDate:
		// Milliseconds since epoch followed by a reserved 2-byte timezone.
		var ms float64
		if ms, err = readNumber(c); err == nil {
			item.Value = ms
			_, err = c.U16()
		}
	case TypeNull, TypeUndefined:
		item.Value = nil
	case TypeObject, TypeECMAArray, TypeStrictArray:
		err = decodeContainer(c, item, depth)
	default:
		item.Value = PlaceholderValue
		err = &UnknownTypeError{Type: item.Type, Offset: item.Offset}
	}
	return err
}

// readNumber decodes an AMF0 number (double precision float64).
func readNumber(c *cursor.Cursor) (float64, error) {
	return c.F64()
}

// readBoolean decodes an AMF0 boolean; any nonzero byte is true.
func readBoolean(c *cursor.Cursor) (bool, error) {
	b, err := c.U8()
	return b != 0, err
}

// readString decodes a 2-byte length-prefixed UTF-8 string.
func readString(c *cursor.Cursor) (string, error) {
	n, err := c.U16()
	if err != nil {
		return "", err
	}
	return readUTF8(c, int64(n))
}

// readLongString decodes a 4-byte length-prefixed UTF-8 string.
func readLongString(c *cursor.Cursor) (string, error) {
	n, err := c.U32()
	if err != nil {
		return "", err
	}
	return readUTF8(c, int64(n))
}

// readUTF8 reads n raw bytes as a string.
func readUTF8(c *cursor.Cursor, n int64) (string, error) {
	if n == 0 {
		return "", nil
	}
	if n > c.Remaining() {
		return "", io.ErrUnexpectedEOF
	}
	b, err := c.Bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
