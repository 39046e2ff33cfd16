package api

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Message is implemented by every request and response type. Encoding
// follows the protobuf wire format described in credkit.proto.
type Message interface {
	MarshalProto(b []byte) []byte
	UnmarshalProto(b []byte) error
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendInt(b []byte, num protowire.Number, v int) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

// field is one decoded tag/value pair. Only the member matching typ is set.
type field struct {
	num    protowire.Number
	typ    protowire.Type
	bytes  []byte
	varint uint64
}

func (f field) wireTypeError() error {
	return fmt.Errorf("field %d: unexpected wire type %d", f.num, f.typ)
}

func (f field) setString(dst *string) error {
	if f.typ != protowire.BytesType {
		return f.wireTypeError()
	}
	*dst = string(f.bytes)
	return nil
}

func (f field) setBytes(dst *[]byte) error {
	if f.typ != protowire.BytesType {
		return f.wireTypeError()
	}
	*dst = append([]byte(nil), f.bytes...)
	return nil
}

func (f field) setInt(dst *int) error {
	if f.typ != protowire.VarintType {
		return f.wireTypeError()
	}
	*dst = int(int64(f.varint))
	return nil
}

// consumeFields walks b and calls visit for every field. Unknown fields are
// passed to visit too; callers ignore numbers they do not know.
func consumeFields(b []byte, visit func(f field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		case protowire.VarintType:
			f.varint, n = protowire.ConsumeVarint(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		if err := visit(f); err != nil {
			return err
		}
	}
	return nil
}

// skipAll decodes messages without fields, still rejecting malformed input.
func skipAll(b []byte) error {
	return consumeFields(b, func(field) error { return nil })
}
