package api

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the content-subtype carried in the grpc content-type header.
// It is the standard protobuf name, so generic tooling can talk to the
// daemon given credkit.proto.
const CodecName = "proto"

// Codec encodes Message values in the protobuf wire format.
type Codec struct{}

var _ encoding.Codec = Codec{}

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("proto codec marshal: %T is not an api message", v)
	}
	return m.MarshalProto(nil), nil
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("proto codec unmarshal: %T is not an api message", v)
	}
	if err := m.UnmarshalProto(data); err != nil {
		return fmt.Errorf("proto codec unmarshal %T: %w", v, err)
	}
	return nil
}

func (Codec) Name() string {
	return CodecName
}

// ServerCodec is the server option that installs Codec.
func ServerCodec() grpc.ServerOption {
	return grpc.ForceServerCodec(Codec{})
}

// CallCodec is the call option that installs Codec.
func CallCodec() grpc.CallOption {
	return grpc.ForceCodec(Codec{})
}
