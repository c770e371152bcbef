package rpc

import (
	"fmt"

	"github.com/francoispqt/gojay"
)

// Codec carries gRPC messages as JSON through gojay instead of protobuf.
type Codec struct{}

const codecName = "gojay"

func (Codec) Name() string { return codecName }

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(gojay.MarshalerJSONObject)
	if !ok {
		return nil, fmt.Errorf("rpc: cannot marshal %T", v)
	}
	return gojay.MarshalJSONObject(m)
}

func (Codec) Unmarshal(data []byte, v any) error {
	u, ok := v.(gojay.UnmarshalerJSONObject)
	if !ok {
		return fmt.Errorf("rpc: cannot unmarshal into %T", v)
	}
	return gojay.UnmarshalJSONObject(data, u)
}
