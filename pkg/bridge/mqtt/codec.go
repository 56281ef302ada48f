package mqtt

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang/protobuf/jsonpb"
	"github.com/golang/protobuf/proto"
	structpb "github.com/golang/protobuf/ptypes/struct"
)

// ErrMissingOp indicates a request without op.
var ErrMissingOp = errors.New("missing op")

// Request asks the device to run a command.
// Wire form is a google.protobuf.Struct {id, op, args}.
type Request struct {
	ID   string
	Op   string
	Args []string
}

// Reply is sent when a command finished.
// Wire form is a google.protobuf.Struct {id, op, ok, error}.
type Reply struct {
	ID    string
	Op    string
	OK    bool
	Error string
}

// Marshal encodes the request in protobuf binary.
func (r *Request) Marshal() ([]byte, error) {
	args := make([]*structpb.Value, len(r.Args))
	for n, arg := range r.Args {
		args[n] = stringValue(arg)
	}
	return proto.Marshal(&structpb.Struct{Fields: map[string]*structpb.Value{
		"id":   stringValue(r.ID),
		"op":   stringValue(r.Op),
		"args": {Kind: &structpb.Value_ListValue{ListValue: &structpb.ListValue{Values: args}}},
	}})
}

// DecodeRequest decodes a request in protobuf binary or JSON.
func DecodeRequest(payload []byte) (*Request, error) {
	s, err := decodeStruct(payload)
	if err != nil {
		return nil, err
	}
	r := &Request{
		ID: stringField(s, "id"),
		Op: stringField(s, "op"),
	}
	if v := s.Fields["args"]; v != nil {
		switch k := v.Kind.(type) {
		case *structpb.Value_ListValue:
			for _, item := range k.ListValue.GetValues() {
				r.Args = append(r.Args, valueString(item))
			}
		default:
			r.Args = []string{valueString(v)}
		}
	}
	if r.Op == "" {
		return r, ErrMissingOp
	}
	return r, nil
}

// Marshal encodes the reply in protobuf binary.
func (r *Reply) Marshal() ([]byte, error) {
	fields := map[string]*structpb.Value{
		"id": stringValue(r.ID),
		"op": stringValue(r.Op),
		"ok": {Kind: &structpb.Value_BoolValue{BoolValue: r.OK}},
	}
	if r.Error != "" {
		fields["error"] = stringValue(r.Error)
	}
	return proto.Marshal(&structpb.Struct{Fields: fields})
}

// DecodeReply decodes a reply in protobuf binary or JSON.
func DecodeReply(payload []byte) (*Reply, error) {
	s, err := decodeStruct(payload)
	if err != nil {
		return nil, err
	}
	r := &Reply{
		ID:    stringField(s, "id"),
		Op:    stringField(s, "op"),
		OK:    s.Fields["ok"].GetBoolValue(),
		Error: stringField(s, "error"),
	}
	return r, nil
}

// decodeStruct accepts JSON as well so commands can be sent by hand.
func decodeStruct(payload []byte) (*structpb.Struct, error) {
	s := &structpb.Struct{}
	if trimmed := bytes.TrimSpace(payload); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := jsonpb.Unmarshal(bytes.NewReader(trimmed), s); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return s, nil
	}
	if err := proto.Unmarshal(payload, s); err != nil {
		return nil, fmt.Errorf("decode protobuf: %w", err)
	}
	return s, nil
}

func stringValue(s string) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_StringValue{StringValue: s}}
}

func stringField(s *structpb.Struct, key string) string {
	if v := s.Fields[key]; v != nil {
		return valueString(v)
	}
	return ""
}

func valueString(v *structpb.Value) string {
	switch k := v.Kind.(type) {
	case *structpb.Value_StringValue:
		return k.StringValue
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(k.NumberValue, 'f', -1, 64)
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(k.BoolValue)
	}
	return ""
}
