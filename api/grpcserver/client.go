package grpcserver

import (
	"context"
	"encoding/base64"

	"github.com/cockroachdb/errors"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"rbkv/domain/ordered"
)

// Client is a typed wrapper over a connection to rbkv.KV.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Put(ctx context.Context, key string, value []byte) (uint64, bool, error) {
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"key":   structpb.NewStringValue(key),
		"value": structpb.NewStringValue(base64.StdEncoding.EncodeToString(value)),
	}}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("Put"), req, out); err != nil {
		return 0, false, err
	}
	f := out.GetFields()
	return uint64(f["revision"].GetNumberValue()), f["created"].GetBoolValue(), nil
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, fullMethod("Get"), wrapperspb.String(key), out); err != nil {
		return nil, err
	}
	return out.GetValue(), nil
}

func (c *Client) Delete(ctx context.Context, key string) (uint64, bool, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("Delete"), wrapperspb.String(key), out); err != nil {
		return 0, false, err
	}
	f := out.GetFields()
	return uint64(f["revision"].GetNumberValue()), f["deleted"].GetBoolValue(), nil
}

// Range lists keys in [from, to). An empty to is unbounded; limit 0
// returns everything.
func (c *Client) Range(ctx context.Context, from, to string, limit int) ([]ordered.Entry[string, []byte], error) {
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"from":  structpb.NewStringValue(from),
		"to":    structpb.NewStringValue(to),
		"limit": structpb.NewNumberValue(float64(limit)),
	}}
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, fullMethod("Range"), req, out); err != nil {
		return nil, err
	}
	entries := make([]ordered.Entry[string, []byte], 0, len(out.GetValues()))
	for _, v := range out.GetValues() {
		f := v.GetStructValue().GetFields()
		value, err := base64.StdEncoding.DecodeString(f["value"].GetStringValue())
		if err != nil {
			return nil, errors.Wrap(err, "grpcserver: range value")
		}
		entries = append(entries, ordered.Entry[string, []byte]{Key: f["key"].GetStringValue(), Value: value})
	}
	return entries, nil
}

func (c *Client) Len(ctx context.Context) (int64, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, fullMethod("Len"), &emptypb.Empty{}, out); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}
