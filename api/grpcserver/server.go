// Package grpcserver exposes the key/value service over gRPC.
package grpcserver

import (
	"context"
	"encoding/base64"
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"rbkv/domain/rbtree"
	"rbkv/infra/logutil"
	"rbkv/service"
)

// Server adapts KVService to gRPC.
type Server struct {
	svc *service.KVService
	log *zap.Logger
}

func NewServer(svc *service.KVService, log *zap.Logger) *Server {
	return &Server{svc: svc, log: logutil.OrNop(log)}
}

// -------------------- Commands --------------------

func (s *Server) Put(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := req.GetFields()
	value, err := base64.StdEncoding.DecodeString(f["value"].GetStringValue())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "value is not base64: %v", err)
	}
	rev, created, err := s.svc.Put(f["key"].GetStringValue(), value)
	if err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"revision": structpb.NewNumberValue(float64(rev)),
		"created":  structpb.NewBoolValue(created),
	}}, nil
}

func (s *Server) Delete(_ context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	rev, deleted, err := s.svc.Delete(req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"revision": structpb.NewNumberValue(float64(rev)),
		"deleted":  structpb.NewBoolValue(deleted),
	}}, nil
}

// -------------------- Queries --------------------

func (s *Server) Get(_ context.Context, req *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	v, err := s.svc.Get(req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.Bytes(v), nil
}

// Range is a bounded scan under the service read lock; it stops after
// limit entries.
func (s *Server) Range(_ context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	f := req.GetFields()
	limit, err := rangeLimit(f["limit"].GetNumberValue())
	if err != nil {
		return nil, err
	}
	entries := s.svc.Range(f["from"].GetStringValue(), f["to"].GetStringValue(), limit)

	out := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(entries))}
	for _, e := range entries {
		out.Values = append(out.Values, structpb.NewStructValue(&structpb.Struct{
			Fields: map[string]*structpb.Value{
				"key":   structpb.NewStringValue(e.Key),
				"value": structpb.NewStringValue(base64.StdEncoding.EncodeToString(e.Value)),
			},
		}))
	}
	return out, nil
}

func (s *Server) Len(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	return wrapperspb.Int64(int64(s.svc.Len())), nil
}

// -------------------- Plumbing --------------------

// rangeLimit accepts whole numbers in [0, MaxInt32]; 0 means no limit.
func rangeLimit(v float64) (int, error) {
	if v < 0 || v > math.MaxInt32 || v != math.Trunc(v) {
		return 0, status.Errorf(codes.InvalidArgument, "limit %v is not a whole number in [0, %d]", v, math.MaxInt32)
	}
	return int(v), nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrEmptyKey):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrOutboxFull), errors.Is(err, rbtree.ErrAllocation):
		return status.Error(codes.ResourceExhausted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// LoggingInterceptor logs every unary call with its status code and
// latency.
func LoggingInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	log = logutil.OrNop(log)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.Stringer("code", status.Code(err)),
			zap.Duration("took", time.Since(start)),
		}
		if err != nil {
			log.Debug("rpc failed", append(fields, zap.Error(err))...)
		} else {
			log.Debug("rpc", fields...)
		}
		return resp, err
	}
}
