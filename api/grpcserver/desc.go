package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const serviceName = "rbkv.KV"

// KVServer is the server side of the rbkv.KV service. Messages are
// protobuf well-known types, so no generated code is needed.
type KVServer interface {
	Put(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Get(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	Delete(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Range(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	Len(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
}

// ServiceDesc describes rbkv.KV for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*KVServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Put", KVServer.Put),
		unary("Get", KVServer.Get),
		unary("Delete", KVServer.Delete),
		unary("Range", KVServer.Range),
		unary("Len", KVServer.Len),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rbkv/kv.proto",
}

// Register attaches srv to s.
func Register(s grpc.ServiceRegistrar, srv KVServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func fullMethod(name string) string {
	return "/" + serviceName + "/" + name
}

func unary[Req any, PReq interface {
	*Req
	proto.Message
}, Resp proto.Message](name string, call func(KVServer, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(KVServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(KVServer), ctx, req.(PReq))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
