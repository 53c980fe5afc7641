// Package v1alpha1 exposes the timekeeper over gRPC as daytime.v1alpha1.ClockService.
//
// Requests and responses are google.protobuf.Struct (or Empty for calls
// without arguments), so the service needs no generated stubs.
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "daytime.v1alpha1.ClockService"

// ClockServiceServer is the server API for ClockService
type ClockServiceServer interface {
	GetTime(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Skip(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SkipToMorning(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	SkipToHour(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Sleep(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	SetTimeScale(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Pause(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Resume(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AttendClass(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetStudent(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Talk(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Eat(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Drink(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveState(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// ClockServiceDesc describes ClockService for grpc.ServiceRegistrar
var ClockServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ClockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetTime", newEmpty, ClockServiceServer.GetTime),
		unary("Skip", newStruct, ClockServiceServer.Skip),
		unary("SkipToMorning", newEmpty, ClockServiceServer.SkipToMorning),
		unary("SkipToHour", newStruct, ClockServiceServer.SkipToHour),
		unary("Sleep", newEmpty, ClockServiceServer.Sleep),
		unary("SetTimeScale", newStruct, ClockServiceServer.SetTimeScale),
		unary("Pause", newEmpty, ClockServiceServer.Pause),
		unary("Resume", newStruct, ClockServiceServer.Resume),
		unary("AttendClass", newStruct, ClockServiceServer.AttendClass),
		unary("GetStudent", newEmpty, ClockServiceServer.GetStudent),
		unary("Talk", newStruct, ClockServiceServer.Talk),
		unary("Eat", newStruct, ClockServiceServer.Eat),
		unary("Drink", newStruct, ClockServiceServer.Drink),
		unary("SaveState", newEmpty, ClockServiceServer.SaveState),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "daytime/v1alpha1/clock.proto",
}

// RegisterClockServiceServer registers srv on s
func RegisterClockServiceServer(s grpc.ServiceRegistrar, srv ClockServiceServer) {
	s.RegisterService(&ClockServiceDesc, srv)
}

func newEmpty() *emptypb.Empty   { return new(emptypb.Empty) }
func newStruct() *structpb.Struct { return new(structpb.Struct) }

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// unary builds the method descriptor the protoc plugin would emit for one RPC
func unary[T proto.Message](
	method string,
	newReq func() T,
	call func(ClockServiceServer, context.Context, T) (*structpb.Struct, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ClockServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ClockServiceServer), ctx, req.(T))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ClockServiceClient is the client API for ClockService
type ClockServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewClockServiceClient wraps a connection
func NewClockServiceClient(cc grpc.ClientConnInterface) *ClockServiceClient {
	return &ClockServiceClient{cc: cc}
}

// Call invokes method with req and returns the response struct. A nil req
// sends google.protobuf.Empty.
func (c *ClockServiceClient) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	var in proto.Message = req
	if req == nil {
		in = new(emptypb.Empty)
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
