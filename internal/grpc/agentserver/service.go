package agentserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service and method names of the decision service
const (
	ServiceName          = "herobattle.agent.v1.AgentService"
	DecideMethod         = "/" + ServiceName + "/Decide"
	ListStrategiesMethod = "/" + ServiceName + "/ListStrategies"
)

// AgentServiceServer is the server API for the decision service. Messages
// are google.protobuf.Struct documents so that any gRPC client can call it
// without generated stubs.
type AgentServiceServer interface {
	// Decide takes {"snapshot": {...}, "strategy": "..."} and returns the move
	Decide(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// ListStrategies returns {"strategies": [...], "default": "..."}
	ListStrategies(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// ServiceDesc describes the decision service for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AgentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Decide", Handler: decideHandler},
		{MethodName: "ListStrategies", Handler: listStrategiesHandler},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterAgentServiceServer registers srv with s
func RegisterAgentServiceServer(s grpc.ServiceRegistrar, srv AgentServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func decideHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AgentServiceServer).Decide(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DecideMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AgentServiceServer).Decide(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listStrategiesHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AgentServiceServer).ListStrategies(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListStrategiesMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AgentServiceServer).ListStrategies(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls the decision service
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a client on an existing connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Decide(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DecideMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListStrategies(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ListStrategiesMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
