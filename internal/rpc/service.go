// Package rpc exposes the pipeline as the gRPC service dnastore.v1.Pipeline.
// Messages travel as JSON through the gojay codec, so there is no generated
// protobuf code: the service descriptor below is written by hand.
package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName = "dnastore.v1.Pipeline"
	RunMethod   = "/" + ServiceName + "/Run"
)

// PipelineService is implemented by Server.
type PipelineService interface {
	Run(ctx context.Context, req *RunRequest) (*RunResponse, error)
}

func runHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RunRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PipelineService).Run(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RunMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PipelineService).Run(ctx, req.(*RunRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PipelineService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Run", Handler: runHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dnastore/v1/pipeline",
}

// Register attaches svc to s. s must have been created with ServerOptions.
func Register(s grpc.ServiceRegistrar, svc PipelineService) {
	s.RegisterService(&serviceDesc, svc)
}

// ServerOptions force the gojay codec on the server side.
func ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{grpc.ForceServerCodec(Codec{})}
}
