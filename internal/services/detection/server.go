package detection

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName  = "safety.inference.v1.DetectionService"
	DetectMethod = "/" + ServiceName + "/Detect"
)

// DetectionServer is implemented by inference backends
type DetectionServer interface {
	Detect(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DetectionServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Detect", Handler: detectHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "safety/inference/v1/detection.proto",
}

// RegisterDetectionServer registers srv on a gRPC server
func RegisterDetectionServer(s grpc.ServiceRegistrar, srv DetectionServer) {
	s.RegisterService(&serviceDesc, srv)
}

func detectHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DetectionServer).Detect(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DetectMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DetectionServer).Detect(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
