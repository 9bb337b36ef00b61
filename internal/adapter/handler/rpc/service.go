package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "grocerystock.v1.InventoryService"

type InventoryServiceServer interface {
	GetTable(context.Context, *GetTableRequest) (*GetTableResponse, error)
	ApplyMovement(context.Context, *ApplyMovementRequest) (*ApplyMovementResponse, error)
	Lowest(context.Context, *LowestRequest) (*LowestResponse, error)
	Export(context.Context, *ExportRequest) (*ExportResponse, error)
}

// UnimplementedInventoryServiceServer can be embedded to keep servers
// compiling when methods are added.
type UnimplementedInventoryServiceServer struct{}

func (UnimplementedInventoryServiceServer) GetTable(context.Context, *GetTableRequest) (*GetTableResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTable not implemented")
}

func (UnimplementedInventoryServiceServer) ApplyMovement(context.Context, *ApplyMovementRequest) (*ApplyMovementResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ApplyMovement not implemented")
}

func (UnimplementedInventoryServiceServer) Lowest(context.Context, *LowestRequest) (*LowestResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Lowest not implemented")
}

func (UnimplementedInventoryServiceServer) Export(context.Context, *ExportRequest) (*ExportResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Export not implemented")
}

func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&InventoryService_ServiceDesc, srv)
}

// unaryHandler adapts a typed method to grpc.MethodHandler.
func unaryHandler[Req any, Resp any](method string, call func(InventoryServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(InventoryServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(InventoryServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var InventoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetTable", Handler: unaryHandler("GetTable", InventoryServiceServer.GetTable)},
		{MethodName: "ApplyMovement", Handler: unaryHandler("ApplyMovement", InventoryServiceServer.ApplyMovement)},
		{MethodName: "Lowest", Handler: unaryHandler("Lowest", InventoryServiceServer.Lowest)},
		{MethodName: "Export", Handler: unaryHandler("Export", InventoryServiceServer.Export)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "grocerystock/v1/inventory.proto",
}

type InventoryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewInventoryServiceClient(cc grpc.ClientConnInterface) *InventoryServiceClient {
	return &InventoryServiceClient{cc: cc}
}

func (c *InventoryServiceClient) GetTable(ctx context.Context, in *GetTableRequest, opts ...grpc.CallOption) (*GetTableResponse, error) {
	out := new(GetTableResponse)
	if err := c.invoke(ctx, "GetTable", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryServiceClient) ApplyMovement(ctx context.Context, in *ApplyMovementRequest, opts ...grpc.CallOption) (*ApplyMovementResponse, error) {
	out := new(ApplyMovementResponse)
	if err := c.invoke(ctx, "ApplyMovement", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryServiceClient) Lowest(ctx context.Context, in *LowestRequest, opts ...grpc.CallOption) (*LowestResponse, error) {
	out := new(LowestResponse)
	if err := c.invoke(ctx, "Lowest", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryServiceClient) Export(ctx context.Context, in *ExportRequest, opts ...grpc.CallOption) (*ExportResponse, error) {
	out := new(ExportResponse)
	if err := c.invoke(ctx, "Export", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}
