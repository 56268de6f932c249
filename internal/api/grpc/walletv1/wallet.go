// Package walletv1 declares the wallet.v1.Wallet gRPC service.
//
// Requests and responses are protobuf well-known types: structured payloads
// travel as google.protobuf.Struct, empty ones as google.protobuf.Empty.
package walletv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "wallet.v1.Wallet"

const (
	CreateProfileFullMethodName      = "/wallet.v1.Wallet/CreateProfile"
	RestoreProfileFullMethodName     = "/wallet.v1.Wallet/RestoreProfile"
	UnlockFullMethodName             = "/wallet.v1.Wallet/Unlock"
	GetProfileFullMethodName         = "/wallet.v1.Wallet/GetProfile"
	GetPublicContractFullMethodName  = "/wallet.v1.Wallet/GetPublicContract"
	GetPrivateContractFullMethodName = "/wallet.v1.Wallet/GetPrivateContract"
	StoreContractFullMethodName      = "/wallet.v1.Wallet/StoreContract"
	AddRecordFullMethodName          = "/wallet.v1.Wallet/AddRecord"
	UpdateRecordFullMethodName       = "/wallet.v1.Wallet/UpdateRecord"
	RemoveRecordFullMethodName       = "/wallet.v1.Wallet/RemoveRecord"
	ClearFullMethodName              = "/wallet.v1.Wallet/Clear"
)

// WalletServer is the server API for the wallet.v1.Wallet service.
type WalletServer interface {
	CreateProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RestoreProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Unlock(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProfile(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetPublicContract(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetPrivateContract(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	StoreContract(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddRecord(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateRecord(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveRecord(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Clear(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
}

// RegisterWalletServer registers srv on s.
func RegisterWalletServer(s grpc.ServiceRegistrar, srv WalletServer) {
	s.RegisterService(&Wallet_ServiceDesc, srv)
}

// Wallet_ServiceDesc is the grpc.ServiceDesc for the wallet.v1.Wallet service.
var Wallet_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WalletServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateProfile",
			Handler: unaryHandler(CreateProfileFullMethodName, func(s WalletServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.CreateProfile(ctx, in)
			}),
		},
		{
			MethodName: "RestoreProfile",
			Handler: unaryHandler(RestoreProfileFullMethodName, func(s WalletServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.RestoreProfile(ctx, in)
			}),
		},
		{
			MethodName: "Unlock",
			Handler: unaryHandler(UnlockFullMethodName, func(s WalletServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.Unlock(ctx, in)
			}),
		},
		{
			MethodName: "GetProfile",
			Handler: unaryHandler(GetProfileFullMethodName, func(s WalletServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.GetProfile(ctx, in)
			}),
		},
		{
			MethodName: "GetPublicContract",
			Handler: unaryHandler(GetPublicContractFullMethodName, func(s WalletServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.GetPublicContract(ctx, in)
			}),
		},
		{
			MethodName: "GetPrivateContract",
			Handler: unaryHandler(GetPrivateContractFullMethodName, func(s WalletServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.GetPrivateContract(ctx, in)
			}),
		},
		{
			MethodName: "StoreContract",
			Handler: unaryHandler(StoreContractFullMethodName, func(s WalletServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.StoreContract(ctx, in)
			}),
		},
		{
			MethodName: "AddRecord",
			Handler: unaryHandler(AddRecordFullMethodName, func(s WalletServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.AddRecord(ctx, in)
			}),
		},
		{
			MethodName: "UpdateRecord",
			Handler: unaryHandler(UpdateRecordFullMethodName, func(s WalletServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.UpdateRecord(ctx, in)
			}),
		},
		{
			MethodName: "RemoveRecord",
			Handler: unaryHandler(RemoveRecordFullMethodName, func(s WalletServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.RemoveRecord(ctx, in)
			}),
		},
		{
			MethodName: "Clear",
			Handler: unaryHandler(ClearFullMethodName, func(s WalletServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.Clear(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "wallet/v1/wallet.proto",
}

func unaryHandler[Req any](fullMethod string, call func(WalletServer, context.Context, *Req) (any, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(WalletServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(WalletServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
