// Package server exposes the event relay over gRPC for upstream services.
//
// The service is small enough that its descriptor is written by hand: requests and
// responses are google.protobuf.Struct, so no generated code is needed on either side.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"pair-chat/auth"
	"pair-chat/domain/chat"
	"pair-chat/domain/event"
	"pair-chat/errors"
	"pair-chat/services"
	"time"

	grpc3 "github.com/mama165/sdk-go/grpc"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	RelayServiceName    = "relay.v1.RelayService"
	RelayFullMethodName = "/" + RelayServiceName + "/Relay"
)

// RelayServiceServer is implemented by RelayServer and registered through RelayServiceDesc.
type RelayServiceServer interface {
	Relay(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

var RelayServiceDesc = grpc.ServiceDesc{
	ServiceName: RelayServiceName,
	HandlerType: (*RelayServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Relay", Handler: relayHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "relay/v1/relay.proto",
}

func relayHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RelayServiceServer).Relay(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RelayFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RelayServiceServer).Relay(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type RelayServer struct {
	chatService services.IChatService
	log         *slog.Logger
}

var _ RelayServiceServer = (*RelayServer)(nil)

func NewRelayServer(log *slog.Logger, chatService services.IChatService) *RelayServer {
	return &RelayServer{chatService: chatService, log: log}
}

// Relay expects {source_user_id, kind, payload?, occurred_at? (RFC 3339)} and answers {delivered_to}.
func (s *RelayServer) Relay(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	ext, err := ToExternal(in)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	reached, err := s.chatService.Relay(ctx, ext)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	if caller, ok := auth.UserIDFrom(ctx); ok {
		s.log.Debug("event relayed over grpc", "caller", caller, "source", ext.SourceUserID, "kind", ext.Kind)
	}
	out, err := structpb.NewStruct(map[string]any{"delivered_to": reached})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return out, nil
}

// ToExternal maps the loosely typed request onto the relay input.
func ToExternal(in *structpb.Struct) (event.External, error) {
	fields := in.GetFields()
	ext := event.External{
		SourceUserID: chat.UserID(fields["source_user_id"].GetStringValue()),
		Kind:         fields["kind"].GetStringValue(),
	}
	if p := fields["payload"].GetStructValue(); p != nil {
		ext.Payload = p.AsMap()
	}
	if at := fields["occurred_at"].GetStringValue(); at != "" {
		t, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return event.External{}, fmt.Errorf("%w: occurred_at: %w", errors.ErrValidation, err)
		}
		ext.OccurredAt = t
	}
	return ext, nil
}

// NewGRPCServer chains request logging and relay-role authentication, then registers the relay and health services.
func NewGRPCServer(log *slog.Logger, tokens *auth.JWTValidator, relay *RelayServer) (*grpc.Server, *health.Server) {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc3.UnaryLoggingInterceptor(log),
			auth.UnaryInterceptor(tokens, auth.RoleRelay, grpc_health_v1.Health_Check_FullMethodName),
		))
	s.RegisterService(&RelayServiceDesc, relay)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, healthServer)
	healthServer.SetServingStatus(RelayServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	return s, healthServer
}
