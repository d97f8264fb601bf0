package auth_test

import (
	"context"
	"pair-chat/auth"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	relayMethod  = "/relay.v1.RelayService/Relay"
	healthMethod = "/grpc.health.v1.Health/Check"
)

func TestUnaryInterceptor(t *testing.T) {
	v, err := auth.NewJWTValidator("a-test-secret-that-is-long-enough-0123", "pair-chat", time.Hour)
	require.NoError(t, err)
	interceptor := auth.UnaryInterceptor(v, auth.RoleRelay, healthMethod)

	// The handler echoes the context so injected values can be inspected
	echo := func(ctx context.Context, req any) (any, error) {
		return ctx, nil
	}
	withToken := func(token string) context.Context {
		return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
	}

	t.Run("should allow public methods without token", func(t *testing.T) {
		req := require.New(t)
		res, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: healthMethod}, echo)
		req.NoError(err)
		req.NotNil(res)
	})

	t.Run("should fail when metadata is missing on protected method", func(t *testing.T) {
		req := require.New(t)
		_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: relayMethod}, echo)
		req.Equal(codes.Unauthenticated, status.Code(err))
	})

	t.Run("should fail with invalid token", func(t *testing.T) {
		req := require.New(t)
		_, err := interceptor(withToken("invalid-token-string"), nil, &grpc.UnaryServerInfo{FullMethod: relayMethod}, echo)
		req.Equal(codes.Unauthenticated, status.Code(err))
		req.Contains(err.Error(), "invalid or expired token")
	})

	t.Run("should refuse a valid token without the role", func(t *testing.T) {
		req := require.New(t)
		token, err := v.GenerateToken("alice", auth.RoleUser)
		req.NoError(err)
		_, err = interceptor(withToken(token), nil, &grpc.UnaryServerInfo{FullMethod: relayMethod}, echo)
		req.Equal(codes.PermissionDenied, status.Code(err))
	})

	t.Run("should succeed and inject user_id when token is valid", func(t *testing.T) {
		req := require.New(t)
		token, err := v.GenerateToken("checkins", auth.RoleRelay)
		req.NoError(err)

		res, err := interceptor(withToken(token), nil, &grpc.UnaryServerInfo{FullMethod: relayMethod}, echo)

		req.NoError(err)
		userID, ok := auth.UserIDFrom(res.(context.Context))
		req.True(ok)
		req.Equal("checkins", userID)
	})
}
