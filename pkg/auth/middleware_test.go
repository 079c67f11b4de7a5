package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const cancelMethod = "/crest.accrual.v1.AccrualService/CancelAccrual"

func passThroughHandler(called *bool, capturedCtx *context.Context) grpc.UnaryHandler {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		*called = true
		if capturedCtx != nil {
			*capturedCtx = ctx
		}
		return "ok", nil
	}
}

func TestUnaryAuthInterceptor(t *testing.T) {
	svc := hmacService(t, "unit-test-secret")
	interceptor := UnaryAuthInterceptor(svc, []string{
		"/grpc.health.v1.Health/Check",
		"/grpc.health.v1.Health/Watch",
	})

	t.Run("rejects calls without metadata", func(t *testing.T) {
		var called bool
		_, err := interceptor(context.Background(), nil,
			&grpc.UnaryServerInfo{FullMethod: cancelMethod},
			passThroughHandler(&called, nil))

		require.Error(t, err)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
		assert.False(t, called)
	})

	t.Run("rejects calls without an authorization header", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.MD{})

		var called bool
		_, err := interceptor(ctx, nil,
			&grpc.UnaryServerInfo{FullMethod: cancelMethod},
			passThroughHandler(&called, nil))

		require.Error(t, err)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
		assert.False(t, called)
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(),
			metadata.Pairs("authorization", "Bearer not-a-token"))

		var called bool
		_, err := interceptor(ctx, nil,
			&grpc.UnaryServerInfo{FullMethod: cancelMethod},
			passThroughHandler(&called, nil))

		require.Error(t, err)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
		assert.False(t, called)
	})

	t.Run("passes valid bearer tokens and attaches claims", func(t *testing.T) {
		token, err := svc.GenerateToken("ops-user-1", "Crest Bank", []string{RoleOperator})
		require.NoError(t, err)

		ctx := metadata.NewIncomingContext(context.Background(),
			metadata.Pairs("authorization", "Bearer "+token))

		var called bool
		var handlerCtx context.Context
		resp, err := interceptor(ctx, nil,
			&grpc.UnaryServerInfo{FullMethod: cancelMethod},
			passThroughHandler(&called, &handlerCtx))

		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
		require.True(t, called)

		claims, ok := ClaimsFromContext(handlerCtx)
		require.True(t, ok)
		assert.Equal(t, "ops-user-1", claims.Subject)
		assert.Equal(t, "Crest Bank", claims.Company)
	})

	t.Run("health checks bypass authentication", func(t *testing.T) {
		var called bool
		_, err := interceptor(context.Background(), nil,
			&grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"},
			passThroughHandler(&called, nil))

		require.NoError(t, err)
		assert.True(t, called)
	})
}

func TestClaimsFromContext_Empty(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	assert.False(t, ok)
}
