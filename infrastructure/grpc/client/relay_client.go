// Package client calls the relay service from upstream producers such as a check-in service.
package client

import (
	"context"
	"fmt"
	"pair-chat/domain/event"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

const relayFullMethodName = "/relay.v1.RelayService/Relay"

type RelayClient struct {
	conn  grpc.ClientConnInterface
	token string
}

func NewRelayClient(conn grpc.ClientConnInterface, token string) *RelayClient {
	return &RelayClient{conn: conn, token: token}
}

// Relay returns how many live connections received the event.
func (c *RelayClient) Relay(ctx context.Context, ext event.External) (int, error) {
	fields := map[string]any{
		"source_user_id": string(ext.SourceUserID),
		"kind":           ext.Kind,
	}
	if ext.Payload != nil {
		fields["payload"] = ext.Payload
	}
	if !ext.OccurredAt.IsZero() {
		fields["occurred_at"] = ext.OccurredAt.UTC().Format(time.RFC3339Nano)
	}
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return 0, fmt.Errorf("payload is not representable: %w", err)
	}

	if c.token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.token)
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, relayFullMethodName, in, out); err != nil {
		return 0, err
	}
	return int(out.GetFields()["delivered_to"].GetNumberValue()), nil
}
