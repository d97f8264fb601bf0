package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"pair-chat/auth"
	"pair-chat/domain/chat"
	"pair-chat/infrastructure/grpc/client"
	ws "pair-chat/infrastructure/websocket"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

type BaseSuite struct {
	suite.Suite
	Config Config
	Tokens *auth.JWTValidator
}

// SetupSuite loads the environment and skips the suite when no server is configured.
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.HTTPAddr == "" {
		s.T().Skip("E2E_HTTP_ADDR is not set")
	}
	s.Tokens, err = auth.NewJWTValidator(s.Config.JWTSecret, s.Config.JWTIssuer, time.Hour)
	s.Require().NoError(err)
}

func (s *BaseSuite) Header(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

func (s *BaseSuite) Token(user chat.UserID, roles ...string) string {
	token, err := s.Tokens.GenerateToken(user, roles...)
	s.Require().NoError(err)
	return token
}

// GrpcConn dials the relay endpoint and logs every call.
func (s *BaseSuite) GrpcConn(t *testing.T, name string) *grpc.ClientConn {
	s.Header(t, name)
	marshaler := protojson.MarshalOptions{
		UseProtoNames:   true,
		Multiline:       true,
		EmitUnpopulated: true,
	}
	conn, err := grpc.NewClient(s.Config.GRPCAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
			start := time.Now()
			err := invoker(ctx, method, req, reply, cc, opts...)

			logBuilder := strings.Builder{}
			fmt.Fprintf(&logBuilder, "GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))
			if s.Config.DebugJSON {
				if m, ok := req.(proto.Message); ok {
					fmt.Fprintln(&logBuilder, "\nREQUEST:")
					fmt.Fprintln(&logBuilder, marshaler.Format(m))
				}
				if err != nil {
					fmt.Fprintln(&logBuilder, "ERROR:", err)
				} else if m, ok := reply.(proto.Message); ok {
					fmt.Fprintln(&logBuilder, "RESPONSE:")
					fmt.Fprintln(&logBuilder, marshaler.Format(m))
				}
			}
			t.Log(logBuilder.String())
			return err
		}),
	)
	s.Require().NoError(err, "Failed to connect to gRPC server at "+s.Config.GRPCAddr)
	return conn
}

// WithRelay runs fn with a relay client authenticated as a relay service.
func (s *BaseSuite) WithRelay(name string, fn func(ctx context.Context, relay *client.RelayClient)) {
	conn := s.GrpcConn(s.T(), name)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), s.Config.Timeout)
	defer cancel()
	fn(ctx, client.NewRelayClient(conn, s.Token("checkin-service", auth.RoleRelay)))
}

// Admin calls an admin REST route and returns the status code.
func (s *BaseSuite) Admin(method, path string, body any) int {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	r, err := http.NewRequest(method, "http://"+s.Config.HTTPAddr+path, bytes.NewReader(raw))
	s.Require().NoError(err)
	r.Header.Set("Authorization", "Bearer "+s.Token("e2e-admin", auth.RoleAdmin))
	r.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(r)
	s.Require().NoError(err)
	defer res.Body.Close()
	return res.StatusCode
}

// Peer is one websocket client.
type Peer struct {
	s    *BaseSuite
	user chat.UserID
	conn *websocket.Conn
}

// Connect opens a session for user and joins it.
func (s *BaseSuite) Connect(user chat.UserID) *Peer {
	u := url.URL{Scheme: "ws", Host: s.Config.HTTPAddr, Path: "/ws", RawQuery: "token=" + url.QueryEscape(s.Token(user, auth.RoleUser))}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	s.Require().NoError(err)
	p := &Peer{s: s, user: user, conn: conn}
	s.T().Cleanup(func() { _ = conn.Close() })
	p.Send(ws.JoinFrameType, "", ws.JoinFrame{UserID: user})
	return p
}

func (p *Peer) Send(frameType, ref string, data any) {
	raw, err := json.Marshal(data)
	p.s.Require().NoError(err)
	p.s.Require().NoError(p.conn.WriteJSON(ws.Envelope{Type: frameType, Ref: ref, Data: raw}))
}

// Expect reads until an envelope of the given type arrives, skipping the others.
func (p *Peer) Expect(envelopeType string) ws.Envelope {
	deadline := time.Now().Add(p.s.Config.Timeout)
	for {
		p.s.Require().NoError(p.conn.SetReadDeadline(deadline))
		var env ws.Envelope
		p.s.Require().NoError(p.conn.ReadJSON(&env), "%s waiting for %s", p.user, envelopeType)
		if env.Type == envelopeType {
			return env
		}
	}
}

func (p *Peer) Close() {
	p.Send(ws.LogoutFrameType, "", struct{}{})
	_ = p.conn.Close()
}
