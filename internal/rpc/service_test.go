package rpc

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xtding233/keno-backend/internal/keno"
	"github.com/xtding233/keno-backend/internal/session"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func newTestClient(t *testing.T, balance int64) *Client {
	t.Helper()
	engine := keno.NewEngine(keno.WithRNG(keno.NewSeededRNG(3)))
	m := session.NewManager(engine, session.Config{
		StartingBalance: balance,
		Limits:          session.Limits{MinBet: 1, DefaultBet: 10},
	})

	lis := bufconn.Listen(1 << 20)
	srv := NewServer(NewService(m))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewClient(conn)
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func TestRPC_OpenAndPlay(t *testing.T) {
	c := newTestClient(t, 1000)
	ctx := context.Background()

	opened, err := c.OpenSession(ctx, nil)
	require.NoError(t, err)
	id := opened.GetFields()["session_id"].GetStringValue()
	require.NotEmpty(t, id)
	assert.Equal(t, float64(1000), opened.GetFields()["balance"].GetNumberValue())

	out, err := c.Play(ctx, mustStruct(t, map[string]any{
		"session_id": id,
		"numbers":    []any{1, 2, 3, 4},
		"bet":        50,
	}))
	require.NoError(t, err)
	f := out.GetFields()
	assert.Len(t, f["drawn"].GetListValue().GetValues(), keno.DrawSize)
	payout := f["payout"].GetNumberValue()
	assert.Equal(t, 1000-50+payout, f["balance"].GetNumberValue())
	matches := int(f["matches"].GetNumberValue())
	assert.Equal(t, float64(keno.StandardPayoutTable().Multiplier(4, matches)), f["multiplier"].GetNumberValue())
}

func TestRPC_Errors(t *testing.T) {
	c := newTestClient(t, 10)
	ctx := context.Background()

	opened, err := c.OpenSession(ctx, nil)
	require.NoError(t, err)
	id := opened.GetFields()["session_id"].GetStringValue()

	cases := []struct {
		in   map[string]any
		code codes.Code
	}{
		{map[string]any{"numbers": []any{1}}, codes.InvalidArgument},
		{map[string]any{"session_id": "nope", "numbers": []any{1}}, codes.NotFound},
		{map[string]any{"session_id": id, "numbers": []any{1, 1}}, codes.InvalidArgument},
		{map[string]any{"session_id": id, "numbers": []any{1.5}}, codes.InvalidArgument},
		{map[string]any{"session_id": id, "numbers": "1,2"}, codes.InvalidArgument},
		{map[string]any{"session_id": id, "numbers": []any{1}, "bet": 11}, codes.FailedPrecondition},
	}
	for _, tc := range cases {
		_, err := c.Play(ctx, mustStruct(t, tc.in))
		assert.Equal(t, tc.code, status.Code(err), "in=%v err=%v", tc.in, err)
	}
}

func TestRPC_FractionalBetRejected(t *testing.T) {
	c := newTestClient(t, 1000)
	ctx := context.Background()

	opened, err := c.OpenSession(ctx, nil)
	require.NoError(t, err)
	id := opened.GetFields()["session_id"].GetStringValue()

	for _, bet := range []any{0.5, 7.9, 1e19, -1e19, "10", true} {
		_, err := c.Play(ctx, mustStruct(t, map[string]any{
			"session_id": id,
			"numbers":    []any{1},
			"bet":        bet,
		}))
		assert.Equal(t, codes.InvalidArgument, status.Code(err), "bet=%v err=%v", bet, err)
	}

	out, err := c.Play(ctx, mustStruct(t, map[string]any{
		"session_id": id,
		"numbers":    []any{2},
		"bet":        7.0,
	}))
	require.NoError(t, err)
	assert.Equal(t, float64(7), out.GetFields()["bet"].GetNumberValue())
	assert.Equal(t, 1000-7+out.GetFields()["payout"].GetNumberValue(), out.GetFields()["balance"].GetNumberValue())
}

func TestRPC_Paytable(t *testing.T) {
	c := newTestClient(t, 1000)
	out, err := c.Paytable(context.Background(), mustStruct(t, map[string]any{"spots": 1, "bet": 10}))
	require.NoError(t, err)
	lines := out.GetFields()["lines"].GetListValue().GetValues()
	require.Len(t, lines, 1)
	line := lines[0].GetStructValue().GetFields()
	assert.Equal(t, float64(1), line["matches"].GetNumberValue())
	assert.Equal(t, float64(30), line["payout"].GetNumberValue())
	assert.Equal(t, "0.75", out.GetFields()["rtp"].GetStringValue())

	for _, in := range []map[string]any{
		{"spots": 0},
		{},
		{"spots": 2.5},
		{"spots": 1e19},
		{"spots": 3, "bet": 0.5},
		{"spots": 3, "bet": 0},
		{"spots": 3, "bet": -5},
	} {
		_, err = c.Paytable(context.Background(), mustStruct(t, in))
		assert.Equal(t, codes.InvalidArgument, status.Code(err), "in=%v", in)
	}
}
