package rpc

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/xtding233/keno-backend/internal/keno"
	"github.com/xtding233/keno-backend/internal/session"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "keno.v1.Keno"

// KenoServer is the gRPC surface. Messages are structpb.Struct so no generated code is needed.
type KenoServer interface {
	OpenSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Play(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Paytable(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func unaryHandler(method string, call func(KenoServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(KenoServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(KenoServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*KenoServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "OpenSession", Handler: unaryHandler("OpenSession", KenoServer.OpenSession)},
		{MethodName: "Play", Handler: unaryHandler("Play", KenoServer.Play)},
		{MethodName: "Paytable", Handler: unaryHandler("Paytable", KenoServer.Paytable)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "keno/v1/keno.proto",
}

func Register(s grpc.ServiceRegistrar, srv KenoServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Service implements KenoServer over a session manager.
type Service struct {
	sessions *session.Manager
}

func NewService(m *session.Manager) *Service { return &Service{sessions: m} }

func (s *Service) OpenSession(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	sess := s.sessions.Open()
	return structpb.NewStruct(map[string]any{
		"session_id": sess.ID,
		"balance":    sess.Balance(),
	})
}

// Play expects {session_id, numbers: [..], bet}.
func (s *Service) Play(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()
	id := fields["session_id"].GetStringValue()
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}
	nums, err := intList(fields["numbers"])
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	bet, _, err := wholeNumber(fields["bet"], "bet")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	r, err := s.sessions.Play(id, nums, bet)
	if err != nil {
		return nil, toStatus(err)
	}
	v := r.View()
	return structpb.NewStruct(map[string]any{
		"round_id":   v.ID,
		"selection":  anyList(v.Selection),
		"drawn":      anyList(v.Drawn),
		"matched":    anyList(v.Matched),
		"matches":    v.Matches,
		"multiplier": v.Multiplier,
		"bet":        v.Bet,
		"payout":     v.Payout,
		"balance":    v.BalanceAfter,
	})
}

// Paytable expects {spots, bet?}.
func (s *Service) Paytable(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()
	n, _, err := wholeNumber(fields["spots"], "spots")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if n < 1 || n > keno.MaxSpots {
		return nil, status.Error(codes.InvalidArgument, "spots must be 1..10")
	}
	spots := int(n)
	bet, ok, err := wholeNumber(fields["bet"], "bet")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if !ok {
		bet = 1
	}
	if bet <= 0 {
		return nil, status.Error(codes.InvalidArgument, "bet must be positive")
	}
	lines := s.sessions.Engine().Table().Paying(spots, bet)
	out := make([]any, 0, len(lines))
	for _, l := range lines {
		out = append(out, map[string]any{
			"matches":    l.Matches,
			"multiplier": l.Multiplier,
			"payout":     l.Payout,
		})
	}
	return structpb.NewStruct(map[string]any{
		"spots": spots,
		"lines": out,
		"rtp":   keno.ExpectedReturn(s.sessions.Engine().Table(), spots).String(),
	})
}

func intList(v *structpb.Value) ([]int, error) {
	if v == nil {
		return nil, nil
	}
	list := v.GetListValue()
	if list == nil {
		return nil, errors.New("numbers must be a list")
	}
	out := make([]int, 0, len(list.GetValues()))
	for _, item := range list.GetValues() {
		n, _, err := wholeNumber(item, "numbers")
		if err != nil {
			return nil, err
		}
		out = append(out, int(n))
	}
	return out, nil
}

// wholeNumber reads an optional integer field. ok is false when the field is absent.
// JSON numbers arrive as float64, so fractions and values outside int64 are rejected.
func wholeNumber(v *structpb.Value, name string) (n int64, ok bool, err error) {
	if v == nil {
		return 0, false, nil
	}
	num, isNum := v.GetKind().(*structpb.Value_NumberValue)
	if !isNum {
		return 0, false, fmt.Errorf("%s must be a whole number, got %v", name, v.AsInterface())
	}
	f := num.NumberValue
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false, fmt.Errorf("%s must be a whole number, got %v", name, f)
	}
	return int64(f), true, nil
}

func anyList(xs []int) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, keno.ErrInsufficientBalance):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, keno.ErrInvalidRange),
		errors.Is(err, keno.ErrDuplicateNumber),
		errors.Is(err, keno.ErrTooManySelections),
		errors.Is(err, keno.ErrEmptySelection),
		errors.Is(err, keno.ErrInvalidBet),
		errors.Is(err, session.ErrBetOutOfRange):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
