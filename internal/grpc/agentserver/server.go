package agentserver

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/policy"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/snapshot"
)

// Server implements the decision service. It keeps one agent per strategy
// and builds them on first use.
type Server struct {
	mu              sync.RWMutex
	defaultStrategy string
	agentOpts       []policy.AgentOption
	agents          map[string]*policy.Agent

	logger zerolog.Logger
}

var _ AgentServiceServer = (*Server)(nil)

// NewServer creates a decision server. opts are applied to every agent it
// builds.
func NewServer(defaultStrategy string, opts ...policy.AgentOption) (*Server, error) {
	s := &Server{
		logger: log.With().Str("component", "agent_server").Logger(),
	}
	if err := s.Reconfigure(defaultStrategy, opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// Reconfigure swaps the default strategy and agent options. Agents built
// with the old options are dropped.
func (s *Server) Reconfigure(defaultStrategy string, opts ...policy.AgentOption) error {
	if !policy.Known(defaultStrategy) {
		return fmt.Errorf("default strategy: %w: %q", policy.ErrUnknownStrategy, defaultStrategy)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultStrategy = defaultStrategy
	s.agentOpts = opts
	s.agents = make(map[string]*policy.Agent)

	s.logger.Info().Str("default_strategy", defaultStrategy).Msg("Agent server configured")
	return nil
}

// DefaultStrategy returns the strategy used when a request names none
func (s *Server) DefaultStrategy() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultStrategy
}

// Decide picks a move for the snapshot in the request
func (s *Server) Decide(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	parsed, err := parseDecideRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	agent, err := s.agentFor(parsed.strategy)
	if err != nil {
		return nil, toStatus(err)
	}

	decision, err := agent.Decide(parsed.snapshot)
	if err != nil {
		return nil, toStatus(err)
	}

	resp, err := decisionToStruct(decision, RequestIDFromContext(ctx))
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode decision: %v", err)
	}
	return resp, nil
}

// ListStrategies reports the registered strategies and the default
func (s *Server) ListStrategies(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	names := policy.Names()
	list := make([]interface{}, len(names))
	for i, n := range names {
		list[i] = n
	}

	resp, err := structpb.NewStruct(map[string]interface{}{
		"strategies": list,
		"default":    s.DefaultStrategy(),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode strategies: %v", err)
	}
	return resp, nil
}

func (s *Server) agentFor(name string) (*policy.Agent, error) {
	s.mu.RLock()
	if name == "" {
		name = s.defaultStrategy
	}
	agent, ok := s.agents[name]
	s.mu.RUnlock()
	if ok {
		return agent, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if agent, ok := s.agents[name]; ok {
		return agent, nil
	}
	agent, err := policy.NewAgent(name, s.agentOpts...)
	if err != nil {
		return nil, err
	}
	s.agents[name] = agent
	s.logger.Debug().
		Str("strategy", name).
		Str("session_id", agent.SessionID()).
		Msg("Agent created")
	return agent, nil
}

// toStatus maps domain errors onto gRPC codes
func toStatus(err error) error {
	switch {
	case errors.Is(err, snapshot.ErrInvalidSnapshot),
		errors.Is(err, policy.ErrUnknownStrategy),
		errors.Is(err, policy.ErrNoActiveUnit),
		errors.Is(err, policy.ErrNoBoard),
		errors.Is(err, core.ErrMalformedBoard),
		errors.Is(err, core.ErrOutOfRange):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// NewGRPCServer wires srv into a grpc.Server with the standard
// interceptors and a health service. The returned health server reports
// SERVING for the decision service.
func NewGRPCServer(srv AgentServiceServer, enableReflection bool, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			RequestIDInterceptor,
			LoggingInterceptor,
			RecoveryInterceptor,
		),
	}, opts...)
	grpcServer := grpc.NewServer(opts...)

	RegisterAgentServiceServer(grpcServer, srv)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	if enableReflection {
		reflection.Register(grpcServer)
	}
	return grpcServer, healthServer
}
