package agentserver

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/policy"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/snapshot"
)

// Request field names
const (
	fieldSnapshot = "snapshot"
	fieldStrategy = "strategy"
)

// decideRequest is the decoded form of a Decide request
type decideRequest struct {
	snapshot *snapshot.Snapshot
	strategy string
}

// parseDecideRequest extracts the snapshot and optional strategy. The
// snapshot sub-document goes through its JSON form so that it is checked by
// the same loader as snapshot files.
func parseDecideRequest(req *structpb.Struct) (decideRequest, error) {
	if req == nil {
		return decideRequest{}, fmt.Errorf("empty request: %w", snapshot.ErrInvalidSnapshot)
	}
	fields := req.GetFields()

	var out decideRequest
	if v, ok := fields[fieldStrategy]; ok {
		if _, isString := v.GetKind().(*structpb.Value_StringValue); !isString {
			return decideRequest{}, fmt.Errorf("%s must be a string", fieldStrategy)
		}
		out.strategy = v.GetStringValue()
	}

	doc := fields[fieldSnapshot].GetStructValue()
	if doc == nil {
		return decideRequest{}, fmt.Errorf("missing %s object: %w", fieldSnapshot, snapshot.ErrInvalidSnapshot)
	}
	data, err := protojson.Marshal(doc)
	if err != nil {
		return decideRequest{}, fmt.Errorf("encode %s: %w", fieldSnapshot, err)
	}
	snap, err := snapshot.Parse(data)
	if err != nil {
		return decideRequest{}, err
	}
	out.snapshot = snap
	return out, nil
}

// decisionToStruct builds the Decide response
func decisionToStruct(d policy.Decision, requestID string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"move":       d.Move.String(),
		"strategy":   d.Strategy,
		"hero_id":    d.HeroID,
		"session_id": d.SessionID,
		"request_id": requestID,
		"origin": map[string]interface{}{
			"row": d.Origin.Row,
			"col": d.Origin.Col,
		},
		"searches":    d.Searches,
		"duration_us": d.Duration.Microseconds(),
	})
}

// NewDecideRequest builds a Decide request for snap. An empty strategy
// leaves the choice to the server.
func NewDecideRequest(snap *snapshot.Snapshot, strategy string) (*structpb.Struct, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	doc := &structpb.Struct{}
	if err := protojson.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("convert snapshot: %w", err)
	}

	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldSnapshot: structpb.NewStructValue(doc),
	}}
	if strategy != "" {
		req.Fields[fieldStrategy] = structpb.NewStringValue(strategy)
	}
	return req, nil
}
