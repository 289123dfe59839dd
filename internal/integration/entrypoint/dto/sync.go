package dto

import (
	"github.com/life-planner/backend/internal/application/usecase/replication"
	"github.com/life-planner/backend/internal/domain/state"
)

// PushDeltasRequest represents a batch of client deltas to persist.
type PushDeltasRequest struct {
	Deltas []state.Delta `json:"deltas"`
}

// PushDeltasResponse represents the accepted batch.
type PushDeltasResponse struct {
	Accepted int      `json:"accepted"`
	DeltaIDs []string `json:"delta_ids"`
}

// SnapshotResponse represents stored record versions, tombstones included,
// each expressed as the delta that reproduces it.
type SnapshotResponse struct {
	UserID   string        `json:"user_id"`
	Versions []state.Delta `json:"versions"`
}

// ReconcileRequest represents a client replica, one delta per record version.
type ReconcileRequest struct {
	Versions []state.Delta `json:"versions"`
}

// ReconcileResponse represents the merged replica.
type ReconcileResponse struct {
	SnapshotResponse
	Queued int `json:"queued"`
}

// ToPushDeltasResponse converts the push output.
func ToPushDeltasResponse(output *replication.PushDeltasOutput) PushDeltasResponse {
	ids := make([]string, 0, len(output.DeltaIDs))
	for _, id := range output.DeltaIDs {
		ids = append(ids, id.String())
	}
	return PushDeltasResponse{Accepted: output.Accepted, DeltaIDs: ids}
}

// ToSnapshotResponse converts a state into its version list.
func ToSnapshotResponse(s *state.State) (SnapshotResponse, error) {
	resp := SnapshotResponse{
		UserID:   s.UserID.String(),
		Versions: make([]state.Delta, 0, s.Len()),
	}
	for _, v := range s.Versions() {
		d, err := v.ToDelta(s.UserID)
		if err != nil {
			return SnapshotResponse{}, err
		}
		resp.Versions = append(resp.Versions, d)
	}
	return resp, nil
}
