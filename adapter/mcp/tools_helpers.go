package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/execassist/pkg/observability"
	"github.com/google/uuid"
)

func parseUUID(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.UUID{}, errors.New("id is required")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid id: %w", err)
	}
	return id, nil
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	if len(values) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := parseUUID(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// timed runs a tool body under an operation timer tagged with the tool name.
func timed[T any](ctx context.Context, t *toolSet, tool string, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx = observability.NewRequestContext(ctx, "")
	ctx = observability.WithUserID(ctx, t.c.UserID.String())
	return observability.TimeOperationResult(ctx, t.c.Logger, t.c.Metrics, "mcp."+tool, func() (T, error) {
		return fn(ctx)
	})
}
