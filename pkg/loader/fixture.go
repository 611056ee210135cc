package loader

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kraitsura/groups_viewer/pkg/model"
)

//go:embed fixtures/groups.json
var fixtureGroups []byte

// DefaultFixtureDelay is the simulated request latency
const DefaultFixtureDelay = time.Second

// FixtureSource serves the embedded sample groups after a fixed delay,
// standing in for a real network call.
type FixtureSource struct {
	delay time.Duration
	data  []byte

	// For testing: override the envelope result code
	result int
}

// NewFixtureSource creates a fixture source. A negative delay disables
// the wait; zero selects DefaultFixtureDelay.
func NewFixtureSource(delay time.Duration) *FixtureSource {
	if delay == 0 {
		delay = DefaultFixtureDelay
	}
	if delay < 0 {
		delay = 0
	}
	return &FixtureSource{
		delay:  delay,
		data:   fixtureGroups,
		result: model.ResultSuccess,
	}
}

// Delay returns the simulated latency
func (s *FixtureSource) Delay() time.Duration {
	return s.delay
}

// LoadGroups waits for the simulated delay and returns the fixture
func (s *FixtureSource) LoadGroups(ctx context.Context) ([]model.Group, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, loadErr("fixture", ctx.Err())
		case <-timer.C:
		}
	}

	var groups []model.Group
	if err := json.Unmarshal(s.data, &groups); err != nil {
		return nil, loadErr("fixture", fmt.Errorf("decode fixture: %w", err))
	}

	resp := model.GetGroupsResponse{Result: s.result, Data: groups}
	return fromResponse("fixture", resp)
}
