package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/gridiron-sim/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving from instance when not explicitly configured.
// Used across server wiring and provider factory to keep naming consistent in metrics/logs.
func normalizeProviderName(raw string, provider providers.TeamProvider) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		// "*fixture.Provider" names the fixture package.
		name := strings.TrimPrefix(fmt.Sprintf("%T", provider), "*")
		if pkg, _, ok := strings.Cut(name, "."); ok {
			name = pkg
		}
		return strings.ToLower(name)
	}
	return "provider"
}
