package shuffle

import (
	"strings"

	"goshuffle/domain/core"
)

// ParseStrategy maps a strategy name to its value. Accepted names are
// "random", "gsr" (or "riffle"), and "faro:in", "faro:out" with "weave" as
// an alias for "faro". A bare "faro" means an out-shuffle.
func ParseStrategy(name string) (Strategy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	kind, param, _ := strings.Cut(key, ":")

	switch kind {
	case "random", "fisher-yates":
		if param == "" {
			return Random{}, nil
		}
	case "gsr", "riffle", "gilbert-shannon-reeds":
		if param == "" {
			return GilbertShannonReeds{}, nil
		}
	case "faro", "weave":
		if param == "" {
			return Faro{Direction: Out}, nil
		}
		d, err := ParseDirection(param)
		if err != nil {
			return nil, err
		}
		return Faro{Direction: d}, nil
	}
	return nil, core.NewUnknownStrategyError(name)
}

// Names lists the canonical names of the built-in strategies.
func Names() []string {
	return []string{
		Random{}.Name(),
		Faro{Direction: In}.Name(),
		Faro{Direction: Out}.Name(),
		GilbertShannonReeds{}.Name(),
	}
}
