// Package galaxy holds the static universe knowledge: which star system a
// trade terminal belongs to, per-system coordinate bounds, and the distance
// heuristics used by route synthesis.
package galaxy

import "strings"

// Known star systems, in resolution order.
const (
	Stanton = "Stanton"
	Pyro    = "Pyro"
	Nyx     = "Nyx"
	Terra   = "Terra"
	Magnus  = "Magnus"
)

// Systems lists the canonical systems in resolver order.
var Systems = []string{Stanton, Pyro, Nyx, Terra, Magnus}

// defaultFragments maps each system to lowercased terminal name fragments.
// The upstream feed only provides display names, so membership is a layered
// substring test. First match in Systems order wins; anything unmatched
// resolves to Stanton.
//
// Known ambiguity: Levski is historically a Nyx location but the upstream
// feed lists it among Stanton terminals. The fixed first-match order decides
// it as Stanton; the entry stays out of the Nyx list on purpose.
var defaultFragments = map[string][]string{
	Stanton: {
		"port olisar", "everus harbor", "baijini point", "port tressler",
		"seraphim", "lorville", "area18", "area 18", "new babbage",
		"orison", "grim hex", "levski", "hur-l", "cru-l", "arc-l", "mic-l",
		"wala", "lyria", "aberdeen", "arial", "cellin", "daymar", "yela",
		"magda", "ita", "clio", "euterpe", "calliope", "rayari", "shubin",
		"hdms", "covalex", "gundo", "brio", "devlin", "tram & myers",
	},
	Pyro: {
		"rat's nest", "rats nest", "ruin station", "checkmate", "starlight",
		"patch city", "endgame", "orbituary", "stanton gateway", "pyro gateway",
		"rustville", "canard", "bueno ravine", "shepherd's rest", "prophet's peak",
		"rod's fuel", "dudley", "gaslight", "megumi", "chawla's beach",
		"ashland", "jackson's swap", "fallow field", "last landings",
	},
	Nyx: {
		"delamar", "nyx", "glaciem",
	},
	Terra: {
		"terra", "prime", "quasi", "new austin",
	},
	Magnus: {
		"magnus", "odyssa", "borea",
	},
}

// Resolver maps terminal display names to canonical star systems.
type Resolver struct {
	fragments map[string][]string
}

// NewResolver returns a Resolver using the built-in fragment lists.
func NewResolver() *Resolver {
	return &Resolver{fragments: defaultFragments}
}

// NewResolverWithOverrides merges config-supplied fragment lists over the
// built-in ones. Override values are lowercased; unknown system keys are
// ignored.
func NewResolverWithOverrides(overrides map[string][]string) *Resolver {
	if len(overrides) == 0 {
		return NewResolver()
	}
	merged := make(map[string][]string, len(defaultFragments))
	for sys, frags := range defaultFragments {
		merged[sys] = frags
	}
	for sys, frags := range overrides {
		if _, known := merged[sys]; !known {
			continue
		}
		lowered := make([]string, 0, len(frags))
		for _, f := range frags {
			lowered = append(lowered, strings.ToLower(f))
		}
		merged[sys] = lowered
	}
	return &Resolver{fragments: merged}
}

// Resolve maps a terminal display name to its star system. Total: an
// unrecognized name resolves to Stanton.
func (r *Resolver) Resolve(terminalName string) string {
	name := strings.ToLower(terminalName)
	for _, sys := range Systems {
		for _, frag := range r.fragments[sys] {
			if strings.Contains(name, frag) {
				return sys
			}
		}
	}
	return Stanton
}
