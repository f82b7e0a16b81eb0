package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"sinister-snare/internal/feed"
	"sinister-snare/internal/galaxy"
	"sinister-snare/internal/logger"
)

const (
	// maxOffersPerSide truncates each side of a commodity group for
	// tractability; upstream ordering is preserved.
	maxOffersPerSide = 3
	// maxRoutes is the global cap on synthesized routes per snapshot.
	maxRoutes = 50
	// maxTradableUnits caps the stock used for investment/profit math.
	maxTradableUnits = 1000
)

// Synthesizer turns flat commodity offers into directed, profitable routes.
type Synthesizer struct {
	resolver *galaxy.Resolver
	sampler  *galaxy.Sampler
}

// NewSynthesizer creates a Synthesizer. The seed drives the distance and
// coordinate heuristics only; route identity (route_code) never depends
// on it.
func NewSynthesizer(resolver *galaxy.Resolver, seed int64) *Synthesizer {
	return &Synthesizer{
		resolver: resolver,
		sampler:  galaxy.NewSampler(seed),
	}
}

// SynthesizeRoutes pairs buy-side and sell-side offers of the same
// commodity into routes, capped at maxRoutes and sorted by profit
// descending.
func (s *Synthesizer) SynthesizeRoutes(offers []feed.CommodityOffer) []Route {
	groups := make(map[string][]feed.CommodityOffer)
	var order []string
	for _, o := range offers {
		if o.CommodityName == "" || o.TerminalName == "" {
			continue
		}
		if _, seen := groups[o.CommodityName]; !seen {
			order = append(order, o.CommodityName)
		}
		groups[o.CommodityName] = append(groups[o.CommodityName], o)
	}

	now := time.Now().UTC()
	var routes []Route

	for _, commodity := range order {
		if len(routes) >= maxRoutes {
			break
		}

		var buySide, sellSide []feed.CommodityOffer
		for _, o := range groups[commodity] {
			if o.PriceBuy > 0 && o.StatusBuy != 0 && len(buySide) < maxOffersPerSide {
				buySide = append(buySide, o)
			}
			if o.PriceSell > 0 && o.StatusSell != 0 && len(sellSide) < maxOffersPerSide {
				sellSide = append(sellSide, o)
			}
		}

		for _, buy := range buySide {
			if len(routes) >= maxRoutes {
				break
			}
			for _, sell := range sellSide {
				if len(routes) >= maxRoutes {
					break
				}
				if buy.TerminalName == sell.TerminalName {
					continue
				}
				if sell.PriceSell <= buy.PriceBuy {
					continue
				}
				routes = append(routes, s.buildRoute(commodity, buy, sell, now))
			}
		}
	}

	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Profit > routes[j].Profit
	})
	logger.Info("SYNTH", fmt.Sprintf("Synthesized %d routes from %d offers", len(routes), len(offers)))
	return routes
}

func (s *Synthesizer) buildRoute(commodity string, buy, sell feed.CommodityOffer, now time.Time) Route {
	originSystem := s.resolver.Resolve(buy.TerminalName)
	destSystem := s.resolver.Resolve(sell.TerminalName)

	perUnit := sell.PriceSell - buy.PriceBuy
	roi := perUnit / buy.PriceBuy * 100

	units := buy.ScuBuy
	if units > maxTradableUnits {
		units = maxTradableUnits
	}

	return Route{
		RouteCode:           RouteCode(buy.TerminalName, commodity, sell.TerminalName),
		CommodityName:       commodity,
		OriginTerminal:      buy.TerminalName,
		OriginSystem:        originSystem,
		DestinationTerminal: sell.TerminalName,
		DestinationSystem:   destSystem,
		BuyPrice:            buy.PriceBuy,
		SellPrice:           sell.PriceSell,
		ProfitPerUnit:       perUnit,
		ROI:                 roi,
		Distance:            s.sampler.RouteDistance(originSystem, destSystem),
		Investment:          buy.PriceBuy * units,
		Profit:              perUnit * units,
		BuyStock:            buy.ScuBuy,
		SellStock:           sell.ScuSellStock,
		TrafficScore:        trafficScore(buy.ScuBuy, sell.ScuSellStock),
		CoordinatesOrigin:   s.sampler.RandomCoordinates(originSystem),
		CoordinatesDest:     s.sampler.RandomCoordinates(destSystem),
		LastSeen:            now,
	}
}

// RouteCode derives the stable route identifier: each component uppercased
// with whitespace and apostrophes stripped, truncated to 8 characters,
// joined by '-'. The persistence upsert key relies on this determinism.
func RouteCode(originTerminal, commodity, destTerminal string) string {
	return codePart(originTerminal) + "-" + codePart(commodity) + "-" + codePart(destTerminal)
}

func codePart(s string) string {
	cleaned := strings.ToUpper(s)
	cleaned = strings.NewReplacer(" ", "", "'", "", "\t", "").Replace(cleaned)
	if len(cleaned) > 8 {
		cleaned = cleaned[:8]
	}
	return cleaned
}

// trafficScore estimates route traffic on a 0–100 scale from the stock on
// both ends: heavily stocked lanes see more haulers.
func trafficScore(buyStock, sellStock float64) float64 {
	stock := buyStock
	if sellStock < stock {
		stock = sellStock
	}
	if stock < 0 {
		stock = 0
	}
	score := stock / 10
	if score > 100 {
		score = 100
	}
	return score
}
