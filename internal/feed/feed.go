// Package feed owns the outbound HTTP client for the upstream commodity
// market source. No other package performs outbound HTTP.
package feed

// CommodityOffer is one terminal × commodity listing from the upstream
// snapshot. Zero prices mean the side is not traded at that terminal.
type CommodityOffer struct {
	CommodityName string  `json:"commodity_name"`
	TerminalName  string  `json:"terminal_name"`
	PriceBuy      float64 `json:"price_buy"`
	PriceSell     float64 `json:"price_sell"`
	StatusBuy     int     `json:"status_buy"`
	StatusSell    int     `json:"status_sell"`
	ScuBuy        float64 `json:"scu_buy"`
	ScuSellStock  float64 `json:"scu_sell_stock"`
	LastUpdated   string  `json:"lastUpdated"`
}

// snapshot is the upstream response envelope.
type snapshot struct {
	Commodities []CommodityOffer `json:"commodities"`
}
