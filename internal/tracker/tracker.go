// Package tracker orchestrates refresh cycles: pull the commodity feed,
// synthesize and score routes, persist analyses and trend points, and raise
// alerts for routes worth watching. It also owns the background loop.
package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sinister-snare/internal/config"
	"sinister-snare/internal/db"
	"sinister-snare/internal/engine"
	"sinister-snare/internal/feed"
	"sinister-snare/internal/logger"
)

// Fetcher pulls the current commodity snapshot.
type Fetcher interface {
	FetchCommodities(ctx context.Context) ([]feed.CommodityOffer, error)
}

// RefreshLog is one stage entry of a refresh cycle, returned to callers so
// the manual-refresh endpoint can show what happened.
type RefreshLog struct {
	Stage     string    `json:"stage"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// TrackingState is the externally visible state of the background loop.
type TrackingState struct {
	Active          bool      `json:"active"`
	IntervalSeconds int       `json:"interval_seconds"`
	LastUpdate      time.Time `json:"last_update"`
	RouteCount      int       `json:"route_count"`
}

// Tracker wires the feed, engine, and store into refresh cycles.
type Tracker struct {
	feed   Fetcher
	store  *db.DB
	synth  *engine.Synthesizer
	scorer *engine.Scorer
	cfg    config.RefreshConfig

	mu     sync.Mutex
	state  TrackingState
	cancel context.CancelFunc
	done   chan struct{}
}

// New builds a Tracker around an opened store and feed client.
func New(fetcher Fetcher, store *db.DB, synth *engine.Synthesizer, scorer *engine.Scorer, cfg config.RefreshConfig) *Tracker {
	interval := cfg.TrackingInterval
	if interval <= 0 {
		interval = 300
	}
	return &Tracker{
		feed:   fetcher,
		store:  store,
		synth:  synth,
		scorer: scorer,
		cfg:    cfg,
		state:  TrackingState{IntervalSeconds: interval},
	}
}

// RunRefresh executes one full refresh cycle and returns its stage log.
// An empty upstream snapshot aborts before the store is touched, so stale
// analyses survive upstream outages.
func (t *Tracker) RunRefresh(ctx context.Context) ([]RefreshLog, error) {
	var logs []RefreshLog
	stage := func(name, format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		logs = append(logs, RefreshLog{Stage: name, Message: msg, Timestamp: time.Now().UTC()})
		logger.Info("REFRESH", msg)
	}

	stage("fetch", "Fetching commodity snapshot")
	offers, err := t.feed.FetchCommodities(ctx)
	if err != nil {
		stage("fetch", "Feed unavailable: %v", err)
		return logs, fmt.Errorf("fetch commodities: %w", err)
	}
	if len(offers) == 0 {
		stage("abort", "Empty snapshot, keeping previous analyses")
		return logs, fmt.Errorf("empty commodity snapshot")
	}
	stage("fetch", "Received %d commodity offers", len(offers))

	if err := t.store.DeleteAllAnalyses(); err != nil {
		return logs, fmt.Errorf("clear analyses: %w", err)
	}
	stage("clear", "Cleared previous analyses")

	routes := t.synth.SynthesizeRoutes(offers)
	stage("synthesize", "Synthesized %d candidate routes", len(routes))

	stored := 0
	for i, r := range routes {
		a := t.scorer.Score(r)
		if err := t.store.UpsertAnalysis(a); err != nil {
			logger.Warn("REFRESH", fmt.Sprintf("Skipping %s: %v", a.RouteCode, err))
			continue
		}
		if err := t.store.InsertHistoricalTrend(trendPoint(a)); err != nil {
			logger.Warn("REFRESH", fmt.Sprintf("Trend point for %s: %v", a.RouteCode, err))
		}
		stored++
		if (i+1)%10 == 0 {
			stage("score", "Scored %d/%d routes", i+1, len(routes))
		}
	}

	t.mu.Lock()
	t.state.LastUpdate = time.Now().UTC()
	t.state.RouteCount = stored
	t.mu.Unlock()

	stage("summary", "Refresh complete: %d routes analyzed", stored)
	return logs, nil
}

// TrackOnce runs one background tracking pass over the stored analyses:
// high-value routes raise alerts and every route gets a fresh trend point.
func (t *Tracker) TrackOnce(ctx context.Context) error {
	analyses, err := t.store.FindAnalyses(db.AnalysisFilter{})
	if err != nil {
		return fmt.Errorf("load analyses: %w", err)
	}

	alerts := 0
	for _, a := range analyses {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if a.PiracyRating >= t.cfg.AlertRatingFloor && a.Profit >= t.cfg.AlertProfitFloor {
			priority := engine.PriorityHigh
			if a.PiracyRating >= 90 {
				priority = engine.PriorityCritical
			}
			_, err := t.store.InsertAlert(engine.Alert{
				AlertType:       engine.AlertHighValue,
				RouteCode:       a.RouteCode,
				CommodityName:   a.CommodityName,
				Message:         fmt.Sprintf("%s run %s rated %.1f with %.0f aUEC profit", a.CommodityName, a.RouteCode, a.PiracyRating, a.Profit),
				Priority:        priority,
				ProfitThreshold: t.cfg.AlertProfitFloor,
			})
			if err != nil {
				logger.Warn("TRACK", fmt.Sprintf("Alert for %s: %v", a.RouteCode, err))
			} else {
				alerts++
			}
		}
		if err := t.store.InsertHistoricalTrend(trendPoint(a)); err != nil {
			logger.Warn("TRACK", fmt.Sprintf("Trend point for %s: %v", a.RouteCode, err))
		}
	}

	if alerts > 0 {
		logger.Info("TRACK", fmt.Sprintf("Raised %d high-value alerts", alerts))
	}
	return nil
}

// Start launches the background loop. No-op when already running.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Active {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.done = make(chan struct{})
	t.state.Active = true

	interval := time.Duration(t.state.IntervalSeconds) * time.Second
	go t.loop(ctx, interval)
	logger.Info("TRACK", fmt.Sprintf("Background tracking started (every %s)", interval))
}

// Stop halts the background loop and waits for the in-flight pass.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if !t.state.Active {
		t.mu.Unlock()
		return
	}
	cancel, done := t.cancel, t.done
	t.state.Active = false
	t.mu.Unlock()

	cancel()
	<-done
	logger.Info("TRACK", "Background tracking stopped")
}

// Status snapshots the tracking state.
func (t *Tracker) Status() TrackingState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Tracker) loop(ctx context.Context, interval time.Duration) {
	defer close(t.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := t.RunRefresh(ctx); err != nil {
				logger.Error("TRACK", fmt.Sprintf("Refresh failed: %v", err))
				continue
			}
			if err := t.TrackOnce(ctx); err != nil {
				logger.Error("TRACK", fmt.Sprintf("Tracking pass failed: %v", err))
			}
		}
	}
}

func trendPoint(a engine.RouteAnalysis) engine.HistoricalTrend {
	return engine.HistoricalTrend{
		RouteCode:     a.RouteCode,
		CommodityName: a.CommodityName,
		Timestamp:     time.Now().UTC(),
		Profit:        a.Profit,
		ROI:           a.ROI,
		TrafficScore:  a.TrafficScore,
		PiracyRating:  a.PiracyRating,
	}
}
