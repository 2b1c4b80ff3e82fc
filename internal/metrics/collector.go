// Package metrics collects per-episode training metrics: rewards, step
// counts, max tiles and optional losses.
package metrics

import (
	"sort"
	"sync"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// StepLogs is reported at the end of every step.
type StepLogs struct {
	Reward float64
	Loss   *float64 // nil when no loss was computed this step
}

// EpisodeLogs is reported at the end of every episode.
type EpisodeLogs struct {
	Reward  float64
	Score   int
	MaxTile int
}

// Callback receives episode lifecycle events.
type Callback interface {
	OnEpisodeBegin(episode int)
	OnStepEnd(episode int, logs StepLogs)
	OnEpisodeEnd(episode int, logs EpisodeLogs)
}

// Episode is one finished episode.
type Episode struct {
	Index   int
	Reward  float64
	Score   int
	Steps   int
	MaxTile int
}

// Collector records metrics for every episode. It is safe for concurrent
// use, so episodes played in parallel may report to the same collector.
type Collector struct {
	mu       sync.Mutex
	inFlight map[int]int // episode -> steps so far
	episodes []Episode
	losses   []float64
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		inFlight: make(map[int]int),
	}
}

// OnEpisodeBegin resets the step counter for the episode.
func (c *Collector) OnEpisodeBegin(episode int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight[episode] = 0
}

// OnStepEnd counts a step and captures its loss, if any.
func (c *Collector) OnStepEnd(episode int, logs StepLogs) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight[episode]++
	if logs.Loss != nil {
		c.losses = append(c.losses, *logs.Loss)
	}
}

// OnEpisodeEnd records the finished episode.
func (c *Collector) OnEpisodeEnd(episode int, logs EpisodeLogs) {
	c.mu.Lock()
	defer c.mu.Unlock()
	steps := c.inFlight[episode]
	delete(c.inFlight, episode)
	c.episodes = append(c.episodes, Episode{
		Index:   episode,
		Reward:  logs.Reward,
		Score:   logs.Score,
		Steps:   steps,
		MaxTile: logs.MaxTile,
	})
}

// Episodes returns finished episodes ordered by episode index.
func (c *Collector) Episodes() []Episode {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Episode, len(c.episodes))
	copy(out, c.episodes)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Index < out[j].Index
	})
	return out
}

// Losses returns the recorded step losses in arrival order.
func (c *Collector) Losses() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]float64(nil), c.losses...)
}

// Summary aggregates the recorded episodes.
type Summary struct {
	Episodes   int
	MeanReward float64
	StdReward  float64
	MeanScore  float64
	MeanSteps  float64
	BestScore  int
	BestTile   int
	TileCounts map[int]int // max tile -> number of episodes that ended with it
	MeanLoss   float64
	Losses     int
}

// Summary computes aggregate statistics over all finished episodes.
func (c *Collector) Summary() Summary {
	episodes := c.Episodes()
	losses := c.Losses()

	s := Summary{
		Episodes:   len(episodes),
		TileCounts: map[int]int{},
		Losses:     len(losses),
	}
	if len(losses) > 0 {
		s.MeanLoss = stat.Mean(losses, nil)
	}
	if len(episodes) == 0 {
		return s
	}

	rewards := lo.Map(episodes, func(e Episode, _ int) float64 { return e.Reward })
	scores := lo.Map(episodes, func(e Episode, _ int) float64 { return float64(e.Score) })
	steps := lo.Map(episodes, func(e Episode, _ int) float64 { return float64(e.Steps) })
	tiles := lo.Map(episodes, func(e Episode, _ int) int { return e.MaxTile })

	if len(rewards) > 1 {
		s.MeanReward, s.StdReward = stat.MeanStdDev(rewards, nil)
	} else {
		s.MeanReward = rewards[0]
	}
	s.MeanScore = stat.Mean(scores, nil)
	s.MeanSteps = stat.Mean(steps, nil)
	s.BestScore = lo.MaxBy(episodes, func(a, b Episode) bool { return a.Score > b.Score }).Score
	s.BestTile = lo.Max(tiles)
	s.TileCounts = lo.CountValues(tiles)
	return s
}

// TileRate returns the fraction of episodes whose max tile reached at least tile.
func (s Summary) TileRate(tile int) float64 {
	if s.Episodes == 0 {
		return 0
	}
	n := 0
	for t, count := range s.TileCounts {
		if t >= tile {
			n += count
		}
	}
	return float64(n) / float64(s.Episodes)
}
