package statistics

import (
	"fmt"
	"math"
	"sort"
)

// EpisodeResult represents the outcome of a single simulated episode
type EpisodeResult struct {
	ID        string  // episode ID for log correlation
	Seed      int64   // RNG seed for this episode (for replay)
	Seat      int     // the tracked agent's seat this episode
	Winner    int     // winning seat, -1 if none (truncated or total wipeout)
	Steps     int     // steps taken before the episode ended
	NetReward float64 // cumulative reward earned by the tracked agent
	Truncated bool    // episode hit the step cap or ran out of legal actions
}

// SeatStats tracks results for a specific seat
type SeatStats struct {
	Episodes  int
	Wins      int
	SumReward float64
}

// Statistics aggregates episode results for a simulation run
type Statistics struct {
	Episodes   int
	Wins       int // episodes the tracked agent won
	Truncated  int
	SumReward  float64
	SumReward2 float64   // sum of squares for variance calculation
	Values     []float64 // per-episode rewards for median/percentiles
	TotalSteps int

	// Per-seat analytics for the tracked agent, indexed by seat
	SeatResults []SeatStats
}

// Add incorporates a new episode result into the statistics
func (s *Statistics) Add(result EpisodeResult) {
	reward := result.NetReward
	s.Episodes++
	s.SumReward += reward
	s.SumReward2 += reward * reward
	s.Values = append(s.Values, reward)
	s.TotalSteps += result.Steps

	if result.Winner >= 0 && result.Winner == result.Seat {
		s.Wins++
	}
	if result.Truncated {
		s.Truncated++
	}

	for len(s.SeatResults) <= result.Seat {
		s.SeatResults = append(s.SeatResults, SeatStats{})
	}
	seat := &s.SeatResults[result.Seat]
	seat.Episodes++
	seat.SumReward += reward
	if result.Winner >= 0 && result.Winner == result.Seat {
		seat.Wins++
	}
}

// Merge folds another statistics block into this one. Arenas aggregate
// locally and merge after their errgroup completes.
func (s *Statistics) Merge(other *Statistics) {
	s.Episodes += other.Episodes
	s.Wins += other.Wins
	s.Truncated += other.Truncated
	s.SumReward += other.SumReward
	s.SumReward2 += other.SumReward2
	s.Values = append(s.Values, other.Values...)
	s.TotalSteps += other.TotalSteps
	for seat, stats := range other.SeatResults {
		for len(s.SeatResults) <= seat {
			s.SeatResults = append(s.SeatResults, SeatStats{})
		}
		s.SeatResults[seat].Episodes += stats.Episodes
		s.SeatResults[seat].Wins += stats.Wins
		s.SeatResults[seat].SumReward += stats.SumReward
	}
}

// WinRate returns the fraction of episodes the tracked agent won
func (s *Statistics) WinRate() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Episodes)
}

// SeatWinRate returns the tracked agent's win rate from a specific seat
func (s *Statistics) SeatWinRate(seat int) float64 {
	if seat < 0 || seat >= len(s.SeatResults) || s.SeatResults[seat].Episodes == 0 {
		return 0
	}
	return float64(s.SeatResults[seat].Wins) / float64(s.SeatResults[seat].Episodes)
}

// MeanSteps returns the average episode length in steps
func (s *Statistics) MeanSteps() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(s.TotalSteps) / float64(s.Episodes)
}

// Mean returns the arithmetic mean reward per episode
func (s *Statistics) Mean() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return s.SumReward / float64(s.Episodes)
}

// Variance returns the sample variance of episode rewards
func (s *Statistics) Variance() float64 {
	if s.Episodes < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumReward2 - float64(s.Episodes)*mean*mean) / float64(s.Episodes-1)
}

// StdDev returns the sample standard deviation of episode rewards
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Episodes))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median episode reward
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if s.Episodes <= 0 {
		return fmt.Errorf("invalid episode count: %d", s.Episodes)
	}
	if len(s.Values) != s.Episodes {
		return fmt.Errorf("values array length (%d) does not match episode count (%d)",
			len(s.Values), s.Episodes)
	}
	if s.Wins > s.Episodes {
		return fmt.Errorf("wins (%d) exceed episodes (%d)", s.Wins, s.Episodes)
	}
	seatEpisodes := 0
	seatWins := 0
	for _, seat := range s.SeatResults {
		seatEpisodes += seat.Episodes
		seatWins += seat.Wins
	}
	if seatEpisodes != s.Episodes {
		return fmt.Errorf("seat episode total (%d) does not match episode count (%d)",
			seatEpisodes, s.Episodes)
	}
	if seatWins != s.Wins {
		return fmt.Errorf("seat win total (%d) does not match win count (%d)", seatWins, s.Wins)
	}
	return nil
}
