package service

import (
	"time"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/model"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/pi"
)

// SetAlgorithm swaps the algorithm backing mode.
func (s *PiService) SetAlgorithm(mode model.Mode, algorithm pi.Algorithm) {
	s.algorithms[mode] = algorithm
}

// SetClock pins the timestamp written to persisted records.
func (s *PiService) SetClock(now func() time.Time) {
	s.now = now
}
