package detect

import (
	"github.com/fwkit/bcmfw/internal/catalog"
	"go.uber.org/zap"
)

// Confidence is the qualitative trust level of a detection result.
type Confidence int

const (
	// ConfidenceExact means the result comes from a trusted hardware
	// identity (board name, platform properties)
	ConfidenceExact Confidence = iota
	// ConfidenceLikely means the result is a best-effort guess
	// (log scan, firmware filename match) and must be presented as such
	ConfidenceLikely
)

// String returns the confidence label used in reports.
func (c Confidence) String() string {
	switch c {
	case ConfidenceExact:
		return "exact"
	case ConfidenceLikely:
		return "likely"
	default:
		return "unknown"
	}
}

// Detection is one identified chip with the evidence that produced it.
type Detection struct {
	Profile    *catalog.ChipProfile
	Confidence Confidence
	Strategy   string
	// Evidence is the raw observed signal that matched (model string,
	// property triple, log line, filename)
	Evidence string
}

// StrategyResult records one strategy attempt for the report.
type StrategyResult struct {
	// Strategy is the strategy name
	Strategy string
	// Skipped is true when the signal source was unavailable
	Skipped bool
	// Detail is a human-readable note about the attempt
	Detail string
	// Detections holds the matches, empty when the strategy declined
	Detections []Detection
}

// Strategy is one self-contained probe that attempts to identify the
// chip from a specific signal source. TryDetect never fails: an
// unavailable signal source is a decline (Skipped), and strategies
// have no side effects on the host.
type Strategy interface {
	Name() string
	TryDetect() StrategyResult
}

// Engine runs detection strategies in fixed priority order, stopping
// at the first strategy that produces any detection. The order is part
// of the correctness contract: trusted hardware identity first, then
// platform properties, then log scanning, then firmware filenames.
type Engine struct {
	strategies []Strategy
	logger     *zap.Logger
}

// NewEngine builds the default strategy chain over the given probes.
func NewEngine(cat *catalog.Catalog, probes Probes, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		strategies: []Strategy{
			&boardStrategy{cat: cat, probe: probes.Board},
			&propertyStrategy{cat: cat, probe: probes.Properties},
			&kernelLogStrategy{cat: cat, probe: probes.KernelLog},
			&firmwareDirStrategy{cat: cat, probe: probes.FirmwareDirs},
		},
		logger: logger,
	}
}

// NewEngineWithStrategies builds an engine over an explicit strategy
// list, in the given priority order.
func NewEngineWithStrategies(strategies []Strategy, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{strategies: strategies, logger: logger}
}

// StrategyNames returns the chain in priority order.
func (e *Engine) StrategyNames() []string {
	names := make([]string, len(e.strategies))
	for i, s := range e.strategies {
		names[i] = s.Name()
	}
	return names
}

// Detect runs the chain. It returns the detections of the first
// successful strategy (possibly more than one chip for the firmware
// directory strategy) and the per-strategy attempt records for
// reporting. An empty detection list is a valid outcome (detection
// inconclusive), not an error.
func (e *Engine) Detect() ([]Detection, []StrategyResult) {
	var attempts []StrategyResult

	for _, s := range e.strategies {
		result := s.TryDetect()
		attempts = append(attempts, result)

		outcome := "no match"
		if result.Skipped {
			outcome = "skipped"
		} else if len(result.Detections) > 0 {
			outcome = "matched"
		}
		e.logger.Debug("detection strategy",
			zap.String("strategy", s.Name()),
			zap.String("outcome", outcome),
			zap.Int("matches", len(result.Detections)),
		)

		if len(result.Detections) > 0 {
			return result.Detections, attempts
		}
	}

	return nil, attempts
}
