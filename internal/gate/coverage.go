package gate

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// coverageTotalToken is the literal token marking the summary line of the
// coverage report's terminal output.
const coverageTotalToken = "TOTAL"

// coveragePercentRe matches a percentage-shaped number such as "85%" or "92.4%".
var coveragePercentRe = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)

// ExtractCoverage locates a line containing the literal token TOTAL in the
// coverage report output and extracts the first percentage-shaped number
// following the token on that line. The boolean result is false when no such
// value can be determined.
//
// All the brittle text scraping is isolated here; the surrounding gate only
// deals with the parsed value.
func ExtractCoverage(output string) (float64, bool) {
	for _, line := range strings.Split(output, "\n") {
		idx := strings.Index(line, coverageTotalToken)
		if idx < 0 {
			continue
		}
		match := coveragePercentRe.FindStringSubmatch(line[idx+len(coverageTotalToken):])
		if match == nil {
			continue
		}
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		return value, true
	}
	return 0, false
}

// CoverageThreshold creates an analysis gate that checks the coverage
// percentage parsed from a prior gate's output against a minimum threshold.
//
// The check is asymmetric: a parsed value below the threshold fails the
// gate, while a missing or unparseable value passes it with a warning.
// Indeterminate coverage is a reporting problem, not a quality failure.
func CoverageThreshold(name, sourceGate string, threshold float64) Gate {
	return Gate{
		Name: name,
		Run: func(ctx context.Context, rc *RunContext) Result {
			log := zerolog.Ctx(ctx)

			startedAt := rc.now()
			result := Result{
				Gate:      name,
				StartedAt: startedAt,
			}

			coverage, ok := ExtractCoverage(rc.Outputs[sourceGate])
			switch {
			case !ok:
				result.Outcome = OutcomePassed
				result.Warning = "could not determine coverage from test output"
				log.Warn().
					Str("gate", name).
					Str("source_gate", sourceGate).
					Msg("could not determine coverage, continuing")
			case coverage < threshold:
				result.Outcome = OutcomeFailed
				result.Reason = fmt.Sprintf("coverage %.1f%% is below threshold %.1f%%", coverage, threshold)
				log.Error().
					Str("gate", name).
					Float64("coverage", coverage).
					Float64("threshold", threshold).
					Msg("coverage below threshold")
			default:
				result.Outcome = OutcomePassed
				log.Info().
					Str("gate", name).
					Float64("coverage", coverage).
					Float64("threshold", threshold).
					Msg("coverage meets threshold")
			}

			result.CompletedAt = rc.now()
			result.DurationMs = result.CompletedAt.Sub(startedAt).Milliseconds()
			return result
		},
	}
}
