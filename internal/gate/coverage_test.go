package gate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wwiii/pipeline/internal/gate"
)

func TestExtractCoverage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		output string
		want   float64
		wantOK bool
	}{
		{
			name:   "typical coverage report",
			output: "Name    Stmts   Miss  Cover\napp/main.py 50 2 96%\nTOTAL     120     10    92%\n",
			want:   92,
			wantOK: true,
		},
		{
			name:   "fractional percentage",
			output: "TOTAL 200 13 93.5%\n",
			want:   93.5,
			wantOK: true,
		},
		{
			name:   "first percentage after the token wins",
			output: "TOTAL 500 75 85% 90%\n",
			want:   85,
			wantOK: true,
		},
		{
			name:   "percentage before token is ignored",
			output: "coverage 50% reported\nTOTAL 100 12 88%\n",
			want:   88,
			wantOK: true,
		},
		{
			name:   "no TOTAL line",
			output: "Name Stmts Miss Cover\napp/main.py 50 2 96%\n",
			wantOK: false,
		},
		{
			name:   "TOTAL line without percentage",
			output: "TOTAL 120 10\n",
			wantOK: false,
		},
		{
			name:   "empty output",
			output: "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := gate.ExtractCoverage(tt.output)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestCoverageThreshold(t *testing.T) {
	t.Parallel()

	const threshold = 85.0

	runGate := func(t *testing.T, testOutput string) gate.Result {
		t.Helper()
		rc := gate.NewRunContext("/tmp", NewMockCommandRunner(), time.Minute)
		rc.Outputs["test-coverage"] = testOutput
		g := gate.CoverageThreshold("coverage-threshold", "test-coverage", threshold)
		return g.Run(testContext(), rc)
	}

	t.Run("passes when coverage meets threshold", func(t *testing.T) {
		t.Parallel()
		result := runGate(t, "TOTAL 100 10 90%\n")
		assert.Equal(t, gate.OutcomePassed, result.Outcome)
		assert.Empty(t, result.Warning)
	})

	t.Run("passes at exactly the threshold", func(t *testing.T) {
		t.Parallel()
		result := runGate(t, "TOTAL 100 15 85%\n")
		assert.Equal(t, gate.OutcomePassed, result.Outcome)
	})

	t.Run("fails when coverage is below threshold", func(t *testing.T) {
		t.Parallel()
		result := runGate(t, "TOTAL 100 30 70%\n")
		assert.Equal(t, gate.OutcomeFailed, result.Outcome)
		assert.Contains(t, result.Reason, "70.0%")
		assert.Contains(t, result.Reason, "85.0%")
	})

	// The inherited asymmetry: unparseable coverage passes with a warning,
	// while a parseable-but-low value fails.
	t.Run("passes with warning when coverage is unparseable", func(t *testing.T) {
		t.Parallel()
		result := runGate(t, "no coverage summary here\n")
		assert.Equal(t, gate.OutcomePassed, result.Outcome)
		assert.Equal(t, "could not determine coverage from test output", result.Warning)
	})

	t.Run("passes with warning when source gate output is missing", func(t *testing.T) {
		t.Parallel()
		rc := gate.NewRunContext("/tmp", NewMockCommandRunner(), time.Minute)
		g := gate.CoverageThreshold("coverage-threshold", "test-coverage", threshold)
		result := g.Run(testContext(), rc)
		assert.Equal(t, gate.OutcomePassed, result.Outcome)
		assert.NotEmpty(t, result.Warning)
	})
}
