package client

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// fallbackDuration is shown when a clip's length can't be determined.
// A probe never blocks playback, it just degrades the label.
const fallbackDuration = "0:01"

const defaultProbeTimeout = 10 * time.Second

// DurationProbe resolves a clip URL to a display-ready duration
// string. The run func is swappable so tests don't need ffprobe on
// PATH.
type DurationProbe struct {
	Timeout time.Duration

	run func(ctx context.Context, url string) (float64, error)
}

func NewDurationProbe() *DurationProbe {
	return &DurationProbe{
		Timeout: defaultProbeTimeout,
		run:     ffprobeDuration,
	}
}

// Probe always resolves. Errors, timeouts and nonsense values fall
// back to a one-second placeholder instead of propagating.
func (p *DurationProbe) Probe(ctx context.Context, url string) string {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	seconds, err := p.run(ctx, url)
	if err != nil {
		zap.L().Debug("Duration probe failed", zap.String("url", url), zap.Error(err))
		return fallbackDuration
	}

	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fallbackDuration
	}

	return FormatClock(seconds)
}

// FormatClock renders seconds as M:SS, minutes unpadded.
func FormatClock(seconds float64) string {
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func ffprobeDuration(ctx context.Context, url string) (float64, error) {
	out, err := exec.CommandContext(ctx,
		"ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		"-i", url,
	).Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe, %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output, %w", err)
	}

	return seconds, nil
}
