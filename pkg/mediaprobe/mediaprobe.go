package mediaprobe

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/abema/go-mp4"
	"github.com/gabriel-vasile/mimetype"
	"github.com/robinjoseph08/golib/logger"
)

// ZeroDuration is the formatted duration substituted whenever extraction
// fails. Extraction failures are logged and never surface to callers.
const ZeroDuration = "00:00"

// Prober maps a video file path to a formatted duration string.
type Prober interface {
	Duration(ctx context.Context, path string) string
}

// MP4Prober reads the duration out of the mvhd box of MP4 containers. Other
// container formats degrade to ZeroDuration.
type MP4Prober struct{}

func New() *MP4Prober {
	return &MP4Prober{}
}

func (p *MP4Prober) Duration(ctx context.Context, path string) string {
	log := logger.FromContext(ctx).Data(logger.Data{"path": path})

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		log.Err(err).Warn("duration probe: can't detect mime type")
		return ZeroDuration
	}
	if !mtype.Is("video/mp4") {
		// Only MP4 containers are probed; everything else keeps the zero
		// duration until playback reports one.
		return ZeroDuration
	}

	f, err := os.Open(path)
	if err != nil {
		log.Err(err).Warn("duration probe: open error")
		return ZeroDuration
	}
	defer f.Close()

	info, err := mp4.Probe(f)
	if err != nil {
		log.Err(err).Warn("duration probe: parse error")
		return ZeroDuration
	}
	if info.Timescale == 0 {
		log.Warn("duration probe: zero timescale")
		return ZeroDuration
	}

	seconds := float64(info.Duration) / float64(info.Timescale)
	return FormatDuration(time.Duration(seconds * float64(time.Second)))
}

// FormatDuration renders a duration as HH:MM:SS when it spans at least an
// hour and MM:SS otherwise.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return ZeroDuration
	}

	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
