package media

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Prober 探测视频时长（秒）
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// FFProbe 基于 ffprobe 的实现；需要本机安装 ffmpeg
type FFProbe struct{}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func (FFProbe) Duration(ctx context.Context, path string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, errors.Wrap(err, "ffprobe")
	}
	return parseDuration(out)
}

func parseDuration(probeJSON string) (float64, error) {
	var p probeOutput
	if err := json.Unmarshal([]byte(probeJSON), &p); err != nil {
		return 0, errors.Wrap(err, "decode ffprobe output")
	}
	if p.Format.Duration == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(p.Format.Duration, 64)
	return d, errors.Wrap(err, "parse duration")
}

// NoopProber 不探测，时长为 0
type NoopProber struct{}

func (NoopProber) Duration(context.Context, string) (float64, error) { return 0, nil }
