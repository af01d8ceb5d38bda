package presenter

import (
	"io"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// LoadProgress shows a progress bar while a scan file is loaded. It
// implements repository.LoadObserver.
type LoadProgress struct {
	progress *mpb.Progress
	bar      *mpb.Bar
	last     time.Time
}

// NewLoadProgress creates a bar expecting total records, drawn on out
func NewLoadProgress(out io.Writer, name string, total int64, width int) *LoadProgress {
	p := mpb.New(mpb.WithOutput(out), mpb.WithWidth(width/2))
	bar := p.AddBar(total,
		mpb.PrependDecorators(
			decor.Name(name, decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("[%d / %d]", decor.WCSyncWidth),
			decor.Percentage(decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncSpace), "done",
			),
		),
	)
	return &LoadProgress{progress: p, bar: bar, last: time.Now()}
}

// OnRecord advances the bar by one record
func (lp *LoadProgress) OnRecord() {
	now := time.Now()
	lp.bar.EwmaIncrement(now.Sub(lp.last))
	lp.last = now
}

// OnDone completes the bar and waits for it to be drawn
func (lp *LoadProgress) OnDone() {
	lp.bar.SetTotal(-1, true)
	lp.progress.Wait()
}
