// Package tween plays declarative timelines of float tracks. A timeline is a
// set of tracks, each interpolating one value from a start to an end over a
// duration, starting at an offset from the timeline start. The player advances
// every active timeline by frame time and fires the timeline's completion
// callback once, after all of its tracks have finished.
package tween

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Easing is a gween easing function (t, begin, change, duration).
type Easing = ease.TweenFunc

// Track describes one interpolated value.
type Track struct {
	From, To float32
	Duration time.Duration
	Offset   time.Duration // start relative to the timeline start
	Ease     Easing        // nil means linear
	Set      func(v float32)
}

// Timeline is a group of tracks that complete together.
type Timeline struct {
	Tracks []Track
}

// Add appends a track and returns the timeline for chaining.
func (tl *Timeline) Add(tr Track) *Timeline {
	tl.Tracks = append(tl.Tracks, tr)
	return tl
}

// Duration is the time at which the last track ends.
func (tl *Timeline) Duration() time.Duration {
	var d time.Duration
	for _, tr := range tl.Tracks {
		if end := tr.Offset + tr.Duration; end > d {
			d = end
		}
	}
	return d
}

// Handle refers to a playing timeline.
type Handle struct {
	p *playing
}

// Active reports whether the timeline is still playing.
func (h Handle) Active() bool {
	return h.p != nil && !h.p.done
}

// Cancel stops the timeline without firing its completion callback. Tracks keep
// whatever value they last wrote. It returns false if the timeline already ended.
func (h Handle) Cancel() bool {
	if !h.Active() {
		return false
	}
	h.p.done = true
	return true
}

type runningTrack struct {
	track    Track
	tw       *gween.Tween
	started  bool
	finished bool
}

type playing struct {
	elapsed    time.Duration
	tracks     []*runningTrack
	onComplete func()
	done       bool
}

// Player drives timelines. It is not safe for concurrent use; call it from the frame loop.
type Player struct {
	active []*playing
}

// NewPlayer returns an idle player.
func NewPlayer() *Player {
	return &Player{}
}

// Play starts tl now. onComplete (may be nil) runs from Update once every track has finished.
// Tracks starting at offset zero write their start value immediately.
func (p *Player) Play(tl Timeline, onComplete func()) Handle {
	pl := &playing{onComplete: onComplete}
	for _, tr := range tl.Tracks {
		fn := tr.Ease
		if fn == nil {
			fn = ease.Linear
		}
		pl.tracks = append(pl.tracks, &runningTrack{
			track: tr,
			tw:    gween.New(tr.From, tr.To, float32(tr.Duration.Seconds()), fn),
		})
	}
	p.active = append(p.active, pl)
	p.step(pl, 0)
	return Handle{p: pl}
}

// Update advances all timelines by dt and fires completions for the ones that finished.
func (p *Player) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	// completion callbacks may Play new timelines; iterate over a snapshot
	current := p.active
	for _, pl := range current {
		p.step(pl, dt)
	}
	kept := p.active[:0]
	for _, pl := range p.active {
		if !pl.done {
			kept = append(kept, pl)
		}
	}
	for i := len(kept); i < len(p.active); i++ {
		p.active[i] = nil
	}
	p.active = kept
}

// Len returns the number of timelines still playing.
func (p *Player) Len() int {
	n := 0
	for _, pl := range p.active {
		if !pl.done {
			n++
		}
	}
	return n
}

func (p *Player) step(pl *playing, dt time.Duration) {
	if pl.done {
		return
	}
	prev := pl.elapsed
	pl.elapsed += dt
	all := true
	for _, rt := range pl.tracks {
		if !rt.finished {
			advanceTrack(rt, prev, pl.elapsed)
		}
		all = all && rt.finished
	}
	if !all {
		return
	}
	pl.done = true
	if pl.onComplete != nil {
		pl.onComplete()
	}
}

// advanceTrack moves rt from timeline time prev to now, clipped to its own window.
func advanceTrack(rt *runningTrack, prev, now time.Duration) {
	start := rt.track.Offset
	if now < start {
		return
	}
	from := prev - start
	if from < 0 {
		from = 0
	}
	local := now - start
	if local > rt.track.Duration {
		local = rt.track.Duration
	}
	step := local - from
	if !rt.started {
		step = local
		rt.started = true
	}
	if step < 0 {
		step = 0
	}
	v, finished := rt.tw.Update(float32(step.Seconds()))
	if local >= rt.track.Duration {
		v, finished = rt.track.To, true
	}
	if rt.track.Set != nil {
		rt.track.Set(v)
	}
	rt.finished = finished
}
