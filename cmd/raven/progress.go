package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/muesli/termenv"
)

const progressColor = "#89b4fa"

// progressLine redraws a single "built n/total" line on a terminal.
type progressLine struct {
	mu    sync.Mutex
	out   *termenv.Output
	drawn bool
}

func newProgressLine(w io.Writer, noColor bool) *progressLine {
	var opts []termenv.OutputOption
	if noColor {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &progressLine{out: termenv.NewOutput(w, opts...)}
}

// Update is a raven.ProgressFunc.
func (p *progressLine) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.out.ClearLine()
	label := p.out.String(fmt.Sprintf("building %d/%d", done, total)).
		Foreground(p.out.Color(progressColor))
	fmt.Fprintf(p.out, "\r%s", label)
	p.drawn = true
}

// Finish erases the line so later output starts on a clean row.
func (p *progressLine) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.drawn {
		return
	}
	p.out.ClearLine()
	fmt.Fprint(p.out, "\r")
	p.drawn = false
}
