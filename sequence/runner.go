package sequence

// Runner holds at most one running sequence for an owner. Starting a new
// sequence replaces the current one without stepping it again.
type Runner struct {
	current Sequence
	gen     uint64
}

// Start replaces the running sequence with s.
func (r *Runner) Start(s Sequence) {
	if r == nil {
		return
	}
	r.gen++
	r.current = s
}

// Running reports whether a sequence is in progress.
func (r *Runner) Running() bool {
	return r != nil && r.current != nil
}

// Cancel stops the running sequence. Safe to call repeatedly or when idle.
func (r *Runner) Cancel() {
	if r == nil {
		return
	}
	r.gen++
	r.current = nil
}

// Step advances the running sequence once. A sequence that starts or cancels
// from inside its own step keeps that change.
func (r *Runner) Step(dt float64) {
	if r == nil || r.current == nil {
		return
	}
	gen := r.gen
	status := r.current.Step(dt)
	if r.gen != gen {
		return
	}
	if status == Done {
		r.current = nil
	}
}
