package component

// Voice is a playing one-shot sound.
type Voice interface {
	IsPlaying() bool
	Stop()
}

// AudioCue is a pooled one-shot sound. Play requests are queued and started
// on the following frame; the cue repools itself once the voice stops.
type AudioCue struct {
	Clip      string
	Volume    float64
	BasePitch float64
	X, Y      float64

	// Queued cues start on the first frame after QueuedFrame.
	Queued      bool
	QueuedFrame uint64
	Voice       Voice
}

var AudioCueComponent = NewComponent[AudioCue]()
