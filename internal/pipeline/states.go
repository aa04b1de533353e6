package pipeline

import "ecoacustica/internal/records"

// State represents the lifecycle of the processing engine.
type State string

const (
	StateIdle                  State = "idle"
	StateUploading             State = "uploading"
	StateGeneratingSpectrogram State = "generating_spectrogram"
	StateAnalyzing             State = "analyzing"
	StateIdentifying           State = "identifying"
	StateDone                  State = "done"
	StateCancelled             State = "cancelled"
	StateFailed                State = "failed"
)

// Terminal reports whether the state ends a run.
func (s State) Terminal() bool {
	switch s {
	case StateDone, StateCancelled, StateFailed:
		return true
	default:
		return false
	}
}

// Active reports whether a submission is currently being processed.
func (s State) Active() bool {
	switch s {
	case StateUploading, StateGeneratingSpectrogram, StateAnalyzing, StateIdentifying:
		return true
	default:
		return false
	}
}

// Stage quartile boundaries. Progress in [0,25) is the upload stage, [25,50)
// spectrogram generation, [50,75) analysis, and [75,100] identification.
const (
	uploadBoundary      = 25.0
	spectrogramBoundary = 50.0
	analysisBoundary    = 75.0
	completeBoundary    = 100.0
)

// stageFor maps a progress value to the state of the stage being worked on.
func stageFor(progress float64) State {
	switch {
	case progress < uploadBoundary:
		return StateUploading
	case progress < spectrogramBoundary:
		return StateGeneratingSpectrogram
	case progress < analysisBoundary:
		return StateAnalyzing
	default:
		return StateIdentifying
	}
}

// stepsFor latches the flag for every stage whose quartile has been crossed.
func stepsFor(progress float64) records.ProcessingSteps {
	return records.ProcessingSteps{
		Upload:         progress >= uploadBoundary,
		Spectrogram:    progress >= spectrogramBoundary,
		Analysis:       progress >= analysisBoundary,
		Identification: progress >= completeBoundary,
	}
}
