package model

// Phase describes which stage of a download produced a progress record
type Phase string

const (
	// PhaseDownloading means bytes are still being transferred
	PhaseDownloading Phase = "Downloading"

	// PhaseMerging means the resolver is muxing already-downloaded streams
	PhaseMerging Phase = "Merging"

	// PhaseFinished means the resolver reported the file as complete
	PhaseFinished Phase = "Finished"
)

// Progress is one canonical progress record. Each record supersedes the
// previous one; it is never retained beyond the owning task's lifetime.
type Progress struct {
	Percent    int     // 0 to 100
	SpeedBPS   float64 // bytes per second, 0 if unknown
	ETASeconds int     // -1 if unknown
	Phase      Phase
}
