package model

// Stage identifies a fetch pipeline stage for progress reporting
type Stage string

const (
	StageDownload Stage = "download"
	StageExtract  Stage = "extract"
	StageCleanup  Stage = "cleanup"
	StageDone     Stage = "done"
)
