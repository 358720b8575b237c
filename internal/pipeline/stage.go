package pipeline

// Stage is a step of a pipeline run.  Runs move forward through the stages
// in order and stop at Done or Failed.
type Stage int

const (
	Init Stage = iota
	Validated
	Imported
	Tiled
	Extracted
	Exported
	Done
	Failed
)

var stageNames = map[Stage]string{
	Init:      "init",
	Validated: "validated",
	Imported:  "imported",
	Tiled:     "tiled",
	Extracted: "extracted",
	Exported:  "exported",
	Done:      "done",
	Failed:    "failed",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Result describes how far a run got.
type Result struct {
	// Stages lists every stage the run reached, in order.
	Stages []Stage
	// Workspace is the retained working directory.  It is empty when the
	// directory was removed.
	Workspace string
	// Archive is the path of the retained tile archive, if there is one.
	Archive string
}

// Stage returns the last stage reached.
func (r *Result) Stage() Stage {
	if len(r.Stages) == 0 {
		return Init
	}
	return r.Stages[len(r.Stages)-1]
}

// Reached reports whether the run passed through the given stage.
func (r *Result) Reached(stage Stage) bool {
	for _, s := range r.Stages {
		if s == stage {
			return true
		}
	}
	return false
}

func (r *Result) advance(stage Stage) {
	r.Stages = append(r.Stages, stage)
}
