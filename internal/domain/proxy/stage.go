package proxy

// Stage is a step of the rewrite pipeline
type Stage int

const (
	StageFetching Stage = iota
	StageParsing
	StageRewriting
	StageSerializing
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageFetching:
		return "fetching"
	case StageParsing:
		return "parsing"
	case StageRewriting:
		return "rewriting"
	case StageSerializing:
		return "serializing"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Stages lists the working stages in execution order
func Stages() []Stage {
	return []Stage{StageFetching, StageParsing, StageRewriting, StageSerializing}
}
