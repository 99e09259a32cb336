package sanitize

import "fmt"

// Level is the masking strictness. Levels are totally ordered: each level's
// masking is a superset of the one below it.
type Level string

const (
	LevelNormal   Level = "normal"
	LevelStrict   Level = "strict"
	LevelParanoid Level = "paranoid"
)

// levelOrder drives the orchestrator's escalation and the ordering
// guarantees between levels.
var levelOrder = []Level{LevelNormal, LevelStrict, LevelParanoid}

var levelRank = map[Level]int{
	LevelNormal:   0,
	LevelStrict:   1,
	LevelParanoid: 2,
}

// ErrInvalidLevel is returned by Mask for levels outside the closed set.
// Callers must not treat it as recoverable: it is a programmer error and
// never silently defaults to another level.
type ErrInvalidLevel struct {
	Level Level
}

func (e *ErrInvalidLevel) Error() string {
	return fmt.Sprintf("invalid sanitize level: %q", string(e.Level))
}

// Valid reports whether l is one of the three defined levels.
func (l Level) Valid() bool {
	_, ok := levelRank[l]
	return ok
}

// AtLeast reports whether l is at least as strict as other.
func (l Level) AtLeast(other Level) bool {
	return levelRank[l] >= levelRank[other]
}
