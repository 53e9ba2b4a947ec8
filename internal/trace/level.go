package trace

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // templates, kept in memory and dumped on failure
	LevelPhase        // commands and manifests
	LevelDetail       // plus templates
	LevelDebug        // plus fields
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

func (l Level) String() string { return enumName(levelNames[:], int(l)) }

// ParseLevel reads a --trace-level value.
func ParseLevel(s string) (Level, error) {
	i, err := parseEnum("trace level", levelNames[:], s)
	return Level(i), err
}

// ShouldEmit returns true if the given scope should emit at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopeManifest
	case LevelDetail, LevelError:
		return scope <= ScopeTemplate
	case LevelDebug:
		return true
	}
	return false
}
