package mad

// Limits are safety rails against runaway input. Exceeding one of them fails
// the conversion with the corresponding ErrorKind.
type Limits struct {
	MaxIncludeDepth int `ini:"MaxIncludeDepth"`
	MaxHeaps        int `ini:"MaxHeaps"`
	MaxHeapStrings  int `ini:"MaxHeapStrings"`
	MaxDefines      int `ini:"MaxDefines"`
}

// DefaultLimits are used for any Limits field that is zero.
var DefaultLimits = Limits{
	MaxIncludeDepth: 8,
	MaxHeaps:        64,
	MaxHeapStrings:  4096,
	MaxDefines:      1024,
}

func (l Limits) withDefaults() Limits {
	if l.MaxIncludeDepth <= 0 {
		l.MaxIncludeDepth = DefaultLimits.MaxIncludeDepth
	}
	if l.MaxHeaps <= 0 {
		l.MaxHeaps = DefaultLimits.MaxHeaps
	}
	if l.MaxHeapStrings <= 0 {
		l.MaxHeapStrings = DefaultLimits.MaxHeapStrings
	}
	if l.MaxDefines <= 0 {
		l.MaxDefines = DefaultLimits.MaxDefines
	}
	return l
}
