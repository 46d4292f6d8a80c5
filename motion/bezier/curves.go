package bezier

import (
	"sort"
	"strings"
)

// Named timing curves. Control points follow easings.net.
var (
	Linear    = New(1, 1, 1, 1)
	Ease      = New(0, 0, 0.2, 1)
	EaseInOut = New(0.42, 0, 0.58, 1)

	EaseInSine  = New(0.47, 0, 0.745, 0.715)
	EaseInCubic = New(0.55, 0.055, 0.675, 0.19)
	EaseInQuint = New(0.755, 0.05, 0.855, 0.06)
	EaseInQuad  = New(0.55, 0.085, 0.68, 0.53)
	EaseInQuart = New(0.895, 0.03, 0.685, 0.22)
	EaseInExpo  = New(0.95, 0.05, 0.795, 0.035)
	EaseInBack  = New(0.6, -0.28, 0.735, 0.045)

	EaseOutSine  = New(0.39, 0.575, 0.565, 1)
	EaseOutCubic = New(0.215, 0.61, 0.355, 1)
	EaseOutQuint = New(0.23, 1, 0.32, 1)
	EaseOutQuad  = New(0.25, 0.46, 0.45, 0.94)
	EaseOutQuart = New(0.165, 0.84, 0.44, 1)
	EaseOutExpo  = New(0.19, 1, 0.22, 1)
	EaseOutBack  = New(0.175, 0.885, 0.32, 1.275)

	EaseInOutSine  = New(0.445, 0.05, 0.55, 0.95)
	EaseInOutCubic = New(0.645, 0.045, 0.355, 1)
	EaseInOutQuint = New(0.86, 0, 0.07, 1)
	EaseInOutQuad  = New(0.455, 0.03, 0.515, 0.955)
	EaseInOutQuart = New(0.77, 0, 0.175, 1)
	EaseInOutExpo  = New(1, 0, 0, 1)
	EaseInOutBack  = New(0.68, -0.55, 0.265, 1.55)
)

var table = map[string]Curve{
	"linear":    Linear,
	"ease":      Ease,
	"easeinout": EaseInOut,

	"easeinsine":  EaseInSine,
	"easeincubic": EaseInCubic,
	"easeinquint": EaseInQuint,
	"easeinquad":  EaseInQuad,
	"easeinquart": EaseInQuart,
	"easeinexpo":  EaseInExpo,
	"easeinback":  EaseInBack,

	"easeoutsine":  EaseOutSine,
	"easeoutcubic": EaseOutCubic,
	"easeoutquint": EaseOutQuint,
	"easeoutquad":  EaseOutQuad,
	"easeoutquart": EaseOutQuart,
	"easeoutexpo":  EaseOutExpo,
	"easeoutback":  EaseOutBack,

	"easeinoutsine":  EaseInOutSine,
	"easeinoutcubic": EaseInOutCubic,
	"easeinoutquint": EaseInOutQuint,
	"easeinoutquad":  EaseInOutQuad,
	"easeinoutquart": EaseInOutQuart,
	"easeinoutexpo":  EaseInOutExpo,
	"easeinoutback":  EaseInOutBack,
}

// Lookup returns the named curve. Matching ignores case, '-' and '_', so
// "EaseOutBack", "ease-out-back" and "ease_out_back" are the same curve.
func Lookup(name string) (Curve, bool) {
	key := strings.ToLower(name)
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	c, ok := table[key]
	return c, ok
}

// Names returns the normalized names of all table curves, sorted.
func Names() []string {
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
