package visualizer

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

type colorProfile uint8

const (
	colorNone colorProfile = iota
	colorANSI16
	colorANSI256
	colorTrueColor
)

type colorRGB struct {
	R, G, B uint8
}

func (c colorRGB) key() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

var (
	profileOnce sync.Once
	profile     colorProfile
	seqCache    sync.Map
)

func currentColorProfile() colorProfile {
	profileOnce.Do(func() {
		profile = detectProfile(os.LookupEnv)
	})
	return profile
}

// detectProfile reads NO_COLOR, COLORTERM and TERM through lookup.
func detectProfile(lookup func(string) (string, bool)) colorProfile {
	if _, disabled := lookup("NO_COLOR"); disabled {
		return colorNone
	}
	env := func(k string) string {
		v, _ := lookup(k)
		return strings.ToLower(v)
	}
	colorTerm, term := env("COLORTERM"), env("TERM")
	switch {
	case strings.Contains(colorTerm, "truecolor"), strings.Contains(colorTerm, "24bit"):
		return colorTrueColor
	case strings.Contains(term, "256color"):
		return colorANSI256
	case term == "", term == "dumb":
		return colorNone
	}
	return colorANSI16
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

func lerpColor(a, b colorRGB, t float64) colorRGB {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return colorRGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

var (
	surfaceColor = colorRGB{R: 92, G: 214, B: 255}
	deepColor    = colorRGB{R: 12, G: 44, B: 128}
	dropColor    = colorRGB{R: 208, G: 238, B: 255}
	glyphColor   = colorRGB{R: 255, G: 244, B: 214}
)

// waterColor shades the liquid by depth below the surface, 0 at the surface
// and 1 at a full stage height below it.
func waterColor(depth float64) colorRGB {
	return lerpColor(surfaceColor, deepColor, depth*1.6)
}

// textColor fades a revealed glyph in from the water colour.
func textColor(opacity float64) colorRGB {
	return lerpColor(surfaceColor, glyphColor, opacity)
}

// ansi16 are the eight normal foreground colours, indexed from 30.
var ansi16 = [...]colorRGB{
	{0, 0, 0},
	{205, 49, 49},
	{13, 188, 121},
	{229, 229, 16},
	{36, 114, 200},
	{188, 63, 188},
	{17, 168, 205},
	{229, 229, 229},
}

func nearestANSI16(c colorRGB) int {
	best, bestDist := 0, -1
	for i, p := range ansi16 {
		dr, dg, db := int(c.R)-int(p.R), int(c.G)-int(p.G), int(c.B)-int(p.B)
		if d := dr*dr + dg*dg + db*db; bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func cubeIndex(c colorRGB) int {
	q := func(v uint8) int { return int(v) * 5 / 255 }
	return 16 + 36*q(c.R) + 6*q(c.G) + q(c.B)
}

// ansiState writes a colour escape only when the colour changes.
type ansiState struct {
	profile colorProfile
	current uint32
	active  bool
}

func newANSIStateFor(profile colorProfile) ansiState {
	return ansiState{profile: profile}
}

func (s *ansiState) set(sb *strings.Builder, c colorRGB) {
	if s.profile == colorNone || (s.active && c.key() == s.current) {
		return
	}
	sb.WriteString(colorSequence(s.profile, c))
	s.current, s.active = c.key(), true
}

func (s *ansiState) reset(sb *strings.Builder) {
	if !s.active {
		return
	}
	sb.WriteString("\x1b[0m")
	s.active = false
}

func colorSequence(profile colorProfile, c colorRGB) string {
	key := uint32(profile)<<24 | c.key()
	if seq, ok := seqCache.Load(key); ok {
		return seq.(string)
	}

	var seq string
	switch profile {
	case colorTrueColor:
		seq = fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
	case colorANSI256:
		seq = fmt.Sprintf("\x1b[38;5;%dm", cubeIndex(c))
	case colorANSI16:
		seq = fmt.Sprintf("\x1b[%dm", 30+nearestANSI16(c))
	}
	seqCache.Store(key, seq)
	return seq
}
