// Package vercmp orders Gentoo package version strings.
//
// The ordering follows the package manager specification: dotted numeric
// components, an optional trailing letter, optional _alpha/_beta/_pre/_rc/_p
// suffixes, and an optional -rN revision. The resolver consumes this through
// a plain compare function so the authoritative ordering stays pluggable.
package vercmp

import (
	"regexp"
	"strconv"
	"strings"
)

var versionRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)([a-z]?)((?:_(?:alpha|beta|pre|rc|p)\d*)*)(?:-r(\d+))?$`)

// suffixRank orders release suffixes; the empty suffix ranks between _rc and _p.
var suffixRank = map[string]int{
	"alpha": -4,
	"beta":  -3,
	"pre":   -2,
	"rc":    -1,
	"":      0,
	"p":     1,
}

type parsed struct {
	numbers  []string
	letter   string
	suffixes []suffix
	revision int
}

type suffix struct {
	name string
	num  int
}

// Compare returns a negative value if a sorts before b, zero if the versions
// are equal, and a positive value otherwise. Unparseable versions fall back
// to string comparison so the resolver never panics on malformed file names.
func Compare(a, b string) int {
	pa, oka := parse(a)
	pb, okb := parse(b)
	if !oka || !okb {
		return strings.Compare(a, b)
	}

	if c := compareNumbers(pa.numbers, pb.numbers); c != 0 {
		return c
	}
	if c := strings.Compare(pa.letter, pb.letter); c != 0 {
		return c
	}
	if c := compareSuffixes(pa.suffixes, pb.suffixes); c != 0 {
		return c
	}
	return pa.revision - pb.revision
}

func parse(v string) (parsed, bool) {
	m := versionRe.FindStringSubmatch(v)
	if m == nil {
		return parsed{}, false
	}
	p := parsed{
		numbers: strings.Split(m[1], "."),
		letter:  m[2],
	}
	for _, s := range strings.Split(m[3], "_") {
		if s == "" {
			continue
		}
		name := strings.TrimRight(s, "0123456789")
		num := 0
		if digits := s[len(name):]; digits != "" {
			num, _ = strconv.Atoi(digits)
		}
		p.suffixes = append(p.suffixes, suffix{name: name, num: num})
	}
	if m[4] != "" {
		p.revision, _ = strconv.Atoi(m[4])
	}
	return p, true
}

// compareNumbers implements the PMS component rules: the first component is
// always numeric; later components with a leading zero compare as strings
// with trailing zeros stripped.
func compareNumbers(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if i > 0 && (strings.HasPrefix(a[i], "0") || strings.HasPrefix(b[i], "0")) {
			as := strings.TrimRight(a[i], "0")
			bs := strings.TrimRight(b[i], "0")
			if c := strings.Compare(as, bs); c != 0 {
				return c
			}
			continue
		}
		an, _ := strconv.Atoi(a[i])
		bn, _ := strconv.Atoi(b[i])
		if an != bn {
			return an - bn
		}
	}
	return len(a) - len(b)
}

func compareSuffixes(a, b []suffix) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		sa, sb := suffix{}, suffix{}
		if i < len(a) {
			sa = a[i]
		}
		if i < len(b) {
			sb = b[i]
		}
		if c := suffixRank[sa.name] - suffixRank[sb.name]; c != 0 {
			return c
		}
		if sa.num != sb.num {
			return sa.num - sb.num
		}
	}
	return 0
}
