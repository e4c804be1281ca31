package rules

import (
	"math"
	"regexp"
	"strconv"

	"strata/internal/strategy"
)

// NumericTargets holds the numeric extraction result: APY as a percent
// and duration normalized to days. Nil fields were not stated.
type NumericTargets struct {
	APY          *float64
	DurationDays *int

	// Rules record which extraction path produced each value, for
	// signal provenance.
	APYRule      string
	DurationRule string
}

var (
	numberRe       = regexp.MustCompile(`\d+(?:\.\d+)?`)
	percentRe      = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:%|percent\b)`)
	durationUnitRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(days?|weeks?|months?|years?)\b`)
	durationBareRe = regexp.MustCompile(`\b(?:duration|term|period)\s*(?:of\s*|:\s*)?(\d+(?:\.\d+)?)\b`)

	apyKeywordRe      = regexp.MustCompile(`\b(?:apy|apr|yield|returns?|rate|target)\b`)
	durationKeywordRe = regexp.MustCompile(`\b(?:duration|over|for|period|term)\b`)
)

// durationUnitDays maps recognized units to their day count.
var durationUnitDays = map[string]int{
	"day": 1, "week": 7, "month": 30, "year": 365,
}

// numCandidate is a numeric literal with its position in the text.
type numCandidate struct {
	value float64
	start int
	end   int
}

// ExtractNumericTargets pulls APY and duration targets out of free text.
//
// Numbers carrying a recognized time unit bind to duration; a number
// marked with %/percent or sitting near an APY keyword binds to APY.
// When several candidates compete for one field, the one closest to a
// disambiguating keyword wins; with no keyword context the first number
// encountered wins. The choice is deterministic for any input.
func (m *Mapper) ExtractNumericTargets(text string) NumericTargets {
	text = strategy.Normalize(text)

	var out NumericTargets

	// Duration first: its numbers are excluded from APY candidacy.
	consumed := make([]numCandidate, 0, 2)

	unitMatches := durationUnitRe.FindAllStringSubmatchIndex(text, -1)
	if len(unitMatches) > 0 {
		keywords := durationKeywordRe.FindAllStringIndex(text, -1)

		bestIdx := 0
		if len(unitMatches) > 1 && len(keywords) > 0 {
			bestDist := math.MaxInt
			for i, loc := range unitMatches {
				if d := nearestKeywordDistance(loc[0], loc[1], keywords); d < bestDist {
					bestDist = d
					bestIdx = i
				}
			}
		}

		loc := unitMatches[bestIdx]
		value, _ := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
		unit := singularUnit(text[loc[4]:loc[5]])
		days := int(math.Round(value * float64(durationUnitDays[unit])))
		if days > 0 {
			out.DurationDays = &days
			out.DurationRule = "duration:unit"
		}

		// All unit-suffixed numbers are duration context, not APY.
		for _, l := range unitMatches {
			value, _ := strconv.ParseFloat(text[l[2]:l[3]], 64)
			consumed = append(consumed, numCandidate{value: value, start: l[2], end: l[3]})
		}
	} else if loc := durationBareRe.FindStringSubmatchIndex(text); loc != nil {
		// "duration: 90" with no unit is read as days.
		value, _ := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
		days := int(math.Round(value))
		if days > 0 {
			out.DurationDays = &days
			out.DurationRule = "duration:bare"
		}
		consumed = append(consumed, numCandidate{value: value, start: loc[2], end: loc[3]})
	}

	// APY candidates: percent-marked numbers, plus bare numbers within
	// reach of an APY keyword.
	apyKeywords := apyKeywordRe.FindAllStringIndex(text, -1)

	var candidates []numCandidate
	seen := map[int]bool{}

	for _, loc := range percentRe.FindAllStringSubmatchIndex(text, -1) {
		c := numCandidate{start: loc[2], end: loc[3]}
		if isConsumed(c, consumed) || seen[c.start] {
			continue
		}
		c.value, _ = strconv.ParseFloat(text[c.start:c.end], 64)
		seen[c.start] = true
		candidates = append(candidates, c)
	}

	if len(apyKeywords) > 0 {
		for _, loc := range numberRe.FindAllStringIndex(text, -1) {
			c := numCandidate{start: loc[0], end: loc[1]}
			if isConsumed(c, consumed) || seen[c.start] {
				continue
			}
			if nearestKeywordDistance(c.start, c.end, apyKeywords) > 30 {
				continue
			}
			c.value, _ = strconv.ParseFloat(text[c.start:c.end], 64)
			seen[c.start] = true
			candidates = append(candidates, c)
		}
	}

	if len(candidates) > 0 {
		best := candidates[0]
		if len(candidates) > 1 && len(apyKeywords) > 0 {
			bestDist := nearestKeywordDistance(best.start, best.end, apyKeywords)
			for _, c := range candidates[1:] {
				if d := nearestKeywordDistance(c.start, c.end, apyKeywords); d < bestDist {
					bestDist = d
					best = c
				}
			}
		}
		apy := best.value
		out.APY = &apy
		out.APYRule = "apy:proximity"
	}

	return out
}

// nearestKeywordDistance returns the smallest character gap between the
// span [start,end) and any keyword span.
func nearestKeywordDistance(start, end int, keywords [][]int) int {
	best := math.MaxInt
	for _, kw := range keywords {
		var d int
		switch {
		case kw[1] <= start:
			d = start - kw[1]
		case end <= kw[0]:
			d = kw[0] - end
		default:
			d = 0
		}
		if d < best {
			best = d
		}
	}
	return best
}

// isConsumed reports whether the candidate overlaps a span already
// claimed by duration extraction.
func isConsumed(c numCandidate, consumed []numCandidate) bool {
	for _, u := range consumed {
		if c.start < u.end && u.start < c.end {
			return true
		}
	}
	return false
}

// singularUnit trims a plural 's' from a duration unit.
func singularUnit(unit string) string {
	if len(unit) > 0 && unit[len(unit)-1] == 's' {
		return unit[:len(unit)-1]
	}
	return unit
}
