package pdftext

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"pdfquiz/internal/textquality"
)

const (
	// fontGroupPageLimit keeps the secondary pass cheap; body content of a
	// document almost always appears within the first pages.
	fontGroupPageLimit = 5
	// minGroupChars is the smallest cleaned group worth considering.
	minGroupChars = 30
)

// fontGroup collects the text runs sharing one font face and size. Body
// prose tends to form one large group, while headers, footers and embedded
// metadata fragment into many small ones.
type fontGroup struct {
	fontSize float64
	fontName string
	texts    []string
}

func (g *fontGroup) textLen() int {
	n := 0
	for _, t := range g.texts {
		n += len(t)
	}
	return n
}

// extractByFontGroups groups page text runs by font characteristics and
// returns the best-scoring cleaned group. Used when ordering strategies
// fail, typically on PDFs that interleave content with heavy metadata.
func (e *Extractor) extractByFontGroups(content []byte) (string, bool) {
	pages, err := readSpans(content, fontGroupPageLimit)
	if err != nil {
		return "", false
	}

	best := ""
	bestScore := 0.0
	for _, spans := range pages {
		for _, group := range groupByFont(spans) {
			cleaned := textquality.Clean(strings.Join(group.texts, " "))
			if len(cleaned) <= minGroupChars {
				continue
			}
			if score := textquality.Score(cleaned); score > bestScore {
				bestScore = score
				best = cleaned
			}
		}
	}

	if len(best) > minFinalChars {
		return best, true
	}
	return "", false
}

// groupByFont buckets spans by rounded font size and face, ranked so that
// larger fonts with more content come first.
func groupByFont(spans []span) []*fontGroup {
	groups := make(map[string]*fontGroup)
	for _, s := range spans {
		name := s.font
		if name == "" {
			name = "unknown"
		}
		key := fmt.Sprintf("%d-%s", int(math.Round(s.fontSize)), name)
		g, ok := groups[key]
		if !ok {
			g = &fontGroup{fontSize: s.fontSize, fontName: name}
			groups[key] = g
		}
		g.texts = append(g.texts, s.text)
	}

	ranked := make([]*fontGroup, 0, len(groups))
	for _, g := range groups {
		ranked = append(ranked, g)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a := ranked[i].fontSize*0.1 + float64(ranked[i].textLen())*0.01
		b := ranked[j].fontSize*0.1 + float64(ranked[j].textLen())*0.01
		return a > b
	})
	return ranked
}
