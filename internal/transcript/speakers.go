package transcript

import (
	"regexp"
	"sort"
	"strings"
)

// Meeting transcripts label each turn with "Name  m:ss" (or h:mm:ss)
// header lines.
var reTurnHeader = regexp.MustCompile(`^(.+?)\s+\d{1,2}:\d{2}(?::\d{2})?\s*$`)

// Speaker is one meeting participant and the number of times they spoke.
type Speaker struct {
	Name  string
	Turns int
}

// CountTurns scans transcript text for turn header lines and tallies turns
// per speaker, most talkative first. Returns nil when the transcript has no
// recognizable headers (e.g. a raw paste without timestamps).
func CountTurns(text string) []Speaker {
	counts := make(map[string]int)
	var order []string

	for _, line := range strings.Split(text, "\n") {
		m := reTurnHeader.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	speakers := make([]Speaker, 0, len(order))
	for _, name := range order {
		speakers = append(speakers, Speaker{Name: name, Turns: counts[name]})
	}

	sort.SliceStable(speakers, func(i, j int) bool {
		return speakers[i].Turns > speakers[j].Turns
	})

	if len(speakers) == 0 {
		return nil
	}
	return speakers
}
