package catalog

import (
	"fmt"

	"github.com/glyphgap/glyphgap/pkg/textproto"
)

const regularWeight = 400

// exemplarFont picks the file that best represents a family: the upright
// font whose weight is closest to regular, or the first font when the
// family has no upright style.
func exemplarFont(fonts []*textproto.Message) (string, error) {
	if len(fonts) == 0 {
		return "", fmt.Errorf("no fonts listed")
	}

	best, bestDist := -1, 0
	for i, f := range fonts {
		if f.String("filename") == "" {
			return "", fmt.Errorf("font %d has no filename", i)
		}
		if f.String("style") != "normal" {
			continue
		}
		w, err := f.Int("weight")
		if err != nil {
			return "", fmt.Errorf("font %s: %w", f.String("filename"), err)
		}
		dist := abs(int(w) - regularWeight)
		if best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		best = 0
	}
	return fonts[best].String("filename"), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
