package resolution

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/phambaophuc/ai-image-studio/internal/apperrors"
	"github.com/phambaophuc/ai-image-studio/internal/models"
)

var ErrInvalidFormat = errors.New("aspect ratio must look like W/H with positive numbers")

// allowed is ordered; Select keeps the first of equally close entries.
var allowed = []models.Resolution{
	{Width: 1024, Height: 1024},
	{Width: 1152, Height: 896},
	{Width: 896, Height: 1152},
	{Width: 1216, Height: 832},
	{Width: 832, Height: 1216},
	{Width: 1344, Height: 768},
	{Width: 768, Height: 1344},
	{Width: 1536, Height: 640},
	{Width: 640, Height: 1536},
}

// Allowed returns the supported output resolutions in selection order.
func Allowed() []models.Resolution {
	out := make([]models.Resolution, len(allowed))
	copy(out, allowed)
	return out
}

func IsAllowed(res models.Resolution) bool {
	for _, r := range allowed {
		if r == res {
			return true
		}
	}
	return false
}

// Select maps an aspect ratio such as "16/9" to the supported resolution whose
// width/height ratio is nearest to it.
func Select(aspectRatio string) (models.Resolution, error) {
	target, err := parseRatio(aspectRatio)
	if err != nil {
		return models.Resolution{}, apperrors.Wrap(apperrors.KindInvalidFormat, "resolution.Select",
			"Invalid aspect ratio: "+aspectRatio, err)
	}

	best := allowed[0]
	smallest := math.Abs(best.Ratio() - target)
	for _, r := range allowed[1:] {
		if diff := math.Abs(r.Ratio() - target); diff < smallest {
			best, smallest = r, diff
		}
	}
	return best, nil
}

func parseRatio(aspectRatio string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(aspectRatio), "/")
	if len(parts) != 2 {
		return 0, ErrInvalidFormat
	}

	w, err := parsePositive(parts[0])
	if err != nil {
		return 0, err
	}
	h, err := parsePositive(parts[1])
	if err != nil {
		return 0, err
	}
	return w / h, nil
}

func parsePositive(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrInvalidFormat
	}
	return v, nil
}
