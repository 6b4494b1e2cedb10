package export

import (
	"fmt"
	"strconv"
	"strings"
)

// FrameMin and FrameMax bound the valid camera viewpoints.
const (
	FrameMin = 1
	FrameMax = 36
)

// Config holds configuration for the export pipeline.
type Config struct {
	// OutputFile is the default CSV file name.
	OutputFile string `mapstructure:"output_file" default:"cylindo_export.csv"`
	// Size is the generated image size in pixels.
	Size int `mapstructure:"size" default:"1500"`
	// SkipSharpening adds skipSharpening=true to generated image URLs.
	SkipSharpening bool `mapstructure:"skip_sharpening" default:"false"`
	// Frames is the default frame selection, comma separated (e.g. "1,8,17").
	Frames string `mapstructure:"frames" default:"1"`
	// PacingMillis is the courtesy delay between products, to avoid
	// overwhelming the catalog service. Not a correctness mechanism.
	PacingMillis int `mapstructure:"pacing_millis" default:"50"`
	// ExclusiveSets declares mutually exclusive feature codes as
	// pipe-joined sets separated by semicolons, e.g. "TEXTILE|LEATHER;WOOD|METAL".
	ExclusiveSets string `mapstructure:"exclusive_sets" default:"TEXTILE|LEATHER"`
	// BaseColorFeature is the feature code whose chosen option is the base
	// color for identity matching.
	BaseColorFeature string `mapstructure:"base_color_feature" default:"BASE"`
	// MaterialFeature is the feature code whose chosen option is the
	// material color for identity matching.
	MaterialFeature string `mapstructure:"material_feature" default:"MATERIAL"`
	// MaterialAllowList restricts grouped material options to the listed
	// option codes, comma separated. Empty disables filtering.
	MaterialAllowList string `mapstructure:"material_allow_list" default:""`
}

// ParseExclusiveSets parses the declared exclusive sets.
func (c Config) ParseExclusiveSets() [][]string {
	var sets [][]string
	for _, raw := range strings.Split(c.ExclusiveSets, ";") {
		var set []string
		for _, code := range strings.Split(raw, "|") {
			code = strings.TrimSpace(code)
			if code != "" {
				set = append(set, code)
			}
		}
		if len(set) >= 2 {
			sets = append(sets, set)
		}
	}
	return sets
}

// ParseAllowList parses the material allow-list into a lookup set.
func (c Config) ParseAllowList() map[string]struct{} {
	return ParseAllowList(c.MaterialAllowList)
}

// ParseAllowList parses a comma separated option code list.
func ParseAllowList(raw string) map[string]struct{} {
	allow := make(map[string]struct{})
	for _, code := range strings.Split(raw, ",") {
		code = strings.TrimSpace(code)
		if code != "" {
			allow[code] = struct{}{}
		}
	}
	return allow
}

// ParseFrames parses a comma separated frame list and validates the range.
func ParseFrames(raw string) ([]int, error) {
	var frames []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid frame %q: %w", part, err)
		}
		if n < FrameMin || n > FrameMax {
			return nil, fmt.Errorf("frame %d out of range %d-%d", n, FrameMin, FrameMax)
		}
		frames = append(frames, n)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames selected")
	}
	return frames, nil
}
