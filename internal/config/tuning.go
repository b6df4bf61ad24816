// Package config loads the face filter tuning file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
const DefaultConfigPath = "config/tuning.defaults.json"

// Propagation modes accepted by the "propagation" field.
const (
	PropagationRowMajor = "row_major"
	PropagationDeepest  = "deepest"
)

// TuningConfig is the root of the tuning file. Every field is optional; the
// Get* accessors supply defaults for anything omitted, so partial files are safe.
type TuningConfig struct {
	// Histogram and quantisation
	LayersCount   *int `json:"layers_count,omitempty"`
	SegmentsCount *int `json:"segments_count,omitempty"`
	DepthMax      *int `json:"depth_max,omitempty"`

	// Mask geometry, in segments
	MaskMaxDiameter *int `json:"mask_max_diameter,omitempty"`
	MaskMinDiameter *int `json:"mask_min_diameter,omitempty"`

	// Selection
	ScoreThreshold *float64 `json:"score_threshold,omitempty"`
	Propagation    *string  `json:"propagation,omitempty"`
	ParallelLayers *bool    `json:"parallel_layers,omitempty"`

	// Frame gating; 0 accepts any size
	ExpectedWidth  *int `json:"expected_width,omitempty"`
	ExpectedHeight *int `json:"expected_height,omitempty"`

	// Pre-filter clip; 0 disables a bound
	ClipNear *int `json:"clip_near,omitempty"`
	ClipFar  *int `json:"clip_far,omitempty"`

	// Trace dumps
	TraceEnabled *bool   `json:"trace_enabled,omitempty"`
	TraceDir     *string `json:"trace_dir,omitempty"`
	TracePrefix  *string `json:"trace_prefix,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with every field unset.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file must have a
// .json extension and be under 1MB.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents up to the repository root. Panics if the file
// cannot be loaded; intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from cmd/tools/gen-frame/
		"../../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks the values that are set. Cross-field geometry checks
// (ring area, layer encoding) happen when the filter is constructed.
func (c *TuningConfig) Validate() error {
	if c.LayersCount != nil && *c.LayersCount < 3 {
		return fmt.Errorf("layers_count must be at least 3, got %d", *c.LayersCount)
	}
	if c.SegmentsCount != nil && *c.SegmentsCount < 1 {
		return fmt.Errorf("segments_count must be positive, got %d", *c.SegmentsCount)
	}
	if c.DepthMax != nil && (*c.DepthMax < 1 || *c.DepthMax > 65535) {
		return fmt.Errorf("depth_max must be in [1, 65535], got %d", *c.DepthMax)
	}
	if c.MaskMaxDiameter != nil && *c.MaskMaxDiameter < 1 {
		return fmt.Errorf("mask_max_diameter must be positive, got %d", *c.MaskMaxDiameter)
	}
	if c.MaskMinDiameter != nil && *c.MaskMinDiameter < 0 {
		return fmt.Errorf("mask_min_diameter must be non-negative, got %d", *c.MaskMinDiameter)
	}
	if c.ScoreThreshold != nil && (*c.ScoreThreshold <= 0 || *c.ScoreThreshold >= 1) {
		return fmt.Errorf("score_threshold must be in (0, 1), got %f", *c.ScoreThreshold)
	}
	if c.Propagation != nil {
		switch *c.Propagation {
		case "", PropagationRowMajor, PropagationDeepest:
		default:
			return fmt.Errorf("propagation must be %q or %q, got %q", PropagationRowMajor, PropagationDeepest, *c.Propagation)
		}
	}
	if c.ExpectedWidth != nil && *c.ExpectedWidth < 0 {
		return fmt.Errorf("expected_width must be non-negative, got %d", *c.ExpectedWidth)
	}
	if c.ExpectedHeight != nil && *c.ExpectedHeight < 0 {
		return fmt.Errorf("expected_height must be non-negative, got %d", *c.ExpectedHeight)
	}
	near, far := c.GetClipNear(), c.GetClipFar()
	if near < 0 || near > 65535 || far < 0 || far > 65535 {
		return fmt.Errorf("clip bounds must be in [0, 65535], got near=%d far=%d", near, far)
	}
	if far != 0 && near > far {
		return fmt.Errorf("clip_near (%d) must not exceed clip_far (%d)", near, far)
	}
	return nil
}

// GetLayersCount returns the layers_count value or the default.
func (c *TuningConfig) GetLayersCount() int {
	if c.LayersCount == nil {
		return 30
	}
	return *c.LayersCount
}

// GetSegmentsCount returns the segments_count value or the default.
func (c *TuningConfig) GetSegmentsCount() int {
	if c.SegmentsCount == nil {
		return 20
	}
	return *c.SegmentsCount
}

// GetDepthMax returns the depth_max value or the default.
func (c *TuningConfig) GetDepthMax() int {
	if c.DepthMax == nil {
		return 4000
	}
	return *c.DepthMax
}

// GetMaskMaxDiameter returns the mask_max_diameter value or the default.
func (c *TuningConfig) GetMaskMaxDiameter() int {
	if c.MaskMaxDiameter == nil {
		return 5
	}
	return *c.MaskMaxDiameter
}

// GetMaskMinDiameter returns the mask_min_diameter value or the default.
func (c *TuningConfig) GetMaskMinDiameter() int {
	if c.MaskMinDiameter == nil {
		return 1
	}
	return *c.MaskMinDiameter
}

// GetScoreThreshold returns the score_threshold value or the default.
func (c *TuningConfig) GetScoreThreshold() float64 {
	if c.ScoreThreshold == nil {
		return 0.78
	}
	return *c.ScoreThreshold
}

// GetPropagation returns the propagation mode or the default.
func (c *TuningConfig) GetPropagation() string {
	if c.Propagation == nil || *c.Propagation == "" {
		return PropagationRowMajor
	}
	return *c.Propagation
}

// GetParallelLayers returns the parallel_layers value or the default.
func (c *TuningConfig) GetParallelLayers() bool {
	if c.ParallelLayers == nil {
		return false
	}
	return *c.ParallelLayers
}

// GetExpectedWidth returns the expected_width value or the default (any size).
func (c *TuningConfig) GetExpectedWidth() int {
	if c.ExpectedWidth == nil {
		return 0
	}
	return *c.ExpectedWidth
}

// GetExpectedHeight returns the expected_height value or the default (any size).
func (c *TuningConfig) GetExpectedHeight() int {
	if c.ExpectedHeight == nil {
		return 0
	}
	return *c.ExpectedHeight
}

// GetClipNear returns the clip_near value or the default (disabled).
func (c *TuningConfig) GetClipNear() int {
	if c.ClipNear == nil {
		return 0
	}
	return *c.ClipNear
}

// GetClipFar returns the clip_far value or the default (disabled).
func (c *TuningConfig) GetClipFar() int {
	if c.ClipFar == nil {
		return 0
	}
	return *c.ClipFar
}

// GetTraceEnabled returns the trace_enabled value or the default.
func (c *TuningConfig) GetTraceEnabled() bool {
	if c.TraceEnabled == nil {
		return false
	}
	return *c.TraceEnabled
}

// GetTraceDir returns the trace_dir value or the default.
func (c *TuningConfig) GetTraceDir() string {
	if c.TraceDir == nil || *c.TraceDir == "" {
		return "/tmp"
	}
	return *c.TraceDir
}

// GetTracePrefix returns the trace_prefix value or the default.
func (c *TuningConfig) GetTracePrefix() string {
	if c.TracePrefix == nil || *c.TracePrefix == "" {
		return "kinect"
	}
	return *c.TracePrefix
}
