package replay

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/fsutil"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/security"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/lap"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/session"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/units"
)

type lapDocument struct {
	Index           int            `json:"index"`
	Stroke          lap.StrokeType `json:"stroke"`
	IsRest          bool           `json:"is_rest,omitempty"`
	DurationSeconds float64        `json:"duration_seconds"`
	DistanceM       float64        `json:"distance_m"`
	Strokes         int            `json:"strokes"`
	Pace            string         `json:"pace_per_100m,omitempty"`
	StrokeRate      float64        `json:"stroke_rate_spm,omitempty"`
}

type summaryDocument struct {
	Name           string                 `json:"name"`
	Lengths        int                    `json:"lengths"`
	DistanceM      float64                `json:"distance_m"`
	SwimSeconds    float64                `json:"swim_seconds"`
	RestSeconds    float64                `json:"rest_seconds"`
	MeanPace       string                 `json:"mean_pace_per_100m"`
	MeanStrokeRate float64                `json:"mean_stroke_rate_spm"`
	StrokesByType  map[lap.StrokeType]int `json:"strokes_by_type"`
	Laps           []lapDocument          `json:"laps"`
}

func newSummaryDocument(s session.Summary) summaryDocument {
	doc := summaryDocument{
		Name:           s.Name,
		Lengths:        s.Lengths,
		DistanceM:      s.DistanceM,
		SwimSeconds:    s.SwimSeconds,
		RestSeconds:    s.RestSeconds,
		MeanPace:       units.FormatPace(s.MeanPace),
		MeanStrokeRate: s.MeanStrokeRate,
		StrokesByType:  s.StrokesByType,
		Laps:           make([]lapDocument, 0, len(s.Laps)),
	}
	for _, l := range s.Laps {
		ld := lapDocument{
			Index:           l.Index,
			Stroke:          l.Stroke,
			IsRest:          l.IsRest,
			DurationSeconds: l.DurationSeconds,
			DistanceM:       l.DistanceM,
			Strokes:         l.Strokes,
			StrokeRate:      l.StrokeRate,
		}
		if !l.IsRest {
			ld.Pace = units.FormatPace(l.Pace)
		}
		doc.Laps = append(doc.Laps, ld)
	}
	return doc
}

// WriteSummaries writes one <name>.json document per summary into dir and
// returns the written paths. Names that collide after sanitising get a lane
// suffix. dir must pass security.ValidateExportPath.
func WriteSummaries(fsys fsutil.FileSystem, dir string, summaries []session.Summary) ([]string, error) {
	if err := security.ValidateExportPath(dir); err != nil {
		return nil, err
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	seen := make(map[string]bool, len(summaries))
	paths := make([]string, 0, len(summaries))
	for i, s := range summaries {
		base := security.SanitizeFilename(s.Name)
		if seen[base] {
			base = fmt.Sprintf("%s_%d", base, i+1)
		}
		seen[base] = true

		data, err := json.MarshalIndent(newSummaryDocument(s), "", "  ")
		if err != nil {
			return paths, fmt.Errorf("failed to encode summary for %s: %w", s.Name, err)
		}
		path := filepath.Join(dir, base+".json")
		if err := fsys.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
