package replay

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/config"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/fsutil"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/lap"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/session"
)

const maxSessionFileSize = 1 * 1024 * 1024

// File is a parsed session file.
type File struct {
	// PoolLengthM overrides the tuning pool length when set.
	PoolLengthM *float64
	Entries     []session.Entry
}

type fileDocument struct {
	PoolLengthM *float64          `json:"pool_length_m,omitempty"`
	Swimmers    []swimmerDocument `json:"swimmers"`
}

type swimmerDocument struct {
	ID   string           `json:"id,omitempty"`
	Name string           `json:"name"`
	Laps []lap.Descriptor `json:"laps"`
}

// LoadSessionFile reads a JSON session file. Stroke names are normalised
// ("FREE", "fly", ...); names that are not recognised are kept so the
// session can warn about them. Lap validation happens in session.New.
func LoadSessionFile(fsys fsutil.FileSystem, path string) (*File, error) {
	data, err := fsutil.ReadBounded(fsys, path, ".json", maxSessionFileSize)
	if err != nil {
		return nil, fmt.Errorf("session file: %w", err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse session JSON: %w", err)
	}
	if len(doc.Swimmers) == 0 {
		return nil, fmt.Errorf("session file %s lists no swimmers", path)
	}
	if p := doc.PoolLengthM; p != nil && (!(*p > 0) || math.IsInf(*p, 0)) {
		return nil, fmt.Errorf("pool_length_m must be positive, got %v", *p)
	}

	f := &File{PoolLengthM: doc.PoolLengthM}
	for i, sw := range doc.Swimmers {
		var id uuid.UUID
		if sw.ID != "" {
			if id, err = uuid.Parse(sw.ID); err != nil {
				return nil, fmt.Errorf("swimmer %d: invalid id %q: %w", i, sw.ID, err)
			}
		}
		name := sw.Name
		if name == "" {
			name = fmt.Sprintf("Swimmer %d", i+1)
		}
		laps := make([]lap.Descriptor, len(sw.Laps))
		for j, l := range sw.Laps {
			if l.StrokeType != "" {
				if st, ok := lap.ParseStrokeType(string(l.StrokeType)); ok {
					l.StrokeType = st
				}
			}
			laps[j] = l
		}
		f.Entries = append(f.Entries, session.Entry{ID: id, Name: name, Laps: laps})
	}
	return f, nil
}

// Tuning returns base with the file's pool length applied. base is not
// modified.
func (f *File) Tuning(base *config.SwimTuning) *config.SwimTuning {
	out := *base
	if f.PoolLengthM != nil {
		v := *f.PoolLengthM
		out.PoolLengthM = &v
	}
	return &out
}
