package records

import (
	"strings"
	"time"
)

// Status represents the lifecycle of an audio analysis record.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

var statusSet = map[Status]struct{}{
	StatusProcessing: {},
	StatusCompleted:  {},
	StatusError:      {},
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// ProcessingSteps tracks which pipeline stages have completed for a record.
// Each flag transitions false to true exactly once and never reverts.
type ProcessingSteps struct {
	Upload         bool `json:"upload"`
	Spectrogram    bool `json:"spectrogram"`
	Analysis       bool `json:"analysis"`
	Identification bool `json:"identification"`
}

// AllDone reports whether every stage flag has latched.
func (p ProcessingSteps) AllDone() bool {
	return p.Upload && p.Spectrogram && p.Analysis && p.Identification
}

// Merge latches any flag set in other. Flags already true stay true.
func (p *ProcessingSteps) Merge(other ProcessingSteps) {
	p.Upload = p.Upload || other.Upload
	p.Spectrogram = p.Spectrogram || other.Spectrogram
	p.Analysis = p.Analysis || other.Analysis
	p.Identification = p.Identification || other.Identification
}

// Location describes where a recording was captured. Address, ecosystem,
// weather, and temperature are best-effort enrichment and may be absent.
type Location struct {
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Address     string   `json:"address"`
	Ecosystem   string   `json:"ecosystem"`
	Weather     string   `json:"weather,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// Valid reports whether the coordinates are inside WGS84 bounds.
func (l Location) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// AnalysisResult is one species detection within a recording.
type AnalysisResult struct {
	Species      string   `json:"species"`
	CommonName   string   `json:"commonName"`
	Confidence   float64  `json:"confidence"`
	Frequency    string   `json:"frequency"`
	TimeDetected []string `json:"timeDetected"`
}

// AudioRecord is one analyzed upload and its results.
type AudioRecord struct {
	ID              string           `json:"id"`
	FileName        string           `json:"fileName"`
	UploadDate      time.Time        `json:"uploadDate"`
	SpectrogramURL  string           `json:"spectrogramUrl,omitempty"`
	AudioURL        string           `json:"audioUrl"`
	FileSize        int64            `json:"fileSize"`
	Duration        float64          `json:"duration"`
	Location        *Location        `json:"location,omitempty"`
	AnalysisResults []AnalysisResult `json:"analysisResults"`
	Tags            []string         `json:"tags"`
	Notes           string           `json:"notes"`
	Status          Status           `json:"status"`
	ProcessingSteps ProcessingSteps  `json:"processingSteps"`
}

// Clone returns a deep copy so callers can mutate without aliasing stored state.
func (r AudioRecord) Clone() AudioRecord {
	cp := r
	if r.Location != nil {
		loc := *r.Location
		if r.Location.Temperature != nil {
			temp := *r.Location.Temperature
			loc.Temperature = &temp
		}
		cp.Location = &loc
	}
	if r.AnalysisResults != nil {
		cp.AnalysisResults = make([]AnalysisResult, len(r.AnalysisResults))
		for i, res := range r.AnalysisResults {
			cp.AnalysisResults[i] = res
			cp.AnalysisResults[i].TimeDetected = append([]string(nil), res.TimeDetected...)
		}
	}
	if r.Tags != nil {
		cp.Tags = append([]string(nil), r.Tags...)
	}
	return cp
}

// NormalizeTags trims entries and removes duplicates while preserving order.
// Matching is case-sensitive: "Bosque" and "bosque" are distinct tags.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Collection is the ordered set of records belonging to one identity,
// insertion order with the newest record first.
type Collection []AudioRecord

// Clone deep-copies the collection.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	for i, record := range c {
		out[i] = record.Clone()
	}
	return out
}

// IndexOf returns the position of the record with the given ID, or -1.
func (c Collection) IndexOf(id string) int {
	for i, record := range c {
		if record.ID == id {
			return i
		}
	}
	return -1
}
