package progress

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

//go:embed export.schema.json
var exportSchemaJSON []byte

const exportSchemaURL = "schema://finfluency-export.json"

var (
	exportSchemaOnce sync.Once
	exportSchema     *jsonschema.Schema
	exportSchemaErr  error
)

var (
	// ErrInvalidExport is returned when an import document fails validation.
	ErrInvalidExport = errors.New("invalid progress export")
	// ErrIncompatibleVersion is returned for exports from a newer major version.
	ErrIncompatibleVersion = errors.New("export was written by a newer version")
)

// ExportDocument is the file layout produced by Export.
type ExportDocument struct {
	User       User        `json:"financeFluency_user"`
	Progress   AppProgress `json:"financeFluency_progress"`
	Stats      Stats       `json:"financeFluency_stats"`
	ExportedAt int64       `json:"exportedAt"`
	AppVersion string      `json:"appVersion,omitempty"`
}

// Export renders the state as an indented JSON document.
func Export(d *Data, appVersion string, now time.Time) ([]byte, error) {
	doc := ExportDocument{
		User:       d.User,
		Progress:   d.Progress,
		Stats:      d.Stats,
		ExportedAt: now.UnixMilli(),
		AppVersion: appVersion,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ExportFileName returns the suggested file name for an export.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("finance_fluency_progress_%s.json", now.Format("2006-01-02"))
}

// Import parses and validates an exported document. Documents exported by
// a newer major version than appVersion are refused; non-semver versions
// such as development builds skip that check.
func Import(raw []byte, appVersion string) (*Data, error) {
	schema, err := compiledExportSchema()
	if err != nil {
		return nil, err
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExport, err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExport, err)
	}

	var doc ExportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExport, err)
	}

	if newerMajor(doc.AppVersion, appVersion) {
		return nil, fmt.Errorf("%w: %s (running %s)", ErrIncompatibleVersion, doc.AppVersion, appVersion)
	}

	d := &Data{User: doc.User, Progress: doc.Progress, Stats: doc.Stats}
	if d.Progress == nil {
		d.Progress = make(AppProgress, ModuleCount)
	}
	d.Progress.Backfill()
	for k, mp := range d.Progress {
		mp.ConceptsRead = dedupe(mp.ConceptsRead)
		d.Progress[k] = mp
	}
	return d, nil
}

func newerMajor(exported, running string) bool {
	ev, rv := canonicalVersion(exported), canonicalVersion(running)
	if !semver.IsValid(ev) || !semver.IsValid(rv) {
		return false
	}
	return semver.Compare(semver.Major(ev), semver.Major(rv)) > 0
}

func canonicalVersion(v string) string {
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func compiledExportSchema() (*jsonschema.Schema, error) {
	exportSchemaOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(exportSchemaJSON))
		if err != nil {
			exportSchemaErr = fmt.Errorf("parse export schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(exportSchemaURL, def); err != nil {
			exportSchemaErr = fmt.Errorf("add export schema: %w", err)
			return
		}
		exportSchema, exportSchemaErr = c.Compile(exportSchemaURL)
	})
	return exportSchema, exportSchemaErr
}
