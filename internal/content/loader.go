// Package content loads and validates the reference data sessions are scored against.
package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/ppiankov/baristacx/internal/cache"
	"github.com/ppiankov/baristacx/internal/model"
	"gopkg.in/yaml.v3"
)

// Content file base names. Each may be stored as .json, .yaml or .yml.
const (
	FileScenarios = "scenarios"
	FileRubric    = "rubric"
	FileMissteps  = "missteps"
	FileHints     = "hints"
)

var extensions = []string{".json", ".yaml", ".yml"}

// ErrInvalidContent wraps schema and consistency failures in reference data
var ErrInvalidContent = errors.New("invalid content")

//go:embed builtin/*.json
var builtinFS embed.FS

// Builtin returns the content shipped with the binary
func Builtin() fs.FS {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// The embed pattern guarantees the directory exists
		panic(err)
	}
	return sub
}

// Source returns the content filesystem for dir, or the built-in content
// when dir is empty
func Source(dir string) fs.FS {
	if dir == "" {
		return Builtin()
	}
	return os.DirFS(dir)
}

// Loader reads reference data from a filesystem
type Loader struct {
	fsys   fs.FS
	cache  cache.Cache
	logger *slog.Logger
}

// NewLoader creates a loader. A nil cache gets a private in-memory cache;
// a nil logger uses slog.Default().
func NewLoader(fsys fs.FS, c cache.Cache, logger *slog.Logger) *Loader {
	if c == nil {
		c = cache.NewMemoryCache(time.Hour, 10*time.Minute)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fsys: fsys, cache: c, logger: logger}
}

// Load reads, validates and decodes every content file.
// Scenarios, rubric and missteps are required; hints are optional.
func (l *Loader) Load() (*model.Content, error) {
	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}

	var content model.Content
	if err := l.decode(FileScenarios, true, schemas, &content.Scenarios); err != nil {
		return nil, err
	}
	if err := l.decode(FileRubric, true, schemas, &content.Rubric); err != nil {
		return nil, err
	}
	if err := l.decode(FileMissteps, true, schemas, &content.Missteps); err != nil {
		return nil, err
	}
	if err := l.decode(FileHints, false, schemas, &content.Hints); err != nil {
		return nil, err
	}

	if err := Check(&content); err != nil {
		return nil, err
	}

	l.logger.Debug("content loaded",
		"version", content.Scenarios.Meta.DisplayVersion(),
		"scenarios", len(content.Scenarios.Scenarios))

	return &content, nil
}

// decode loads one file, validating it against its schema on a cache miss
func (l *Loader) decode(name string, required bool, schemas schemaSet, out any) error {
	file, raw, err := l.read(name)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("optional content file absent", "file", name)
			return nil
		}
		return fmt.Errorf("load %s: %w", name, err)
	}

	key := cache.ContentKey(file, raw)
	data, ok := l.cache.Get(key)
	if !ok {
		data, err = toJSON(file, raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidContent, file, err)
		}

		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidContent, file, err)
		}
		if err := schemas[name].Validate(doc); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidContent, file, err)
		}

		if err := l.cache.Set(key, data, 0); err != nil {
			l.logger.Warn("content cache write failed", "file", file, "error", err)
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidContent, file, err)
	}
	return nil
}

// read returns the first existing file for name across the known extensions
func (l *Loader) read(name string) (string, []byte, error) {
	for _, ext := range extensions {
		file := name + ext
		raw, err := fs.ReadFile(l.fsys, file)
		if err == nil {
			return file, raw, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return file, nil, err
		}
	}
	return name, nil, fmt.Errorf("%s.{json,yaml,yml}: %w", name, fs.ErrNotExist)
}

// toJSON converts YAML content to JSON; JSON passes through unchanged
func toJSON(file string, raw []byte) ([]byte, error) {
	switch path.Ext(file) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		return json.Marshal(doc)
	default:
		return raw, nil
	}
}

// Check enforces constraints the schemas cannot express
func Check(c *model.Content) error {
	seen := make(map[string]bool, len(c.Scenarios.Scenarios))
	for _, sc := range c.Scenarios.Scenarios {
		if seen[sc.ID] {
			return fmt.Errorf("%w: duplicate scenario id %q", ErrInvalidContent, sc.ID)
		}
		seen[sc.ID] = true
	}

	coach := c.Rubric.CoachMe()
	if coach.Low() > coach.High() {
		return fmt.Errorf("%w: coach_me band is inverted: %v", ErrInvalidContent, coach)
	}

	for _, key := range []string{model.MisstepRefundOffer, model.MisstepAggregatorMisroute} {
		if _, ok := c.Missteps.Library[key]; !ok {
			return fmt.Errorf("%w: misstep library lacks %q", ErrInvalidContent, key)
		}
	}
	return nil
}
