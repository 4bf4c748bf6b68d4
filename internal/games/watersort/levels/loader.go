// Package levels loads Water Sort level files.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/levels/formats"
)

//go:embed data/*.yaml
var embeddedFS embed.FS

// ErrLevelNotFound is returned by lookups for an unknown level ID.
var ErrLevelNotFound = errors.New("level not found")

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Bottles  [][]core.Color // Filled layers per bottle, bottom first
	Metadata map[string]string
	FilePath string
}

// Title returns the display name, falling back to the ID.
func (l Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// NewBoard creates a fresh board in the level's starting position.
func (l Level) NewBoard() *core.Board {
	bottles := make([]core.BottleStack, len(l.Bottles))
	for i, layers := range l.Bottles {
		bottles[i] = core.MustBottle(layers...)
	}
	return core.NewBoard(bottles)
}

// ColorCount returns the number of distinct colors in the level.
func (l Level) ColorCount() int {
	seen := make(map[core.Color]struct{})
	for _, layers := range l.Bottles {
		for _, c := range layers {
			seen[c] = struct{}{}
		}
	}
	return len(seen)
}

// FromYAML validates a parsed file and converts it to a Level.
func FromYAML(yl formats.YAMLLevel, filePath string) (Level, error) {
	if err := Validate(yl); err != nil {
		return Level{}, err
	}

	lvl := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Bottles:  make([][]core.Color, len(yl.Bottles)),
		Metadata: yl.Metadata,
		FilePath: filePath,
	}
	for i, b := range yl.Bottles {
		names := b.Layers()
		layers := make([]core.Color, len(names))
		for j, name := range names {
			layers[j], _ = core.ParseColor(name)
		}
		lvl.Bottles[i] = layers
	}
	return lvl, nil
}

// ToYAML converts a level back to its file layout.
func (l Level) ToYAML() formats.YAMLLevel {
	yl := formats.YAMLLevel{
		ID:       l.ID,
		Name:     l.Name,
		Bottles:  make([]formats.YAMLBottle, len(l.Bottles)),
		Metadata: l.Metadata,
	}
	for i, layers := range l.Bottles {
		names := make([]string, len(layers))
		for j, c := range layers {
			names[j] = c.String()
		}
		yl.Bottles[i] = formats.YAMLBottle{Colors: names}
	}
	return yl
}

// FileResult is the outcome of loading one file during a scan.
type FileResult struct {
	Path  string
	Level Level
	Err   error
}

// Loader handles loading levels from a file system.
type Loader struct {
	fsys   fs.FS
	root   string
	dir    string // Disk directory behind fsys, for reported paths
	strict bool
	logger *log.Logger
}

// NewLoader creates a loader for a directory on disk.
// Invalid files are logged and skipped.
func NewLoader(dir string) *Loader {
	return &Loader{fsys: os.DirFS(dir), root: ".", dir: dir}
}

// NewFSLoader creates a loader over fsys rooted at root.
func NewFSLoader(fsys fs.FS, root string) *Loader {
	return &Loader{fsys: fsys, root: root}
}

// Embedded returns a strict loader for the levels built into the binary.
func Embedded() *Loader {
	return &Loader{fsys: embeddedFS, root: "data", strict: true}
}

// Strict makes LoadAll fail on the first invalid file instead of skipping it.
func (l *Loader) Strict(strict bool) *Loader {
	l.strict = strict
	return l
}

// WithLogger sets the logger used to report skipped files.
func (l *Loader) WithLogger(logger *log.Logger) *Loader {
	l.logger = logger
	return l
}

// Scan loads every supported file under the root and reports each result.
// Results are ordered by path.
func (l *Loader) Scan() ([]FileResult, error) {
	var results []FileResult

	err := fs.WalkDir(l.fsys, l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}
		lvl, err := l.LoadFile(p)
		results = append(results, FileResult{Path: p, Level: lvl, Err: err})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.root, err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, nil
}

// LoadAll loads every valid level and returns them sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	results, err := l.Scan()
	if err != nil {
		return nil, err
	}

	var levels []Level
	seen := make(map[string]string)
	for _, r := range results {
		if r.Err == nil {
			if first, dup := seen[r.Level.ID]; dup {
				r.Err = ValidationError{
					Code:    CodeDuplicateID,
					Message: fmt.Sprintf("id %q already defined in %s", r.Level.ID, first),
				}
			}
		}
		if r.Err != nil {
			if l.strict {
				return nil, r.Err
			}
			if l.logger != nil {
				l.logger.Warn("skipping level file", "path", r.Path, "err", r.Err)
			}
			continue
		}
		seen[r.Level.ID] = r.Path
		levels = append(levels, r.Level)
	}

	sortByID(levels)
	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	yl, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p,
			ValidationError{Code: CodeParse, Message: err.Error()})
	}

	lvl, err := FromYAML(yl, l.displayPath(p))
	if err != nil {
		return Level{}, fmt.Errorf("validating file %s: %w", p, err)
	}
	return lvl, nil
}

func (l *Loader) displayPath(p string) string {
	if l.dir == "" {
		return p
	}
	return filepath.Join(l.dir, filepath.FromSlash(p))
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Merge overlays extra on base. A level in extra replaces the base level
// with the same ID; new IDs are added. The result is sorted by ID.
func Merge(base, extra []Level) []Level {
	byID := make(map[string]int, len(base))
	out := make([]Level, 0, len(base)+len(extra))
	for _, lvl := range base {
		byID[lvl.ID] = len(out)
		out = append(out, lvl)
	}
	for _, lvl := range extra {
		if i, ok := byID[lvl.ID]; ok {
			out[i] = lvl
			continue
		}
		byID[lvl.ID] = len(out)
		out = append(out, lvl)
	}
	sortByID(out)
	return out
}

func sortByID(levels []Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.YAMLLevel, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.YAMLLevel{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
