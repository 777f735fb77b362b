// Package local loads icon data from a directory.
//
// The directory holds one IconifyJSON file per set, named <prefix>.json,
// either at the top level or under json/ as in the @iconify/json package.
// An optional collections.json lists the sets; without it the list is
// built from the info blocks of the set files.
package local

import (
	"bytes"
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/matzehuels/iconfinder/pkg/errors"
	"github.com/matzehuels/iconfinder/pkg/iconset"
	"github.com/matzehuels/iconfinder/pkg/source"
)

const collectionsFile = "collections.json"

// Source reads sets from a directory. It implements source.Loader.
type Source struct {
	fsys fs.FS
	name string // for messages
}

// New returns a source rooted at dir.
func New(dir string) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "icon directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is not a directory", dir)
	}
	return &Source{fsys: os.DirFS(dir), name: dir}, nil
}

// NewFS returns a source reading from fsys.
func NewFS(fsys fs.FS, name string) *Source {
	return &Source{fsys: fsys, name: name}
}

// Load implements source.Loader.
func (s *Source) Load(ctx context.Context, req source.Request) (source.Payload, error) {
	if err := ctx.Err(); err != nil {
		return source.Payload{}, err
	}
	switch req.Kind {
	case source.KindIconSet:
		data, err := s.IconSet(req.Prefix)
		return source.Payload{Data: data, Format: iconset.SourceFilesystem}, err
	case source.KindCollections:
		data, err := s.Collections()
		return source.Payload{Data: data}, err
	default:
		return source.Payload{}, errors.New(errors.ErrCodeUnsupported, "%s: %s requests are not supported by local sources", s.name, req.Kind)
	}
}

// IconSet returns the bytes of <prefix>.json. A file whose "prefix"
// differs from the requested one is INVALID_DATA.
func (s *Source) IconSet(prefix string) ([]byte, error) {
	if err := errors.ValidatePrefix(prefix); err != nil {
		return nil, err
	}
	data, err := s.readSet(prefix)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New(errors.ErrCodeInvalidData, "%s.json: invalid JSON", prefix)
	}
	if got := gjson.GetBytes(data, "prefix").String(); got != prefix {
		return nil, errors.New(errors.ErrCodeInvalidData, "%s.json: prefix %q does not match", prefix, got)
	}
	return data, nil
}

func (s *Source) readSet(prefix string) ([]byte, error) {
	for _, p := range []string{prefix + ".json", "json/" + prefix + ".json"} {
		data, err := fs.ReadFile(s.fsys, p)
		if err == nil {
			return data, nil
		}
		if !notExist(err) {
			return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "read %s", p)
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "%s: icon set %q not found", s.name, prefix)
}

// Prefixes lists the sets in the directory, sorted.
func (s *Source) Prefixes() ([]string, error) {
	seen := make(map[string]bool)
	for _, dir := range []string{".", "json"} {
		entries, err := fs.ReadDir(s.fsys, dir)
		if err != nil {
			if notExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || name == collectionsFile || !strings.HasSuffix(name, ".json") {
				continue
			}
			prefix := strings.TrimSuffix(name, ".json")
			if errors.ValidatePrefix(prefix) == nil {
				seen[prefix] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

// Collections returns collections.json, or a list assembled from the info
// block of every set when that file is absent. Sets without info are
// skipped.
func (s *Source) Collections() ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, collectionsFile)
	if err == nil {
		return data, nil
	}
	if !notExist(err) {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "read %s", collectionsFile)
	}

	prefixes, err := s.Prefixes()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	n := 0
	for _, prefix := range prefixes {
		set, err := s.readSet(prefix)
		if err != nil {
			continue
		}
		info := gjson.GetBytes(set, "info")
		if !info.IsObject() {
			continue
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(prefix))
		buf.WriteByte(':')
		buf.WriteString(info.Raw)
		n++
	}
	buf.WriteByte('}')
	if n == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "%s: no icon sets", s.name)
	}
	return buf.Bytes(), nil
}

func notExist(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist)
}

// Dir returns the name the source was created with.
func (s *Source) Dir() string { return filepath.Clean(s.name) }

var _ source.Loader = (*Source)(nil)
