package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every loaded file and resolves spans against them. Adding a
// path again creates a new version; older FileIDs stay valid. Mutation is
// not synchronized: the driver loads all files before linting in parallel.
type FileSet struct {
	files   []File
	latest  map[string]FileID
	baseDir string   // "" means the working directory
	decoder *Decoder // nil: content is UTF-8 already
}

func NewFileSet() *FileSet {
	return &FileSet{latest: map[string]FileID{}}
}

// NewFileSetWithBase sets the directory relative paths are computed from.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// SetDecoder makes Load convert content from a legacy charset.
func (fs *FileSet) SetDecoder(d *Decoder) { fs.decoder = d }

// BaseDir returns the configured base, falling back to the working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Len counts every stored version.
func (fs *FileSet) Len() int { return len(fs.files) }

// Add stores already-normalized content under path and returns its new ID.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	id := FileID(n)
	path = normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.latest[path] = id
	return id
}

// Load reads path, decodes it when a Decoder is set, strips a UTF-8 BOM and
// folds CRLF to LF. The flags record each step so Encode can undo them.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	if fs.decoder != nil {
		if raw, err = fs.decoder.Decode(raw); err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
		flags |= FileDecoded
	}
	raw, bom := removeBOM(raw)
	raw, crlf := normalizeCRLF(raw)
	if bom {
		flags |= FileHadBOM
	}
	if crlf {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, raw, flags), nil
}

// AddVirtual stores in-memory content (tests, fixtures, stdin).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Encode turns edited content of file id back into on-disk form: LF becomes
// CRLF, the charset is re-encoded and the BOM restored, per the load flags.
func (fs *FileSet) Encode(id FileID, content []byte) ([]byte, error) {
	f := fs.Get(id)
	if f.Flags&FileNormalizedCRLF != 0 {
		content = bytes.ReplaceAll(content, []byte("\n"), []byte("\r\n"))
	}
	if f.Flags&FileDecoded != 0 && fs.decoder != nil {
		var err error
		if content, err = fs.decoder.Encode(content); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Path, err)
		}
	}
	if f.Flags&FileHadBOM != 0 {
		content = append(append([]byte(nil), utf8BOM...), content...)
	}
	return content, nil
}

func (fs *FileSet) Get(id FileID) *File { return &fs.files[id] }

// GetLatest returns the newest version stored under path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.latest[normalizePath(path)]
	return id, ok
}

// Resolve maps both ends of span to line and column.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	idx := fs.files[span.File].LineIdx
	return toLineCol(idx, span.Start), toLineCol(idx, span.End)
}

// Text returns the bytes under span, clipped to the file.
func (fs *FileSet) Text(span Span) string {
	c := fs.files[span.File].Content
	hi := min(int(span.End), len(c))
	return string(c[min(int(span.Start), hi):hi])
}

// LineStart is the byte offset of 1-based line n; past the end it is the
// content length.
func (f *File) LineStart(n uint32) uint32 {
	switch {
	case n <= 1:
		return 0
	case int(n-2) < len(f.LineIdx):
		return f.LineIdx[n-2] + 1
	}
	return f.size()
}

// GetLine returns 1-based line n without its newline, or "" when absent.
func (f *File) GetLine(n uint32) string {
	if n == 0 || int(n)-2 >= len(f.LineIdx) {
		return ""
	}
	start, end := f.LineStart(n), f.size()
	if int(n-1) < len(f.LineIdx) {
		end = f.LineIdx[n-1]
	}
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

func (f *File) size() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file too large: %w", err))
	}
	return n
}

// FormatPath renders f.Path for output. mode is absolute, relative (to
// baseDir, or the working directory when empty), basename or auto; auto
// keeps short or relative paths and shortens long absolute ones.
func (f *File) FormatPath(mode, baseDir string) string {
	var (
		p   string
		err error
	)
	switch mode {
	case "absolute":
		p, err = AbsolutePath(f.Path)
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		p, err = RelativePath(f.Path, baseDir)
	case "basename":
		return BaseName(f.Path)
	case "auto":
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return BaseName(f.Path)
		}
		return f.Path
	default:
		return f.Path
	}
	if err != nil {
		return f.Path
	}
	return p
}
