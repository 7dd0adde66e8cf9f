package fixture

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"html"
	"os"
	"slices"
	"strings"

	"fortio.org/safecast"
)

const (
	openPrefix = `<error descr="`
	openSuffix = `">`
	closeTag   = `</error>`
)

// ErrMarker reports a broken <error> marker.
var ErrMarker = errors.New("malformed fixture marker")

// Expectation is one expected diagnostic in clean-source byte offsets.
type Expectation struct {
	Start, End uint32
	Message    string
	Text       string // marked text
	Line       uint32 // 1-based line of Start
}

// Fixture is a parsed annotated file.
type Fixture struct {
	Path         string
	Source       []byte // markers stripped
	Expectations []Expectation
}

// Load reads and parses the fixture at path.
func Load(path string) (*Fixture, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return Parse(path, content)
}

// Parse strips the markers from content. Markers do not nest.
func Parse(path string, content []byte) (*Fixture, error) {
	fx := &Fixture{Path: path}
	var out bytes.Buffer
	out.Grow(len(content))
	line := 1

	rest := content
	for {
		i := bytes.Index(rest, []byte(openPrefix))
		j := bytes.Index(rest, []byte(closeTag))
		if j >= 0 && (i < 0 || j < i) {
			return nil, markerError(path, line+countLines(rest[:j]), "closing tag without opening tag")
		}
		if i < 0 {
			out.Write(rest)
			break
		}
		out.Write(rest[:i])
		line += countLines(rest[:i])
		rest = rest[i+len(openPrefix):]

		q := bytes.Index(rest, []byte(openSuffix))
		if q < 0 || bytes.IndexByte(rest[:q], '\n') >= 0 {
			return nil, markerError(path, line, "unterminated descr attribute")
		}
		msg := html.UnescapeString(string(rest[:q]))
		rest = rest[q+len(openSuffix):]

		c := bytes.Index(rest, []byte(closeTag))
		if c < 0 {
			return nil, markerError(path, line, "missing "+closeTag)
		}
		text := rest[:c]
		if bytes.Contains(text, []byte(openPrefix)) {
			return nil, markerError(path, line, "nested markers")
		}

		start, err := safecast.Conv[uint32](out.Len())
		if err != nil {
			return nil, markerError(path, line, "file too large")
		}
		out.Write(text)
		end, err := safecast.Conv[uint32](out.Len())
		if err != nil {
			return nil, markerError(path, line, "file too large")
		}
		at, err := safecast.Conv[uint32](line)
		if err != nil {
			return nil, markerError(path, line, "file too large")
		}
		fx.Expectations = append(fx.Expectations, Expectation{
			Start:   start,
			End:     end,
			Message: msg,
			Text:    string(text),
			Line:    at,
		})
		line += countLines(text)
		rest = rest[c+len(closeTag):]
	}

	fx.Source = out.Bytes()
	return fx, nil
}

func countLines(b []byte) int {
	return bytes.Count(b, []byte{'\n'})
}

func markerError(path string, line int, reason string) error {
	return fmt.Errorf("%s:%d: %w: %s", path, line, ErrMarker, reason)
}

var descrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", `>`, "&gt;")

// Annotate wraps each [start,end) range of src in a marker carrying its
// message. Ranges must be sorted and must not overlap.
func Annotate(src []byte, exps []Expectation) ([]byte, error) {
	var out bytes.Buffer
	prev := uint32(0)
	for _, e := range exps {
		if e.Start < prev || e.End < e.Start || int(e.End) > len(src) {
			return nil, fmt.Errorf("%w: bad range [%d,%d)", ErrMarker, e.Start, e.End)
		}
		out.Write(src[prev:e.Start])
		out.WriteString(openPrefix)
		out.WriteString(descrEscaper.Replace(e.Message))
		out.WriteString(openSuffix)
		out.Write(src[e.Start:e.End])
		out.WriteString(closeTag)
		prev = e.End
	}
	out.Write(src[prev:])
	return out.Bytes(), nil
}

func sortExpectations(exps []Expectation) {
	slices.SortStableFunc(exps, func(a, b Expectation) int {
		if a.Start != b.Start {
			return cmp.Compare(a.Start, b.Start)
		}
		return cmp.Compare(a.End, b.End)
	})
}
