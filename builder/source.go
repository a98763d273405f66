package builder

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"

	"github.com/vuuvv/errors"
)

const mergedRoot = "wiregen"

// Source is one schema document. The first source is the base protocol, later
// ones are overlays.
type Source struct {
	Name string
	Data []byte
}

func LoadSources(paths []string) ([]Source, error) {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		sources = append(sources, Source{Name: filepath.Base(p), Data: data})
	}
	return sources, nil
}

// MergeSources joins the content of every source under one synthetic root so
// the builder sees a single document. Packet sections of overlays become the
// network category.
func MergeSources(sources ...Source) *MergedReader {
	return &MergedReader{sources: sources, index: -1}
}

type MergedReader struct {
	sources []Source
	index   int
	dec     *xml.Decoder
	depth   int
	done    bool
}

// InputPos reports the position inside the source currently being read.
func (m *MergedReader) InputPos() (line int, column int) {
	if m.dec == nil {
		return 0, 0
	}
	return m.dec.InputPos()
}

func (m *MergedReader) SourceName() string {
	if m.index < 0 || m.index >= len(m.sources) {
		return ""
	}
	return m.sources[m.index].Name
}

func (m *MergedReader) Token() (xml.Token, error) {
	if m.done {
		return nil, io.EOF
	}
	if m.index < 0 {
		m.next()
		return xml.StartElement{Name: xml.Name{Local: mergedRoot}}, nil
	}
	for m.dec != nil {
		tok, err := m.dec.Token()
		if err == io.EOF {
			m.next()
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read source %s", m.SourceName())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			m.depth++
			if m.depth == 1 {
				continue
			}
			if m.index > 0 && t.Name.Local == "packets" {
				t.Name.Local = "network"
			}
			return t, nil
		case xml.EndElement:
			m.depth--
			if m.depth == 0 {
				continue
			}
			if m.index > 0 && t.Name.Local == "packets" {
				t.Name.Local = "network"
			}
			return t, nil
		case xml.CharData, xml.Comment:
			// text content carries no layout
			continue
		default:
			continue
		}
	}
	m.done = true
	return xml.EndElement{Name: xml.Name{Local: mergedRoot}}, nil
}

func (m *MergedReader) next() {
	m.index++
	m.depth = 0
	if m.index >= len(m.sources) {
		m.dec = nil
		return
	}
	m.dec = xml.NewDecoder(bytes.NewReader(m.sources[m.index].Data))
}
