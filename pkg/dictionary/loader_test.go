package dictionary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

type chunkEntry struct {
	word string
	rank uint16
}

func encodeChunk(t *testing.T, entries []chunkEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, int32(len(entries)))
	for _, e := range entries {
		binary.Write(&buf, binary.LittleEndian, uint16(len(e.word)))
		buf.WriteString(e.word)
		binary.Write(&buf, binary.LittleEndian, e.rank)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseText(t *testing.T) {
	input := `3
	5627187200	the

   3395006400	of
1.5	new york
`
	corpus, err := ParseText(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(corpus.Words, []string{"the", "of", "new york"}) {
		t.Errorf("unexpected words %v", corpus.Words)
	}
	if !slices.Equal(corpus.Weights, []float64{5627187200, 3395006400, 1.5}) {
		t.Errorf("unexpected weights %v", corpus.Weights)
	}
}

func TestParseTextWithoutCount(t *testing.T) {
	corpus, err := ParseText(strings.NewReader("4 bell\n-2 boy\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if corpus.Len() != 2 || corpus.Weights[1] != -2 {
		t.Errorf("unexpected corpus %+v", corpus)
	}
}

func TestParseTextErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		line  string
	}{
		{"bad weight", "2\n1 a\nabc b\n", "line 3"},
		{"missing word", "1 a\n7\n", "line 2"},
		{"bad count", "many\n", "line 1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseText(strings.NewReader(tc.input))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.line) {
				t.Errorf("expected %q in %v", tc.line, err)
			}
		})
	}
}

func TestReadChunk(t *testing.T) {
	data := encodeChunk(t, []chunkEntry{{"the", 1}, {"of", 2}, {"café", 300}})
	corpus, err := ReadChunk(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(corpus.Words, []string{"the", "of", "café"}) {
		t.Errorf("unexpected words %v", corpus.Words)
	}
	if !slices.Equal(corpus.Weights, []float64{65535, 65534, 65236}) {
		t.Errorf("unexpected weights %v", corpus.Weights)
	}
}

func TestReadChunkTruncated(t *testing.T) {
	data := encodeChunk(t, []chunkEntry{{"the", 1}, {"of", 2}})
	if _, err := ReadChunk(bytes.NewReader(data[:len(data)-1])); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
	if _, err := ReadChunk(bytes.NewReader([]byte{1})); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for short header, got %v", err)
	}
}

func TestLoadDirOrdersChunks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dict_0002.bin", encodeChunk(t, []chunkEntry{{"second", 5}}))
	writeFile(t, dir, "dict_0001.bin", encodeChunk(t, []chunkEntry{{"first", 1}, {"also", 2}}))
	writeFile(t, dir, "dict_notes.bin", []byte{0, 0, 0, 0})

	chunks, err := ListChunks(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 || chunks[0].ChunkID != 1 || chunks[1].ChunkID != 2 {
		t.Fatalf("unexpected chunks %+v", chunks)
	}

	corpus, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(corpus.Words, []string{"first", "also", "second"}) {
		t.Errorf("unexpected words %v", corpus.Words)
	}
}

func TestLoadDirEmpty(t *testing.T) {
	if _, err := LoadDir(t.TempDir()); err == nil {
		t.Errorf("expected error for directory without chunks")
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	text := writeFile(t, dir, "words.txt", []byte("2\n3 air\n2 bat\n"))
	chunk := writeFile(t, dir, "dict_0001.bin", encodeChunk(t, []chunkEntry{{"air", 1}}))
	other := writeFile(t, dir, "words.csv", []byte("3,air\n"))

	corpus, err := Load(text)
	if err != nil || corpus.Len() != 2 {
		t.Errorf("text load: %v %+v", err, corpus)
	}
	corpus, err = Load(chunk)
	if err != nil || corpus.Len() != 1 {
		t.Errorf("chunk load: %v %+v", err, corpus)
	}
	if _, err := Load(other); err == nil {
		t.Errorf("expected error for unknown extension")
	}
	if _, err := Load(filepath.Join(dir, "missing.txt")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()
	text := writeFile(t, dir, "words.txt", []byte("1 a\n"))
	chunk := writeFile(t, dir, "dict_0001.bin", encodeChunk(t, nil))
	short := writeFile(t, dir, "short.bin", []byte{1, 2})
	negative := writeFile(t, dir, "neg.bin", []byte{0xff, 0xff, 0xff, 0xff})

	if f, err := DetectFileFormat(text); err != nil || f != FormatText {
		t.Errorf("expected FormatText, got %v %v", f, err)
	}
	if f, err := DetectFileFormat(chunk); err != nil || f != FormatChunk {
		t.Errorf("expected FormatChunk, got %v %v", f, err)
	}
	if _, err := DetectFileFormat(short); err == nil {
		t.Errorf("expected error for undersized chunk")
	}
	if err := ValidateFileFormat(negative, FormatChunk); err == nil {
		t.Errorf("expected error for negative word count")
	}
	if err := ValidateFileFormat(text, FormatChunk); err == nil {
		t.Errorf("expected extension mismatch error")
	}
}
