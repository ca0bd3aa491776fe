// Package dictionary loads weighted term corpora from text files and binary
// chunk files.
package dictionary

import (
	"bufio"
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
)

// ErrMalformed is wrapped by every parse failure
var ErrMalformed = errors.New("malformed corpus")

// rankBase converts chunk ranks to weights so that rank 1 weighs the most
const rankBase = 65536

// Corpus is a parallel list of words and their weights
type Corpus struct {
	Words   []string
	Weights []float64
}

// Len returns the number of terms
func (c *Corpus) Len() int {
	return len(c.Words)
}

func (c *Corpus) add(word string, weight float64) {
	c.Words = append(c.Words, word)
	c.Weights = append(c.Weights, weight)
}

func (c *Corpus) merge(other *Corpus) {
	c.Words = append(c.Words, other.Words...)
	c.Weights = append(c.Weights, other.Weights...)
}

// ChunkInfo describes one dict_NNNN.bin file
type ChunkInfo struct {
	ChunkID  int
	Filename string
}

// Load reads a corpus from a text file, a chunk file or a chunk directory
func Load(path string) (*Corpus, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat corpus %s: %w", path, err)
	}
	if stat.IsDir() {
		return LoadDir(path)
	}

	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus %s: %w", path, err)
	}
	defer file.Close()

	var corpus *Corpus
	switch format {
	case FormatChunk:
		corpus, err = ReadChunk(bufio.NewReader(file))
	default:
		corpus, err = ParseText(file)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("Loaded %d terms from %s (%s)", corpus.Len(), path, format)
	return corpus, nil
}

// ListChunks scans a directory for chunk files, sorted by chunk ID
func ListChunks(dirPath string) ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(dirPath, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			log.Debugf("Skipping chunk with non-numeric id: %s", file)
			continue
		}
		chunks = append(chunks, ChunkInfo{ChunkID: chunkID, Filename: file})
	}
	slices.SortFunc(chunks, func(a, b ChunkInfo) int {
		return cmp.Compare(a.ChunkID, b.ChunkID)
	})
	return chunks, nil
}

// LoadDir reads every chunk file in a directory, in chunk ID order
func LoadDir(dirPath string) (*Corpus, error) {
	chunks, err := ListChunks(dirPath)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunk files found in %s", dirPath)
	}

	corpus := &Corpus{}
	for _, chunk := range chunks {
		if err := validateChunkHeader(chunk.Filename); err != nil {
			return nil, err
		}
		part, err := loadChunkFile(chunk.Filename)
		if err != nil {
			return nil, err
		}
		log.Debugf("Chunk %d loaded: %d words", chunk.ChunkID, part.Len())
		corpus.merge(part)
	}
	return corpus, nil
}

func loadChunkFile(filename string) (*Corpus, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	corpus, err := ReadChunk(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return corpus, nil
}

// ReadChunk decodes one binary chunk. Weight is 65536 minus the stored rank.
func ReadChunk(r io.Reader) (*Corpus, error) {
	var total int32
	if err := binary.Read(r, binary.LittleEndian, &total); err != nil {
		return nil, fmt.Errorf("%w: failed to read chunk header: %w", ErrMalformed, err)
	}
	if total < 0 || total > maxChunkWords {
		return nil, fmt.Errorf("%w: invalid word count %d", ErrMalformed, total)
	}

	corpus := &Corpus{
		Words:   make([]string, 0, total),
		Weights: make([]float64, 0, total),
	}
	for i := range int(total) {
		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			return nil, fmt.Errorf("%w: entry %d: failed to read word length: %w", ErrMalformed, i, err)
		}
		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(r, wordBytes); err != nil {
			return nil, fmt.Errorf("%w: entry %d: failed to read word: %w", ErrMalformed, i, err)
		}
		var rank uint16
		if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
			return nil, fmt.Errorf("%w: entry %d: failed to read rank: %w", ErrMalformed, i, err)
		}
		corpus.add(string(wordBytes), float64(rankBase-int(rank)))
	}
	return corpus, nil
}

// ParseText decodes the text format. The first non-blank line may hold the
// term count alone; every other non-blank line is a weight, whitespace, and
// the word, which may itself contain spaces.
func ParseText(r io.Reader) (*Corpus, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	corpus := &Corpus{}
	declared := -1
	seenContent := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRightFunc(scanner.Text(), unicode.IsSpace)
		line = strings.TrimLeftFunc(line, unicode.IsSpace)
		if line == "" {
			continue
		}

		weightField, word, found := cutSpace(line)
		if !seenContent {
			seenContent = true
			if !found {
				n, err := strconv.Atoi(line)
				if err != nil || n < 0 {
					return nil, fmt.Errorf("%w: line %d: invalid term count %q", ErrMalformed, lineNo, line)
				}
				declared = n
				continue
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: line %d: missing word after weight %q", ErrMalformed, lineNo, line)
		}
		weight, err := strconv.ParseFloat(weightField, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid weight %q", ErrMalformed, lineNo, weightField)
		}
		corpus.add(word, weight)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	if declared >= 0 && declared != corpus.Len() {
		log.Warnf("Corpus declares %d terms but holds %d", declared, corpus.Len())
	}
	return corpus, nil
}

// cutSpace splits at the first whitespace run
func cutSpace(s string) (before, after string, found bool) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, "", false
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace), true
}
