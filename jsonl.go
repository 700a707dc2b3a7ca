package wiktionary

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/gzip"
)

// ErrNoMetadata is returned by EntryReader.Metadata for files without
// a header line.
var ErrNoMetadata = errors.New("entry file has no metadata header")

// FileMetadata is the first line of an entry file.
type FileMetadata struct {
	Metadata      bool      `json:"_metadata"`
	Language      string    `json:"language"`
	LanguageCode  string    `json:"language_code"`
	ParserVersion string    `json:"parser_version"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// NewFileMetadata gets the header for a language's entry file.
func NewFileMetadata(language string) FileMetadata {
	code, _ := LanguageCode(language)
	return FileMetadata{
		Metadata:      true,
		Language:      language,
		LanguageCode:  code,
		ParserVersion: ParserVersion,
		GeneratedAt:   time.Now().UTC(),
	}
}

// An EntryWriter writes entries as gzipped JSON lines.
type EntryWriter struct {
	gz    *gzip.Writer
	enc   *json.Encoder
	count int
}

// NewEntryWriter starts an entry file on w with the given header.
// Close the writer to flush the gzip stream; w itself is left open.
func NewEntryWriter(w io.Writer, meta FileMetadata) (*EntryWriter, error) {
	gz, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	enc := json.NewEncoder(gz)
	enc.SetEscapeHTML(false)

	meta.Metadata = true
	if err := enc.Encode(meta); err != nil {
		return nil, fmt.Errorf("writing metadata: %w", err)
	}
	return &EntryWriter{gz: gz, enc: enc}, nil
}

// Write appends one entry.
func (w *EntryWriter) Write(e *Entry) error {
	if err := w.enc.Encode(e); err != nil {
		return fmt.Errorf("writing %v: %w", e.Key(), err)
	}
	w.count++
	return nil
}

// Count is the number of entries written so far.
func (w *EntryWriter) Count() int {
	return w.count
}

// Close flushes and terminates the gzip stream.
func (w *EntryWriter) Close() error {
	return w.gz.Close()
}

// An EntryReader reads an entry file written by EntryWriter.
type EntryReader struct {
	gz      *gzip.Reader
	dec     *json.Decoder
	meta    *FileMetadata
	pending json.RawMessage
}

// NewEntryReader opens a gzipped entry file and reads its header, if
// there is one.
func NewEntryReader(r io.Reader) (*EntryReader, error) {
	gz, err := gzip.NewReader(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	rv := &EntryReader{gz: gz, dec: json.NewDecoder(gz)}

	var first json.RawMessage
	err = rv.dec.Decode(&first)
	switch {
	case err == io.EOF:
		return rv, nil
	case err != nil:
		return nil, fmt.Errorf("reading first line: %w", err)
	}

	var probe struct {
		Metadata bool `json:"_metadata"`
	}
	if err := json.Unmarshal(first, &probe); err != nil {
		return nil, fmt.Errorf("reading first line: %w", err)
	}
	if !probe.Metadata {
		rv.pending = first
		return rv, nil
	}

	meta := FileMetadata{}
	if err := json.Unmarshal(first, &meta); err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	rv.meta = &meta
	return rv, nil
}

// Metadata is the file's header line.
func (r *EntryReader) Metadata() (FileMetadata, error) {
	if r.meta == nil {
		return FileMetadata{}, ErrNoMetadata
	}
	return *r.meta, nil
}

// Next gets the next entry, or io.EOF at the end of the file.
func (r *EntryReader) Next() (*Entry, error) {
	rv := new(Entry)
	if r.pending != nil {
		raw := r.pending
		r.pending = nil
		if err := json.Unmarshal(raw, rv); err != nil {
			return nil, err
		}
		return rv, nil
	}
	if err := r.dec.Decode(rv); err != nil {
		return nil, err
	}
	return rv, nil
}

// Close releases the decompressor. The underlying reader is left open.
func (r *EntryReader) Close() error {
	return r.gz.Close()
}
