package logreader

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Harshhrajj/Logfile-analyzer/internal/parser"
)

// Line is one numbered line of input text. Numbers are 1-based and
// increase by one per line with no gaps.
type Line struct {
	Number int
	Text   string
}

// LogReader reads log files and turns raw bytes into numbered,
// sanitized text lines for the analyzer.
type LogReader struct{}

// NewLogReader creates a new log reader.
func NewLogReader() *LogReader {
	return &LogReader{}
}

// ReadFile reads a log file and returns a channel of numbered lines.
// Gzipped files are decompressed transparently.
func (r *LogReader) ReadFile(ctx context.Context, path string) (<-chan Line, <-chan error) {
	lineChan := make(chan Line, 100)
	errorChan := make(chan error, 1)

	go func() {
		defer close(lineChan)
		defer close(errorChan)

		file, err := r.openFile(path)
		if err != nil {
			errorChan <- fmt.Errorf("failed to open file: %w", err)
			return
		}
		defer file.Close()

		scanner := newLineScanner(file)
		number := 0

		for scanner.Scan() {
			select {
			case <-ctx.Done():
				return
			default:
				number++
				lineChan <- Line{Number: number, Text: parser.Sanitize(scanner.Text())}
			}
		}

		if err := scanner.Err(); err != nil {
			errorChan <- fmt.Errorf("error reading file: %w", err)
		}
	}()

	return lineChan, errorChan
}

// ReadStdin reads numbered lines from stdin.
func (r *LogReader) ReadStdin(ctx context.Context) (<-chan Line, <-chan error) {
	lineChan := make(chan Line, 100)
	errorChan := make(chan error, 1)

	go func() {
		defer close(lineChan)
		defer close(errorChan)

		scanner := newLineScanner(os.Stdin)
		number := 0

		for scanner.Scan() {
			select {
			case <-ctx.Done():
				return
			default:
				number++
				lineChan <- Line{Number: number, Text: parser.Sanitize(scanner.Text())}
			}
		}

		if err := scanner.Err(); err != nil {
			errorChan <- fmt.Errorf("error reading stdin: %w", err)
		}
	}()

	return lineChan, errorChan
}

// TailFile tails a log file. With follow set, reading starts at the
// end of the file and continues as lines are appended; numbering keeps
// increasing across appends.
func (r *LogReader) TailFile(ctx context.Context, path string, follow bool) (<-chan Line, <-chan error) {
	if !follow {
		return r.ReadFile(ctx, path)
	}

	lineChan := make(chan Line, 100)
	errorChan := make(chan error, 1)

	go func() {
		defer close(lineChan)
		defer close(errorChan)

		file, err := r.openFile(path)
		if err != nil {
			errorChan <- fmt.Errorf("failed to open file: %w", err)
			return
		}
		defer file.Close()

		if seeker, ok := file.(io.Seeker); ok {
			if _, err := seeker.Seek(0, io.SeekEnd); err != nil {
				errorChan <- fmt.Errorf("failed to seek to end: %w", err)
				return
			}
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			errorChan <- fmt.Errorf("failed to create watcher: %w", err)
			return
		}
		defer watcher.Close()

		if err := watcher.Add(path); err != nil {
			errorChan <- fmt.Errorf("failed to watch file: %w", err)
			return
		}

		scanner := newLineScanner(file)
		number := 0

		drain := func() bool {
			for scanner.Scan() {
				number++
				select {
				case <-ctx.Done():
					return false
				case lineChan <- Line{Number: number, Text: parser.Sanitize(scanner.Text())}:
				}
			}
			return true
		}

		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-watcher.Events:
				if event.Op&fsnotify.Write == fsnotify.Write {
					if !drain() {
						return
					}
				}
			case err := <-watcher.Errors:
				errorChan <- err
				return
			case <-ticker.C:
				if !drain() {
					return
				}
			}
		}
	}()

	return lineChan, errorChan
}

// FileInfo describes a log file before analysis.
type FileInfo struct {
	Path      string
	Size      int64
	ModTime   time.Time
	IsGzipped bool
}

// Stat returns information about a log file.
func (r *LogReader) Stat(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	return &FileInfo{
		Path:      path,
		Size:      stat.Size(),
		ModTime:   stat.ModTime(),
		IsGzipped: strings.HasSuffix(path, ".gz"),
	}, nil
}

// openFile opens a file, handling gzip compression.
func (r *LogReader) openFile(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(path, ".gz") {
		gzReader, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return &gzipReadCloser{gzReader, file}, nil
	}

	return file, nil
}

// newLineScanner builds a scanner with a buffer large enough for long
// log lines.
func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	return scanner
}

// gzipReadCloser wraps a gzip.Reader and underlying file
type gzipReadCloser struct {
	gzReader *gzip.Reader
	file     *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) {
	return g.gzReader.Read(p)
}

func (g *gzipReadCloser) Close() error {
	g.gzReader.Close()
	return g.file.Close()
}
