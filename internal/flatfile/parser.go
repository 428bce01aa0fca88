package flatfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"db-inventory/internal/dialect"

	"go.uber.org/zap"
)

// Progress is called after each input line with the number of lines
// handled so far and the total line count.
type Progress func(done, total int)

// Parse turns one raw line into a Record. It reports false when the line
// does not have exactly six whitespace-separated tokens.
func Parse(line string) (Record, bool) {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) != fieldCount {
		return Record{}, false
	}
	return Record{
		Platform:     dialect.ParsePlatform(parts[0]),
		PlatformName: parts[0],
		Server:       parts[1],
		Database:     parts[2],
		Service:      parts[3],
		Port:         parts[4],
		Version:      parts[5],
	}, true
}

// Skip reports whether a line is blank or a comment.
func Skip(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.HasPrefix(line, CommentMarker)
}

// Read parses every data line of r in order. Malformed lines are logged
// and skipped; only I/O errors are returned.
func Read(r io.Reader, logger *zap.Logger, progress Progress) ([]Record, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read flat file: %w", err)
	}

	var records []Record
	for i, raw := range lines {
		lineNum := i + 1
		if progress != nil {
			progress(lineNum, len(lines))
		}

		if Skip(raw) {
			continue
		}

		line := strings.TrimSpace(raw)
		rec, ok := Parse(line)
		if !ok {
			logger.Warn("skipping invalid line",
				zap.Int("line", lineNum),
				zap.String("content", line))
			continue
		}
		rec.Line = lineNum
		records = append(records, rec)
	}
	return records, nil
}

// readLines splits r into lines of any length, dropping the line
// terminator (LF or CRLF).
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, logger *zap.Logger, progress Progress) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, logger, progress)
}
