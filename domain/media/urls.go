package media

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// commentPrefix marks a line of a URL list file that is ignored
const commentPrefix = "#"

// ParseURLList reads one URL per line. Blank lines and lines starting
// with "#" (after trimming) are skipped; order is preserved.
func ParseURLList(r io.Reader) ([]string, error) {
	var urls []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		urls = append(urls, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading url list: %v", ErrIO, err)
	}

	return urls, nil
}
