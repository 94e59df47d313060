package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseNodeList reads one node identifier per line, in file order.
// Surrounding whitespace is trimmed and blank lines are skipped.
func ParseNodeList(r io.Reader) ([]string, error) {
	nodes := make([]string, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		node := strings.TrimSpace(scanner.Text())
		if node == "" {
			continue
		}
		nodes = append(nodes, node)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading node list: %w", err)
	}
	return nodes, nil
}

// LoadNodeList parses the node list stored in filename
func LoadNodeList(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open node list: %w", err)
	}
	defer file.Close()

	nodes, err := ParseNodeList(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return nodes, nil
}
