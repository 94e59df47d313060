package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gilchrisn/random-walk-controversy/pkg/rwc"
)

const maxLineSize = 1024 * 1024

// EdgeListParser reads weighted edge lists of the form "node1,node2,weight".
// The weight column is optional; it is stored on the graph but never used by walks.
type EdgeListParser struct {
	Delimiter     string
	DefaultWeight float64
}

// NewEdgeListParser creates a parser for comma separated edge lists
func NewEdgeListParser() *EdgeListParser {
	return &EdgeListParser{
		Delimiter:     ",",
		DefaultWeight: 1.0,
	}
}

// ParseFile parses the edge list stored in filename
func (p *EdgeListParser) ParseFile(filename string) (*rwc.Graph, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open edge list: %w", err)
	}
	defer file.Close()

	graph, err := p.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return graph, nil
}

// Parse reads an edge list into a directed graph. Blank lines and lines starting with '#' are skipped.
func (p *EdgeListParser) Parse(r io.Reader) (*rwc.Graph, error) {
	delimiter := p.Delimiter
	if delimiter == "" {
		delimiter = ","
	}

	graph := rwc.NewGraph()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, delimiter)
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("line %d: expected node1%snode2[%sweight], got %q", lineNum, delimiter, delimiter, line)
		}

		from := strings.TrimSpace(parts[0])
		to := strings.TrimSpace(parts[1])
		if from == "" || to == "" {
			return nil, fmt.Errorf("line %d: empty node identifier", lineNum)
		}

		weight := p.DefaultWeight
		if len(parts) == 3 && strings.TrimSpace(parts[2]) != "" {
			w, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid weight %q: %w", lineNum, parts[2], err)
			}
			weight = w
		}

		if err := graph.AddEdge(from, to, weight); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading edge list: %w", err)
	}

	if graph.NumNodes == 0 {
		return nil, fmt.Errorf("edge list contains no edges")
	}

	return graph, nil
}

// LoadEdgeList parses a comma separated edge list file
func LoadEdgeList(filename string) (*rwc.Graph, error) {
	return NewEdgeListParser().ParseFile(filename)
}
