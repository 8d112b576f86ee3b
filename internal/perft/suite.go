// Package perft runs move-tree node counts: in parallel, against suites of
// known results, and through a persistent cache.
package perft

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Case is one position with its expected counts; Nodes[i] is the count at
// depth i+1.
type Case struct {
	FEN   string   `yaml:"fen"`
	Nodes []uint64 `yaml:"nodes"`
}

// Suite is a named list of cases for one game.
type Suite struct {
	Name  string `yaml:"name"`
	Game  string `yaml:"game"`
	Cases []Case `yaml:"cases"`
}

// ParseText reads the line format
//
//	<fen>; D1 <n>; D2 <n>; ...
//
// Blank lines and lines starting with # are skipped.
func ParseText(name string, r io.Reader) (Suite, error) {
	suite := Suite{Name: name}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		c, err := parseCase(text)
		if err != nil {
			return Suite{}, fmt.Errorf("%s:%d: %w", name, line, err)
		}
		suite.Cases = append(suite.Cases, c)
	}
	return suite, scanner.Err()
}

func parseCase(text string) (Case, error) {
	parts := strings.Split(text, ";")
	c := Case{FEN: strings.TrimSpace(parts[0])}
	if c.FEN == "" {
		return Case{}, fmt.Errorf("missing fen")
	}
	for _, part := range parts[1:] {
		fields := strings.Fields(part)
		if len(fields) != 2 || len(fields[0]) < 2 || fields[0][0] != 'D' {
			return Case{}, fmt.Errorf("bad depth entry %q", strings.TrimSpace(part))
		}
		depth, err := strconv.Atoi(fields[0][1:])
		if err != nil || depth != len(c.Nodes)+1 {
			return Case{}, fmt.Errorf("depth %q out of order", fields[0])
		}
		nodes, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return Case{}, fmt.Errorf("bad node count %q", fields[1])
		}
		c.Nodes = append(c.Nodes, nodes)
	}
	return c, nil
}

// ParseYAML reads a suite document.
func ParseYAML(r io.Reader) (Suite, error) {
	var suite Suite
	if err := yaml.NewDecoder(r).Decode(&suite); err != nil {
		return Suite{}, err
	}
	for i, c := range suite.Cases {
		if c.FEN == "" {
			return Suite{}, fmt.Errorf("%s: case %d has no fen", suite.Name, i+1)
		}
	}
	return suite, nil
}

// LoadFile reads a suite, choosing the format by extension. Text suites
// are named after the file.
func LoadFile(path string) (Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return Suite{}, err
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		suite, err := ParseYAML(f)
		if err != nil {
			return Suite{}, fmt.Errorf("%s: %w", path, err)
		}
		if suite.Name == "" {
			suite.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		return suite, nil
	default:
		return ParseText(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), f)
	}
}
