// Package luxtable holds the mapping of brightness levels to the minimum
// ambient lux at which they are used.
package luxtable

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/luxclock/luxclock/internal/ui"
	"github.com/luxclock/luxclock/internal/util"
)

const (
	Levels = 16

	FileName = "lux_dimming.txt"
)

// Table maps a brightness level to its lux threshold. A threshold of 0
// means the level is unset and never selected by a lookup.
type Table [Levels]int

// DefaultPath returns the table file next to the running executable.
func DefaultPath() string {
	dir, err := util.ExecutableDir()
	if err != nil {
		ui.Warning("Unable to locate executable, using working directory for %s: %v", FileName, err)
		return FileName
	}
	return filepath.Join(dir, FileName)
}

// ResolvePath returns path, or DefaultPath if it is empty.
func ResolvePath(path string) string {
	if len(path) <= 0 {
		return DefaultPath()
	}
	return path
}

// Load reads the table file at path. A missing file yields an empty table
// and an error wrapping os.ErrNotExist.
func Load(path string) (Table, error) {
	var table Table
	data, err := os.ReadFile(path)
	if err != nil {
		return table, fmt.Errorf("read lux table: %w", err)
	}
	return Parse(data), nil
}

// Parse reads "<lux> <level>" lines. Parsing is best effort, missing or
// garbage tokens are read as 0 and levels outside 0..15 are skipped.
func Parse(data []byte) Table {
	var table Table
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		lux := parseInt(fields, 0)
		level := parseInt(fields, 1)
		if level < 0 || level >= Levels {
			ui.Warning("Ignoring lux table line %d: level %d out of range", lineNumber, level)
			continue
		}
		table[level] = lux
	}
	return table
}

func parseInt(fields []string, index int) int {
	if index >= len(fields) {
		return 0
	}
	value, err := strconv.Atoi(fields[index])
	if err != nil {
		return 0
	}
	return value
}

// Save writes the set entries of table to path, replacing the file
// atomically.
func Save(path string, table Table) error {
	if err := util.WriteFileAtomic(path, table.Bytes()); err != nil {
		return fmt.Errorf("write lux table: %w", err)
	}
	return nil
}

// Bytes returns the file representation of the table.
func (t Table) Bytes() []byte {
	var buffer bytes.Buffer
	for level, lux := range t {
		if lux > 0 {
			_, _ = fmt.Fprintf(&buffer, "%d %d\n", lux, level)
		}
	}
	return buffer.Bytes()
}

// Entries returns the set thresholds by level.
func (t Table) Entries() map[int]int {
	result := map[int]int{}
	for level, lux := range t {
		if lux > 0 {
			result[level] = lux
		}
	}
	return result
}

// IsEmpty reports whether no level has a threshold.
func (t Table) IsEmpty() bool {
	return len(t.Entries()) == 0
}

// Lookup returns the highest level whose threshold is at most lux, or 0.
func (t Table) Lookup(lux float64) int {
	for level := Levels - 1; level > 0; level-- {
		threshold := t[level]
		if threshold > 0 && float64(threshold) <= lux {
			return level
		}
	}
	return 0
}

// Set assigns a threshold to a level, 0 clears it.
func (t *Table) Set(level int, lux int) error {
	if level < 0 || level >= Levels {
		return fmt.Errorf("level %d is out of range 0..%d", level, Levels-1)
	}
	if lux < 0 {
		return errors.New("lux threshold must not be negative")
	}
	t[level] = lux
	return nil
}
