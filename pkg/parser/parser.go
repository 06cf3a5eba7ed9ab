// Package parser reads the line-oriented module/symmetry-group input
// format into a module.Set and a slice of symmetry.Group (§4.5). It is a
// small hand-written scanner, not a parser-combinator library.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/floorkit/hbstar/pkg/hberrors"
	"github.com/floorkit/hbstar/pkg/module"
	"github.com/floorkit/hbstar/pkg/symmetry"
)

// Result is the parsed input: every module and every declared symmetry
// group.
type Result struct {
	Modules *module.Set
	Groups  []*symmetry.Group
}

// Parse reads the input format from r:
//
//	MODULE <name> <width> <height>
//	GROUP <name> <vertical|horizontal>
//	PAIR <name> <a> <b>
//	SELF <name> <module>
//
// GROUP opens a group; subsequent PAIR/SELF lines belong to it until the
// next GROUP or end of input. Blank lines and lines starting with # are
// ignored. The PAIR/SELF leading <name> field is a label, kept for
// readability, and not otherwise used.
//
// Returns an *hberrors.Error with ErrCodeInvalidManifest on any malformed
// line.
func Parse(r io.Reader) (*Result, error) {
	res := &Result{Modules: module.NewSet()}
	var current *symmetry.Group

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "MODULE":
			m, err := parseModule(fields)
			if err != nil {
				return nil, manifestErr(lineNo, err)
			}
			if err := res.Modules.Add(m); err != nil {
				return nil, manifestErr(lineNo, err)
			}

		case "GROUP":
			g, err := parseGroup(fields)
			if err != nil {
				return nil, manifestErr(lineNo, err)
			}
			res.Groups = append(res.Groups, g)
			current = g

		case "PAIR":
			if current == nil {
				return nil, manifestErr(lineNo, fmt.Errorf("PAIR outside any GROUP"))
			}
			if err := parsePair(current, fields); err != nil {
				return nil, manifestErr(lineNo, err)
			}

		case "SELF":
			if current == nil {
				return nil, manifestErr(lineNo, fmt.Errorf("SELF outside any GROUP"))
			}
			if err := parseSelf(current, fields); err != nil {
				return nil, manifestErr(lineNo, err)
			}

		default:
			return nil, manifestErr(lineNo, fmt.Errorf("unrecognized directive %q", fields[0]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, hberrors.Wrap(hberrors.ErrCodeInvalidManifest, err, "reading input")
	}

	for _, g := range res.Groups {
		if err := g.Validate(); err != nil {
			return nil, hberrors.Wrap(hberrors.ErrCodeInvalidManifest, err, "group %q", g.Name)
		}
	}
	return res, nil
}

func manifestErr(lineNo int, cause error) error {
	return hberrors.Wrap(hberrors.ErrCodeInvalidManifest, cause, "line %d", lineNo)
}

func parseModule(fields []string) (*module.Module, error) {
	if len(fields) != 4 {
		return nil, fmt.Errorf("MODULE expects <name> <width> <height>, got %d fields", len(fields)-1)
	}
	w, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("invalid width %q: %w", fields[2], err)
	}
	h, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("invalid height %q: %w", fields[3], err)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("module %q dimensions must be positive, got %dx%d", fields[1], w, h)
	}
	return module.New(fields[1], w, h), nil
}

func parseGroup(fields []string) (*symmetry.Group, error) {
	if len(fields) != 3 {
		return nil, fmt.Errorf("GROUP expects <name> <vertical|horizontal>, got %d fields", len(fields)-1)
	}
	var axis symmetry.Axis
	switch fields[2] {
	case "vertical":
		axis = symmetry.Vertical
	case "horizontal":
		axis = symmetry.Horizontal
	default:
		return nil, fmt.Errorf("unknown axis %q, want vertical or horizontal", fields[2])
	}
	return symmetry.New(fields[1], axis), nil
}

func parsePair(g *symmetry.Group, fields []string) error {
	if len(fields) != 4 {
		return fmt.Errorf("PAIR expects <name> <a> <b>, got %d fields", len(fields)-1)
	}
	return g.AddPair(fields[2], fields[3])
}

func parseSelf(g *symmetry.Group, fields []string) error {
	if len(fields) != 3 {
		return fmt.Errorf("SELF expects <name> <module>, got %d fields", len(fields)-1)
	}
	return g.AddSelfSymmetric(fields[2])
}
