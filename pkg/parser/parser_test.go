package parser

import (
	"strings"
	"testing"

	"github.com/floorkit/hbstar/pkg/hberrors"
)

func TestParse_ModulesAndGroup(t *testing.T) {
	input := `
# a comment
MODULE A 20 10
MODULE B 20 10
MODULE C 10 10

GROUP g1 vertical
PAIR p1 A B
`
	res, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Modules.Len() != 3 {
		t.Errorf("Modules.Len() = %d, want 3", res.Modules.Len())
	}
	if len(res.Groups) != 1 {
		t.Fatalf("len(Groups) = %d, want 1", len(res.Groups))
	}
	if len(res.Groups[0].Pairs) != 1 || res.Groups[0].Pairs[0].A != "A" || res.Groups[0].Pairs[0].B != "B" {
		t.Errorf("unexpected pairs: %+v", res.Groups[0].Pairs)
	}
}

func TestParse_SelfSymmetric(t *testing.T) {
	input := `
MODULE S 30 10
GROUP g1 vertical
SELF s1 S
`
	res, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Groups[0].SelfSymmetric) != 1 || res.Groups[0].SelfSymmetric[0] != "S" {
		t.Errorf("unexpected self-symmetric list: %v", res.Groups[0].SelfSymmetric)
	}
}

func TestParse_PairOutsideGroupFails(t *testing.T) {
	_, err := Parse(strings.NewReader("PAIR p1 A B\n"))
	if err == nil {
		t.Fatal("expected error for PAIR outside GROUP")
	}
	if !hberrors.Is(err, hberrors.ErrCodeInvalidManifest) {
		t.Errorf("expected ErrCodeInvalidManifest, got %v", err)
	}
}

func TestParse_BadDimensions(t *testing.T) {
	_, err := Parse(strings.NewReader("MODULE A notanumber 10\n"))
	if !hberrors.Is(err, hberrors.ErrCodeInvalidManifest) {
		t.Errorf("expected ErrCodeInvalidManifest, got %v", err)
	}
}

func TestParse_DuplicateModuleName(t *testing.T) {
	_, err := Parse(strings.NewReader("MODULE A 10 10\nMODULE A 20 20\n"))
	if !hberrors.Is(err, hberrors.ErrCodeInvalidManifest) {
		t.Errorf("expected ErrCodeInvalidManifest, got %v", err)
	}
}

func TestParse_UnknownAxis(t *testing.T) {
	_, err := Parse(strings.NewReader("GROUP g1 diagonal\n"))
	if !hberrors.Is(err, hberrors.ErrCodeInvalidManifest) {
		t.Errorf("expected ErrCodeInvalidManifest, got %v", err)
	}
}
