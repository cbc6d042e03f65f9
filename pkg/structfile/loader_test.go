package structfile

import (
	"strings"
	"testing"
	"testing/fstest"
)

const validJSON = `{
	"name": "post",
	"min": [0, 0, 0],
	"max": [0, 3, 0],
	"edits": [
		{"pos": [0, 1, 0], "block": "oak_log"},
		{"pos": [0, 2, 0], "block": "oak_log"},
		{"pos": [0, 3, 0], "block": "oak_leaves"}
	]
}`

func TestLoadValidStructure(t *testing.T) {
	fsys := fstest.MapFS{"post.json": {Data: []byte(validJSON)}}
	s, err := Load(fsys, "post.json")
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "post" || len(s.Edits) != 3 {
		t.Fatalf("loaded %q with %d edits", s.Name, len(s.Edits))
	}
}

func TestLoadRejectsOutOfBoundsEdit(t *testing.T) {
	bad := strings.Replace(validJSON, `[0, 3, 0], "block": "oak_leaves"`, `[1, 3, 0], "block": "oak_leaves"`, 1)
	fsys := fstest.MapFS{"post.json": {Data: []byte(bad)}}
	if _, err := Load(fsys, "post.json"); err == nil {
		t.Fatal("edit outside the bounding box was accepted")
	}
}

func TestLoadRejectsInvertedBounds(t *testing.T) {
	bad := strings.Replace(validJSON, `"min": [0, 0, 0]`, `"min": [0, 5, 0]`, 1)
	fsys := fstest.MapFS{"post.json": {Data: []byte(bad)}}
	if _, err := Load(fsys, "post.json"); err == nil {
		t.Fatal("inverted bounding box was accepted")
	}
}

func TestLoadRejectsMissingName(t *testing.T) {
	bad := strings.Replace(validJSON, `"name": "post"`, `"name": ""`, 1)
	fsys := fstest.MapFS{"post.json": {Data: []byte(bad)}}
	if _, err := Load(fsys, "post.json"); err == nil {
		t.Fatal("nameless structure was accepted")
	}
}

func TestLoadDirSkipsNonJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"structures/post.json": {Data: []byte(validJSON)},
		"structures/README":    {Data: []byte("not a structure")},
	}
	set, err := LoadDir(fsys, "structures")
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != 1 {
		t.Fatalf("loaded %d structures, want 1", len(set))
	}
}

func TestLoadDirRejectsDuplicateNames(t *testing.T) {
	fsys := fstest.MapFS{
		"structures/a.json": {Data: []byte(validJSON)},
		"structures/b.json": {Data: []byte(validJSON)},
	}
	if _, err := LoadDir(fsys, "structures"); err == nil {
		t.Fatal("two files with the same structure name were accepted")
	}
}

func TestNamesSorted(t *testing.T) {
	set := map[string]*Structure{"zeta": {}, "alpha": {}, "mid": {}}
	names := Names(set)
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names = %v, want %v", names, want)
		}
	}
}
