package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"two-mirrors", "Two Mirrors"},
		{"glass_box", "Glass Box"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestParseSceneMetadata(t *testing.T) {
	testCases := []struct {
		name        string
		content     string
		wantName    string
		wantDesc    string
		wantGroup   string
		wantID      string
		wantDisplay string
	}{
		{
			name: "complete.txt",
			content: `# Scene: Hall of Mirrors
# Description: Two facing mirrors
# Group: Reflections

cam 0 0 5 0 0 0 0 1 0 1 1`,
			wantName:    "Hall of Mirrors",
			wantDesc:    "Two facing mirrors",
			wantGroup:   "Reflections",
			wantID:      "file:complete",
			wantDisplay: "Hall of Mirrors",
		},
		{
			name: "blank-line-first.txt",
			content: `
# Scene: Spheres
cam 0 0 5 0 0 0 0 1 0 1 1`,
			wantName:    "Spheres",
			wantGroup:   fileGroup,
			wantID:      "file:blank-line-first",
			wantDisplay: "Spheres",
		},
		{
			name:        "no_metadata.txt",
			content:     `cam 0 0 5 0 0 0 0 1 0 1 1`,
			wantName:    "No Metadata",
			wantGroup:   fileGroup,
			wantID:      "file:no_metadata",
			wantDisplay: "No Metadata",
		},
		{
			name: "after-body.txt",
			content: `cam 0 0 5 0 0 0 0 1 0 1 1
# Scene: Ignored`,
			wantName:    "After Body",
			wantGroup:   fileGroup,
			wantID:      "file:after-body",
			wantDisplay: "After Body",
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSceneFile(t, dir, tc.name, tc.content)

			info, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}
			if info.ID != tc.wantID {
				t.Errorf("ID = %q, want %q", info.ID, tc.wantID)
			}
			if info.Name != tc.wantName {
				t.Errorf("Name = %q, want %q", info.Name, tc.wantName)
			}
			if info.DisplayName != tc.wantDisplay {
				t.Errorf("DisplayName = %q, want %q", info.DisplayName, tc.wantDisplay)
			}
			if info.Description != tc.wantDesc {
				t.Errorf("Description = %q, want %q", info.Description, tc.wantDesc)
			}
			if info.Group != tc.wantGroup {
				t.Errorf("Group = %q, want %q", info.Group, tc.wantGroup)
			}
			if info.Type != "file" || info.FilePath != path {
				t.Errorf("Type/FilePath = %q/%q, want file/%q", info.Type, info.FilePath, path)
			}
		})
	}
}

func TestParseSceneMetadata_MissingFile(t *testing.T) {
	info, err := ParseSceneMetadata(filepath.Join(t.TempDir(), "missing-scene.txt"))
	if err != nil {
		t.Fatalf("ParseSceneMetadata() should fall back for missing files, got %v", err)
	}
	if info.DisplayName != "Missing Scene" {
		t.Errorf("DisplayName = %q, want %q", info.DisplayName, "Missing Scene")
	}
}

func TestListFileScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "b.txt", "# Scene: Zebra\n")
	writeSceneFile(t, dir, "a.txt", "# Scene: Alpha\n")
	writeSceneFile(t, dir, "ignored.pbrt", "# Scene: Other\n")

	scenes, err := ListFileScenes(dir)
	if err != nil {
		t.Fatalf("ListFileScenes() error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("got %d scenes, want 2", len(scenes))
	}
	if scenes[0].DisplayName != "Alpha" || scenes[1].DisplayName != "Zebra" {
		t.Errorf("scenes not sorted by display name: %q, %q", scenes[0].DisplayName, scenes[1].DisplayName)
	}

	empty, err := ListFileScenes("")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("ListFileScenes(\"\") = %v, %v; want empty slice", empty, err)
	}
}

func TestListAllScenesIn(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "custom.txt", "# Scene: Custom\n# Group: Extras\n")
	writeSceneFile(t, dir, "plain.txt", "cam 0 0 5 0 0 0 0 1 0 1 1\n")

	response, err := ListAllScenesIn(dir)
	if err != nil {
		t.Fatalf("ListAllScenesIn() error: %v", err)
	}

	wantGroups := []string{builtinGroup, "Extras", fileGroup}
	if len(response.Groups) != len(wantGroups) {
		t.Fatalf("got %d groups, want %d", len(response.Groups), len(wantGroups))
	}
	for i, name := range wantGroups {
		if response.Groups[i].Name != name {
			t.Errorf("group %d = %q, want %q", i, response.Groups[i].Name, name)
		}
	}

	builtins := response.Groups[0].Scenes
	if len(builtins) != len(builtinScenes) {
		t.Errorf("built-in scenes count = %d, want %d", len(builtins), len(builtinScenes))
	}
	for _, s := range builtins {
		if s.Type != "builtin" || s.DisplayName == "" {
			t.Errorf("bad built-in entry: %+v", s)
		}
	}
}

func TestNewBuiltinScene(t *testing.T) {
	for _, info := range BuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := NewBuiltinScene(info.ID)
			if err != nil {
				t.Fatalf("NewBuiltinScene(%q) error: %v", info.ID, err)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("built-in scene %q does not validate: %v", info.ID, err)
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("built-in scene has no surfaces")
			}
			if len(s.Lights) == 0 {
				t.Error("built-in scene has no lights")
			}
		})
	}

	if _, err := NewBuiltinScene("nope"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("NewBuiltinScene(\"nope\") error = %v, want ErrUnknownScene", err)
	}
}
