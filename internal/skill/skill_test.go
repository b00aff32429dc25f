package skill

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadEmbeddedSkill(t *testing.T) {
	data, err := ReadEmbeddedSkill("jira-read-ticket")
	if err != nil {
		t.Fatalf("ReadEmbeddedSkill: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "---\n") {
		t.Error("embedded skill should start with frontmatter")
	}
	if !strings.Contains(content, "name: jira-read-ticket") {
		t.Error("embedded skill missing name in frontmatter")
	}
	if !strings.Contains(content, "jira-md description") {
		t.Error("embedded skill should document the description command")
	}
}

func TestReadEmbeddedSkillUnknown(t *testing.T) {
	if _, err := ReadEmbeddedSkill("no-such-skill"); err == nil {
		t.Error("expected error for unknown skill")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 1 || names[0] != "jira-read-ticket" {
		t.Errorf("Names() = %v, want [jira-read-ticket]", names)
	}
}

func TestAgentByName(t *testing.T) {
	a := AgentByName("claude")
	if a == nil {
		t.Fatal("claude agent not found")
	}
	if a.DisplayName != "Claude Code" {
		t.Errorf("DisplayName = %q", a.DisplayName)
	}
	if AgentByName("emacs") != nil {
		t.Error("unknown agent should return nil")
	}
}

func TestAllAgentNames(t *testing.T) {
	names := AllAgentNames()
	want := []string{"claude", "codex", "cursor", "openclaw"}
	if len(names) != len(want) {
		t.Fatalf("got %d agents, want %d", len(names), len(want))
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("agent[%d] = %q, want %q", i, names[i], n)
		}
	}
}

func TestSkillPath(t *testing.T) {
	a := AgentByName("claude")
	root := "/tmp/project"
	if got := a.SkillPath(root, false); got != filepath.Join(root, ".claude/skills") {
		t.Errorf("project SkillPath = %q", got)
	}
	global := a.SkillPath(root, true)
	if !strings.HasSuffix(global, filepath.Join(".claude", "skills")) {
		t.Errorf("global SkillPath = %q", global)
	}
}

func TestDetectAgents(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".claude"), 0o750); err != nil {
		t.Fatal(err)
	}

	detected := DetectAgents(root)
	var names []string
	for _, a := range detected {
		names = append(names, a.Name)
	}

	// OpenClaw's skills dir lives at the root so it is always detected.
	want := []string{"claude", "openclaw"}
	if len(names) != len(want) {
		t.Fatalf("detected %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("detected[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestInstallAndVersion(t *testing.T) {
	dir := t.TempDir()

	if err := Install("jira-read-ticket", dir, "1.2.3"); err != nil {
		t.Fatalf("Install: %v", err)
	}

	skillMD := filepath.Join(dir, "jira-read-ticket", "SKILL.md")
	data, err := os.ReadFile(skillMD)
	if err != nil {
		t.Fatalf("reading installed skill: %v", err)
	}
	if !strings.Contains(string(data), "<!-- jira-md-skill-version: 1.2.3 -->") {
		t.Error("installed skill missing version comment")
	}
	// The comment goes after the frontmatter, not before it.
	if strings.HasPrefix(string(data), "<!--") {
		t.Error("version comment should not precede frontmatter")
	}

	if v := InstalledVersion(skillMD); v != "1.2.3" {
		t.Errorf("InstalledVersion = %q, want 1.2.3", v)
	}

	if IsOutdated(skillMD, "1.2.3") {
		t.Error("same version should not be outdated")
	}
	if !IsOutdated(skillMD, "2.0.0") {
		t.Error("different version should be outdated")
	}
}

func TestInstallUnknownSkill(t *testing.T) {
	if err := Install("no-such-skill", t.TempDir(), "1.0.0"); err == nil {
		t.Error("expected error for unknown skill")
	}
}

func TestInstalledVersionMissingFile(t *testing.T) {
	if v := InstalledVersion(filepath.Join(t.TempDir(), "absent", "SKILL.md")); v != "" {
		t.Errorf("InstalledVersion for missing file = %q, want empty", v)
	}
}

func TestIsOutdatedNotInstalled(t *testing.T) {
	if IsOutdated(filepath.Join(t.TempDir(), "absent"), "1.0.0") {
		t.Error("missing skill should not be outdated")
	}
}

func TestInjectVersionCommentNoFrontmatter(t *testing.T) {
	out := injectVersionComment([]byte("# Title\nbody\n"), "0.1.0")
	if !strings.HasPrefix(string(out), VersionComment("0.1.0")+"\n# Title") {
		t.Errorf("got %q", out)
	}
}

func TestInjectVersionCommentAfterFrontmatter(t *testing.T) {
	in := "---\nname: x\n---\n# Title\n"
	out := string(injectVersionComment([]byte(in), "0.1.0"))
	want := "---\nname: x\n---\n" + VersionComment("0.1.0") + "\n# Title\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestFindInstalledSkills(t *testing.T) {
	dir := t.TempDir()
	if found := FindInstalledSkills(dir); len(found) != 0 {
		t.Errorf("empty dir: found %v", found)
	}

	if err := Install("jira-read-ticket", dir, "1.0.0"); err != nil {
		t.Fatal(err)
	}
	found := FindInstalledSkills(dir)
	if len(found) != 1 {
		t.Fatalf("found %v, want one skill", found)
	}
	if _, ok := found["jira-read-ticket"]; !ok {
		t.Errorf("found %v, missing jira-read-ticket", found)
	}
}
