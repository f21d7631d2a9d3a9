// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

var allIds = []Id{
	ConfigLoadFailedId,
	CommandNotFoundId,
	ToolNotFoundId,
	EnvFileMalformedId,
	BucketNotSetId,
	DevDepsInstallFailedId,
	DeployScriptNotFoundId,
	StepFailedId,
}

func TestId_Constants(t *testing.T) {
	seen := make(map[Id]bool)
	for _, id := range allIds {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if ConfigLoadFailedId != 1 {
		t.Errorf("ConfigLoadFailedId = %d, want 1", ConfigLoadFailedId)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{CommandNotFoundId, false, "Unknown command"},
		{ToolNotFoundId, false, "Tool not found"},
		{EnvFileMalformedId, false, "KEY=VALUE"},
		{BucketNotSetId, false, "S3_BUCKET_NAME"},
		{DevDepsInstallFailedId, false, ".[dev]"},
		{DeployScriptNotFoundId, false, "deploy.sh"},
		{StepFailedId, false, "--dry-run"},
		{Id(9999), true, "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			issue := Get(tt.id)

			if tt.wantNil {
				if issue != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}

			if issue == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if issue.Id() != tt.id {
				t.Errorf("Id() = %d, want %d", issue.Id(), tt.id)
			}
			if !strings.Contains(string(issue.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain %q", tt.id, tt.contains)
			}
		})
	}
}

func TestValues(t *testing.T) {
	issues := Values()

	if len(issues) != len(allIds) {
		t.Errorf("Values() returned %d issues, want %d", len(issues), len(allIds))
	}
	for _, issue := range issues {
		if issue.Id() == 0 {
			t.Error("found issue with ID 0")
		}
	}
}

func TestIssue_ExtLinksIsClone(t *testing.T) {
	issue := Get(ToolNotFoundId)
	links := issue.ExtLinks()
	if len(links) == 0 {
		t.Fatal("ToolNotFound should carry an external link")
	}
	original := links[0]
	links[0] = "modified"
	if issue.ExtLinks()[0] != original {
		t.Error("ExtLinks() should return a clone")
	}
	if issue.DocLinks() != nil {
		t.Error("DocLinks() should be nil when none are set")
	}
}

func TestIssue_Render(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	t.Run("with links", func(t *testing.T) {
		rendered, err := Get(ConfigLoadFailedId).Render("")
		if err != nil {
			t.Fatalf("Render() returned error: %v", err)
		}
		if !strings.Contains(rendered, "See also") || !strings.Contains(rendered, "cuelang.org") {
			t.Errorf("Render() with links should contain a See also section:\n%s", rendered)
		}
	})

	t.Run("no links", func(t *testing.T) {
		rendered, err := Get(BucketNotSetId).Render("")
		if err != nil {
			t.Fatalf("Render() returned error: %v", err)
		}
		if strings.Contains(rendered, "See also") {
			t.Error("Render() without links should not contain 'See also'")
		}
	})

	t.Run("all issues", func(t *testing.T) {
		for _, issue := range Values() {
			rendered, err := issue.Render("")
			if err != nil || rendered == "" {
				t.Errorf("Issue %d failed to render: %q, %v", issue.Id(), rendered, err)
			}
		}
	})
}
