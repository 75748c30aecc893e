package format

import "testing"

func TestApply(t *testing.T) {
	tests := []struct {
		kind     Kind
		param    string
		expected string
	}{
		{Bold, "", "<strong>note</strong>"},
		{Italic, "", "<em>note</em>"},
		{Underline, "", "<u>note</u>"},
		{Highlight, "", "<mark>note</mark>"},
		{H1, "", `<h1 style="font-size: 2em; margin: 0.67em 0;">note</h1>`},
		{Color, "#FF0000", `<span style="color:#FF0000">note</span>`},
	}

	for _, tt := range tests {
		got := Apply("note", tt.kind, tt.param)
		if got != tt.expected {
			t.Errorf("Apply(%s): expected %q, got %q", tt.kind, tt.expected, got)
		}
	}
}

func TestApplyEscapesSelection(t *testing.T) {
	got := Apply("<script>x</script>", Bold, "")
	if got != "<strong>&lt;script&gt;x&lt;/script&gt;</strong>" {
		t.Errorf("Selection should be escaped, got %q", got)
	}
}

func TestApplyUnknownKind(t *testing.T) {
	got := Apply("plain", Kind("blink"), "")
	if got != "plain" {
		t.Errorf("Unknown kind should return selection unchanged, got %q", got)
	}
	if Known(Kind("blink")) {
		t.Error("blink should not be a known kind")
	}
}
