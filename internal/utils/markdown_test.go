package utils

import (
	"strings"
	"testing"
)

func TestSanitizeTextStripsMarkup(t *testing.T) {
	got := SanitizeText(`hello <script>alert(1)</script><b>world</b>`)
	if strings.Contains(got, "<") {
		t.Errorf("sanitized text still contains markup: %q", got)
	}
	if !strings.Contains(got, "hello") || !strings.Contains(got, "world") {
		t.Errorf("sanitized text lost content: %q", got)
	}
}

func TestRenderMarkdownDropsScript(t *testing.T) {
	got := RenderMarkdown("**bold** <script>alert(1)</script>")
	if strings.Contains(got, "script") {
		t.Errorf("rendered markdown contains script: %q", got)
	}
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("rendered markdown lost formatting: %q", got)
	}
}

func TestEnhanceHTMLContentImageAttrs(t *testing.T) {
	got := EnhanceHTMLContent(`<p><img src="https://example.com/a.png"/></p>`)
	for _, attr := range []string{`loading="lazy"`, `referrerpolicy="no-referrer"`} {
		if !strings.Contains(got, attr) {
			t.Errorf("missing %s in %q", attr, got)
		}
	}
}

func TestEnhanceHTMLContentYouTubeEmbed(t *testing.T) {
	got := EnhanceHTMLContent(`<p>https://www.youtube.com/watch?v=abc123</p>`)
	if !strings.Contains(got, "youtube.com/embed/abc123") {
		t.Errorf("expected embed iframe, got %q", got)
	}

	// A link inside a sentence stays a plain paragraph.
	got = EnhanceHTMLContent(`<p>watch https://youtu.be/abc123 later</p>`)
	if strings.Contains(got, "iframe") {
		t.Errorf("inline link should not embed: %q", got)
	}
}
