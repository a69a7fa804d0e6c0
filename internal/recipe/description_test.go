package recipe

import (
	"testing"
)

func TestParseDescription(t *testing.T) {
	t.Run("ExtractsSteps", func(t *testing.T) {
		html := `<ul><li>Peel the beets</li><li>Simmer for <b>40</b> minutes</li></ul>`
		steps, err := ParseDescription(html)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(steps) != 2 {
			t.Fatalf("Expected 2 steps, got %d", len(steps))
		}
		if steps[0] != "Peel the beets" {
			t.Errorf("Unexpected first step: %q", steps[0])
		}
		if steps[1] != "Simmer for <b>40</b> minutes" {
			t.Errorf("Expected inner markup to be preserved, got %q", steps[1])
		}
	})

	t.Run("MalformedHTMLYieldsNoSteps", func(t *testing.T) {
		steps, err := ParseDescription("just plain text, no list")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(steps) != 0 {
			t.Errorf("Expected no steps, got %v", steps)
		}
	})

	t.Run("EmptyDescription", func(t *testing.T) {
		steps, err := ParseDescription("")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(steps) != 0 {
			t.Errorf("Expected no steps, got %v", steps)
		}
	})
}

func TestBuildDescription(t *testing.T) {
	steps := []string{"Peel the beets", "Simmer for <b>40</b> minutes"}
	html := BuildDescription(steps)

	expected := "<ul><li>Peel the beets</li><li>Simmer for <b>40</b> minutes</li></ul>"
	if html != expected {
		t.Errorf("Expected %q, got %q", expected, html)
	}

	// Round trip back through the parser.
	parsed, err := ParseDescription(html)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(parsed) != len(steps) {
		t.Fatalf("Expected %d steps after round trip, got %d", len(steps), len(parsed))
	}
	for i := range steps {
		if parsed[i] != steps[i] {
			t.Errorf("Step %d: expected %q, got %q", i, steps[i], parsed[i])
		}
	}
}
