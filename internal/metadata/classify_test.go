package metadata

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name       string
		line       string
		above, below bool
		want       LineClass
	}{
		{"prose line", "Some text", false, false, ClassProse},
		{"prose even with blanks", "Some text", true, true, ClassProse},
		{"dashes surrounded by blanks", "---", true, true, ClassHorizontalRule},
		{"ruler regardless of trailing content", "--- extra", true, true, ClassHorizontalRule},
		{"blank above only", "---", true, false, ClassMetadataDelimiter},
		{"blank below only", "---", false, true, ClassMetadataDelimiter},
		{"no blanks", "---", false, false, ClassMetadataDelimiter},
		{"two dashes is prose", "--", true, true, ClassProse},
		{"longer dash run", "----", false, true, ClassMetadataDelimiter},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.line, tc.above, tc.below); got != tc.want {
				t.Errorf("Classify(%q, %v, %v) = %v, want %v", tc.line, tc.above, tc.below, got, tc.want)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := Classify("---", false, true); got != ClassMetadataDelimiter {
			t.Fatalf("run %d: got %v", i, got)
		}
	}
}

func TestDocumentEdgesCountAsBlank(t *testing.T) {
	d := NewDocument("---\ntitle: x\n---\n")
	if !d.IsBlank(0) {
		t.Error("line above document start should be blank")
	}
	if !d.IsBlank(d.LineCount() + 1) {
		t.Error("line below document end should be blank")
	}
	if got := classifyAt(d, 1); got != ClassMetadataDelimiter {
		t.Errorf("opening delimiter classified as %v", got)
	}
}
