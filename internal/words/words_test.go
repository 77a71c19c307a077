package words

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("wanted embedded words")
	}
	for _, w := range got {
		if !isAlpha(w) {
			t.Errorf("non-alphabetic word %q", w)
		}
	}
}

func TestLoadFile(t *testing.T) {
	loadTests := []struct {
		contents string
		want     []string
		wantErr  bool
	}{
		{
			contents: "# comment\nApple\n\n  pear  \napple\nice cream\nr2d2\n",
			want:     []string{"apple", "pear"},
		},
		{
			contents: "# nothing usable\n123\n",
			wantErr:  true,
		},
	}
	for i, test := range loadTests {
		path := filepath.Join(t.TempDir(), "words.txt")
		if err := os.WriteFile(path, []byte(test.contents), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := Load(path)
		switch {
		case test.wantErr:
			if err == nil {
				t.Errorf("Test %v: wanted error", i)
			}
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		case len(got) != len(test.want):
			t.Errorf("Test %v: wanted %v, got %v", i, test.want, got)
		default:
			for j := range test.want {
				if got[j] != test.want[j] {
					t.Errorf("Test %v: wanted %v, got %v", i, test.want, got)
					break
				}
			}
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("wanted error for missing file")
	}
}

func TestPick(t *testing.T) {
	if got := pick(nil); got != Fallback {
		t.Errorf("wanted fallback %q, got %q", Fallback, got)
	}
	from := []string{"one", "two"}
	for i := 0; i < 20; i++ {
		got := pick(from)
		if got != "one" && got != "two" {
			t.Fatalf("picked %q outside list", got)
		}
	}
}

func TestInit(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if Count() == 0 {
		t.Error("wanted words after Init")
	}
	if w := Random(); w == "" || !isAlpha(w) {
		t.Errorf("Random returned %q", w)
	}
}
