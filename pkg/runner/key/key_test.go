package key

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestKeyListsMarksAndMoods(t *testing.T) {
	var buf bytes.Buffer
	k := &Key{Out: &buf}
	if err := k.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Marks", "Moods", "fell asleep", "no night logged", "woke up tired"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
