package vocab

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pdiddy/concept-base/pkg/types"
)

func testVocab(t *testing.T) *Vocab {
	t.Helper()
	v, err := Open(types.VocabConfig{
		Backend: types.VocabSQLite,
		Path:    filepath.Join(t.TempDir(), "vocab.db"),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { v.Close() })
	return v
}

func TestUnknownBackend(t *testing.T) {
	_, err := Open(types.VocabConfig{Backend: "redis", Path: "ignored"})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestExtendAndLookup(t *testing.T) {
	v := testVocab(t)
	ctx := context.Background()

	err := v.Extend([]types.Node{
		{ID: 1, Label: "/c/en/cat"},
		{ID: 2, Label: "/c/en/dog"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Extend([]types.Node{{ID: 3, Label: "/c/en/cat"}}); err != nil {
		t.Fatal(err)
	}

	n, err := v.Len(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("Len = %d, want 3", n)
	}

	ids, err := v.IDs(ctx, "/c/en/cat")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Fatalf("IDs = %v, want [1 3]", ids)
	}

	ids, err = v.IDs(ctx, "/c/en/fish")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Fatalf("IDs for absent label = %v, want empty", ids)
	}
}
