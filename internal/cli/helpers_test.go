package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/julianstephens/microhabit/internal/badges"
	"github.com/julianstephens/microhabit/internal/config"
	"github.com/julianstephens/microhabit/internal/points"
	"github.com/julianstephens/microhabit/internal/storage"
	"github.com/julianstephens/microhabit/internal/testutil"
	"github.com/julianstephens/microhabit/internal/tracker"
)

// newTestContext builds a context over store with output captured in the
// returned buffer. The store is not initialized.
func newTestContext(t *testing.T, store storage.Provider) (*Context, *bytes.Buffer) {
	t.Helper()
	clock := testutil.FixedClock()
	calc, err := points.New(points.DefaultConfig())
	if err != nil {
		t.Fatalf("points.New failed: %v", err)
	}

	out := &bytes.Buffer{}
	ctx := &Context{
		Ctx:    context.Background(),
		Store:  store,
		Repo:   storage.NewRepository(store),
		Config: config.Default(),
		Engine: tracker.Engine{
			Calculator: calc,
			Evaluator:  badges.New(badges.DefaultCatalog()),
			IDs:        testutil.NewStubIDGenerator(),
		},
		Clock: clock,
		Out:   out,
	}
	t.Cleanup(func() { store.Close() })
	return ctx, out
}

func setupSQLite(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	return newTestContext(t, store)
}

// setupOnboarded returns a context whose user picked water, read and exercise
func setupOnboarded(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	ctx, out := setupSQLite(t)
	if err := (&OnboardCmd{Template: []string{"water", "read", "exercise"}}).Run(ctx); err != nil {
		t.Fatalf("onboard failed: %v", err)
	}
	out.Reset()
	return ctx, out
}
