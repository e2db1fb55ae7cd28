package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gdzig/oopz/internal/diag"
	"github.com/gdzig/oopz/internal/snapshot"
)

const goodManifest = `
[package]
name = "scene"

[[class]]
name = "Object"

[[class]]
name = "Node"
base = "Object"

[[check]]
kind   = "isa"
class  = "Node"
target = "Object"

[[check]]
kind  = "cast-error"
from  = "?*Node"
to    = "*Node"
error = "optionality"
`

const failingManifest = `
[package]
name = "scene"

[[class]]
name = "Object"

[[class]]
name = "Node"
base = "Object"

[[check]]
kind   = "isa"
class  = "Object"
target = "Node"
`

type memorySink struct {
	mu     sync.Mutex
	events []Event
}

func (s *memorySink) OnEvent(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func (s *memorySink) all() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunProcessesManifests(t *testing.T) {
	dir := t.TempDir()
	good := writeManifest(t, dir, "good.toml", goodManifest)
	bad := writeManifest(t, dir, "bad.toml", failingManifest)
	broken := writeManifest(t, dir, "broken.toml", "[package\nname=")
	missing := filepath.Join(dir, "absent.toml")

	out, err := Run(context.Background(), []string{good, bad, broken, missing}, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(out.Results))
	}
	for i, path := range []string{good, bad, broken, missing} {
		if out.Results[i].Path != path {
			t.Fatalf("result %d: expected %q, got %q", i, path, out.Results[i].Path)
		}
	}

	goodRes := out.Results[0]
	if goodRes.Bag.Len() != 0 {
		t.Fatalf("expected a clean good job, got %v", goodRes.Bag.Items())
	}
	if goodRes.ChecksRan != 2 || goodRes.ChecksFailed != 0 {
		t.Fatalf("expected 2/0 checks, got %d/%d", goodRes.ChecksRan, goodRes.ChecksFailed)
	}
	if goodRes.Resolved == nil || goodRes.Resolved.Table.Len() != 2 {
		t.Fatalf("expected 2 classes resolved")
	}

	badRes := out.Results[1]
	if !badRes.Bag.HasErrors() || badRes.ChecksFailed != 1 {
		t.Fatalf("expected the failing battery to error, got %v", badRes.Bag.Items())
	}
	if badRes.Bag.Items()[0].Code != diag.ManCheckFailed {
		t.Fatalf("expected ManCheckFailed, got %s", badRes.Bag.Items()[0].Code.ID())
	}

	brokenRes := out.Results[2]
	if !brokenRes.Bag.HasErrors() || brokenRes.Bag.Items()[0].Code != diag.ManSyntax {
		t.Fatalf("expected ManSyntax, got %v", brokenRes.Bag.Items())
	}

	missingRes := out.Results[3]
	if !missingRes.Bag.HasErrors() || missingRes.Bag.Items()[0].Code != diag.ManLoadFailed {
		t.Fatalf("expected ManLoadFailed, got %v", missingRes.Bag.Items())
	}

	if !out.HasErrors() {
		t.Fatalf("expected the run to carry errors")
	}
	ran, failed := out.Checks()
	if ran != 3 || failed != 1 {
		t.Fatalf("expected 3 checks with 1 failure, got %d/%d", ran, failed)
	}

	merged := out.Diagnostics()
	if merged.Len() != 3 {
		t.Fatalf("expected 3 merged diagnostics, got %d", merged.Len())
	}
}

func TestRunEventSequence(t *testing.T) {
	dir := t.TempDir()
	good := writeManifest(t, dir, "good.toml", goodManifest)
	sink := &memorySink{}

	if _, err := Run(context.Background(), []string{good}, Options{Sink: sink}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []struct {
		stage  Stage
		status Status
	}{
		{StageLoad, StatusQueued},
		{StageLoad, StatusWorking},
		{StageLoad, StatusDone},
		{StageResolve, StatusWorking},
		{StageResolve, StatusDone},
		{StageCheck, StatusWorking},
		{StageCheck, StatusDone},
	}
	events := sink.all()
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d: %+v", len(want), len(events), events)
	}
	for i, w := range want {
		if events[i].Stage != w.stage || events[i].Status != w.status {
			t.Fatalf("event %d: expected %s/%s, got %s/%s",
				i, w.stage, w.status, events[i].Stage, events[i].Status)
		}
		if events[i].Manifest != good {
			t.Fatalf("event %d: expected manifest %q, got %q", i, good, events[i].Manifest)
		}
	}
}

func TestRunSnapshotRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	store, err := snapshot.Open("oopz")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	dir := t.TempDir()
	good := writeManifest(t, dir, "good.toml", goodManifest)

	first, err := Run(context.Background(), []string{good}, Options{Store: store})
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if first.Results[0].Cached {
		t.Fatalf("expected the first run to parse")
	}

	second, err := Run(context.Background(), []string{good}, Options{Store: store})
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	res := second.Results[0]
	if !res.Cached {
		t.Fatalf("expected the second run to restore from the snapshot")
	}
	if res.ChecksRan != 2 || res.ChecksFailed != 0 {
		t.Fatalf("expected the battery to run on the restored table, got %d/%d",
			res.ChecksRan, res.ChecksFailed)
	}
	node, ok := res.Resolved.Table.ByName("Node")
	if !ok {
		t.Fatalf("expected Node in the restored table")
	}
	object, _ := res.Resolved.Table.ByName("Object")
	if !res.Resolved.Table.IsA(object, node) {
		t.Fatalf("expected the restored relation to hold")
	}

	// Edits change the content hash and miss the cache.
	writeManifest(t, dir, "good.toml", goodManifest+"\n# touched\n")
	third, err := Run(context.Background(), []string{good}, Options{Store: store})
	if err != nil {
		t.Fatalf("third Run: %v", err)
	}
	if third.Results[0].Cached {
		t.Fatalf("expected the edited manifest to parse again")
	}
}

func TestRunEmitStage(t *testing.T) {
	dir := t.TempDir()
	good := writeManifest(t, dir, "good.toml", goodManifest)
	bad := writeManifest(t, dir, "bad.toml", failingManifest)

	var mu sync.Mutex
	var emitted []string
	emit := func(ctx context.Context, res *Result, rep diag.Reporter) error {
		mu.Lock()
		defer mu.Unlock()
		emitted = append(emitted, res.Path)
		return nil
	}

	out, err := Run(context.Background(), []string{good, bad}, Options{Emit: emit})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(emitted) != 1 || emitted[0] != good {
		t.Fatalf("expected emit only for the clean manifest, got %v", emitted)
	}
	if out.Results[1].ChecksFailed != 1 {
		t.Fatalf("expected the failing job to skip emit")
	}
}

func TestRunEmitFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeManifest(t, dir, "good.toml", goodManifest)
	sink := &memorySink{}

	emit := func(ctx context.Context, res *Result, rep diag.Reporter) error {
		diag.ReportError(rep, diag.GenWriteFailed, diag.Subject{File: res.Path},
			"emit failed: disk full").Emit()
		return fmt.Errorf("disk full")
	}

	out, err := Run(context.Background(), []string{good}, Options{Emit: emit, Sink: sink})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.HasErrors() {
		t.Fatalf("expected the emit diagnostic to surface")
	}
	events := sink.all()
	last := events[len(events)-1]
	if last.Stage != StageEmit || last.Status != StatusError || last.Err == nil {
		t.Fatalf("expected a failing emit event, got %+v", last)
	}
}

func TestRunEmptyInput(t *testing.T) {
	out, err := Run(context.Background(), nil, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Results) != 0 || out.HasErrors() {
		t.Fatalf("expected an empty clean run")
	}
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	good := writeManifest(t, dir, "good.toml", goodManifest)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, []string{good}, Options{}); err == nil {
		t.Fatalf("expected a cancellation error")
	}
}

func TestListManifests(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "b.toml", goodManifest)
	writeManifest(t, dir, "a.toml", goodManifest)
	writeManifest(t, dir, "notes.txt", "not a manifest")
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	writeManifest(t, sub, "c.toml", goodManifest)

	got, err := ListManifests(dir)
	if err != nil {
		t.Fatalf("ListManifests: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.toml"),
		filepath.Join(dir, "b.toml"),
		filepath.Join(sub, "c.toml"),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
