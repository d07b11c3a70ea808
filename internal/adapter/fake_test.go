package adapter

import (
	"context"
	"strings"

	"github.com/Cyclone1070/shellfs/internal/dialect"
	"github.com/Cyclone1070/shellfs/internal/models"
)

// fakeOps is an in-memory fileOps keyed by full path.
type fakeOps struct {
	entries  map[string]models.PathEntry
	children map[string][]string
	calls    []string
	listed   []string
}

func newFakeOps() *fakeOps {
	return &fakeOps{entries: map[string]models.PathEntry{}, children: map[string][]string{}}
}

func (f *fakeOps) add(path string, t models.PathType, size int64) *fakeOps {
	d := dialect.Unix()
	f.entries[path] = models.PathEntry{Name: d.Base(path), Type: t, Size: size, IsLink: t == models.Symlink}
	if parent := d.Parent(path); parent != path {
		if _, ok := f.entries[parent]; ok {
			f.children[parent] = append(f.children[parent], d.Base(path))
		}
	}
	return f
}

// sampleTree:
//
//	/r/a.txt
//	/r/sub/b.log
//	/r/sub/deep/c.txt
//	/r/link -> elsewhere
//	/r/node_modules/x.js
func sampleTree() *fakeOps {
	return newFakeOps().
		add("/r", models.Directory, 96).
		add("/r/a.txt", models.File, 10).
		add("/r/sub", models.Directory, 64).
		add("/r/sub/b.log", models.File, 20).
		add("/r/sub/deep", models.Directory, 64).
		add("/r/sub/deep/c.txt", models.File, 30).
		add("/r/link", models.Symlink, 9).
		add("/r/node_modules", models.Directory, 64).
		add("/r/node_modules/x.js", models.File, 40)
}

func trimDir(path string) string {
	if len(path) > 1 {
		return strings.TrimRight(path, "/")
	}
	return path
}

func (f *fakeOps) Info(_ context.Context, path string) (models.PathEntry, error) {
	if e, ok := f.entries[trimDir(path)]; ok {
		e.Name = path
		return e, nil
	}
	return models.NotFoundEntry(path), nil
}

func (f *fakeOps) ListDir(_ context.Context, path string) ([]models.PathEntry, error) {
	f.listed = append(f.listed, path)
	dir := trimDir(path)
	e, ok := f.entries[dir]
	if !ok {
		return []models.PathEntry{}, nil
	}
	if !e.IsDir() {
		return []models.PathEntry{e}, nil
	}
	out := []models.PathEntry{
		{Name: ".", Type: models.Directory},
		{Name: "..", Type: models.Directory},
	}
	for _, name := range f.children[dir] {
		out = append(out, f.entries[dir+"/"+name])
	}
	return out, nil
}

func (f *fakeOps) record(op, path string) error {
	f.calls = append(f.calls, op+" "+path)
	return nil
}

func (f *fakeOps) Mkdir(_ context.Context, path string) error    { return f.record("mkdir", path) }
func (f *fakeOps) MakeDirs(_ context.Context, path string) error { return f.record("makedirs", path) }
func (f *fakeOps) Touch(_ context.Context, path string) error    { return f.record("touch", path) }
func (f *fakeOps) Remove(_ context.Context, path string) error   { return f.record("remove", path) }
func (f *fakeOps) RemoveTree(_ context.Context, path string) error {
	return f.record("rmtree", path)
}
func (f *fakeOps) CopyFile(_ context.Context, src, dst string) error {
	return f.record("copy", src+" "+dst)
}
func (f *fakeOps) Dialect() *dialect.Dialect { return dialect.Unix() }
