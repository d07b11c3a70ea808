package models

// PathEntry is the metadata record parsed from shell output for one path.
// Size is meaningful only for files and directories.
type PathEntry struct {
	Name   string
	Type   PathType
	Size   int64
	IsLink bool
}

// NotFoundEntry returns the sentinel entry used for absent (or unparseable) paths.
func NotFoundEntry(name string) PathEntry {
	return PathEntry{Name: name, Type: NotFound, Size: 0}
}

func (e PathEntry) Exists() bool {
	return e.Type != NotFound
}

func (e PathEntry) IsNotFound() bool {
	return e.Type == NotFound
}

func (e PathEntry) IsDir() bool {
	return e.Type == Directory
}

func (e PathEntry) IsFile() bool {
	return e.Type == File
}

func (e PathEntry) IsSymlink() bool {
	return e.Type == Symlink
}
