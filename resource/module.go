package resource

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
)

// Module is a container of resources, usually the files embedded into the running executable.
// Lookup errors describe why the resource is unavailable, an absent resource should wrap fs.ErrNotExist.
// Extractor reports any lookup error as ErrResourceNotFound.
type Module interface {
	Lookup(ref Ref) (View, error)
}

// View is a read-only window over a resource payload.
// Payload and length always come from the same lookup.
type View struct {
	data []byte
}

func NewView(data []byte) View {
	return View{data: data}
}

// Len returns the declared size of the resource in bytes.
func (v View) Len() int {
	return len(v.data)
}

func (v View) NewReader() *bytes.Reader {
	return bytes.NewReader(v.data)
}

func (v View) WriteTo(w io.Writer) (int64, error) {
	return v.NewReader().WriteTo(w)
}

// FSModule resolves resources from a file system laid out as <root>/<type>[/<lang>]/<name>.
type FSModule struct {
	fsys fs.FS
	root string
}

func NewFSModule(fsys fs.FS, root string) *FSModule {
	if root == "" {
		root = "."
	}
	return &FSModule{
		fsys: fsys,
		root: root,
	}
}

func (m *FSModule) Lookup(ref Ref) (View, error) {
	if !ref.IsValid() {
		return View{}, &fs.PathError{Op: "open", Path: ref.String(), Err: fs.ErrInvalid}
	}

	paths := ref.paths(m.root)
	for _, name := range paths {
		if !fs.ValidPath(name) {
			return View{}, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
		}
		info, err := fs.Stat(m.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return View{}, err
		}
		if info.IsDir() {
			continue
		}

		data, err := fs.ReadFile(m.fsys, name)
		if err != nil {
			return View{}, err
		}
		return NewView(data), nil
	}

	return View{}, &fs.PathError{Op: "open", Path: paths[0], Err: fs.ErrNotExist}
}
