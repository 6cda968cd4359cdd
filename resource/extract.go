package resource

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ipfs/go-log/v2"
	"go.uber.org/multierr"
)

const DefaultFileMode os.FileMode = 0664

var logger = log.Logger("resextract/resource")

type Options struct {
	// FileMode is applied to newly created files, masked by the umask. Zero means DefaultFileMode.
	FileMode os.FileMode
	// Atomic writes into a temporary file next to the destination and renames it
	// over the destination, a partially written destination is never visible.
	Atomic bool
	// Chown passes extracted files to the sudo invoking user when running as root (linux only).
	Chown bool
}

// Extractor copies resources of a Module to files.
// It keeps no mutable state and is safe for concurrent use.
type Extractor struct {
	module Module
	opts   Options
}

func New(module Module, opts Options) *Extractor {
	if opts.FileMode == 0 {
		opts.FileMode = DefaultFileMode
	}
	return &Extractor{
		module: module,
		opts:   opts,
	}
}

// Extract copies the resource ref of module to dst with default options.
func Extract(module Module, dst string, ref Ref) error {
	return New(module, Options{}).Extract(dst, ref)
}

func (e *Extractor) Module() Module {
	return e.module
}

func (e *Extractor) Options() Options {
	return e.opts
}

// Extract writes the payload of ref to dst, creating the file or replacing its content.
// The parent directory of dst must exist. On success dst holds exactly the resource bytes.
// On failure a partially written dst is removed and the returned *ExtractError
// matches one of ErrResourceNotFound, ErrDestinationUnavailable or ErrIncompleteWrite.
func (e *Extractor) Extract(dst string, ref Ref) error {
	view, err := e.lookup(dst, ref)
	if err != nil {
		return err
	}

	return e.write(dst, ref, view)
}

// ExtractIfChanged works like Extract but leaves dst alone when it already holds the payload.
// It reports whether the file was written.
func (e *Extractor) ExtractIfChanged(dst string, ref Ref) (bool, error) {
	view, err := e.lookup(dst, ref)
	if err != nil {
		return false, err
	}

	equal, err := isFileEqual(dst, view)
	if err != nil {
		logger.Warnf("compare %s with %s: %v", dst, ref, err)
	}
	if equal {
		logger.Debugf("%s is up to date with %s", dst, ref)
		return false, nil
	}

	err = e.write(dst, ref, view)
	if err != nil {
		return false, err
	}

	return true, nil
}

func (e *Extractor) lookup(dst string, ref Ref) (View, error) {
	view, err := e.module.Lookup(ref)
	if err != nil {
		return View{}, newError(ErrResourceNotFound, "lookup", ref, dst, err)
	}

	return view, nil
}

func (e *Extractor) write(dst string, ref Ref, view View) error {
	if e.opts.Atomic {
		return e.writeAtomic(dst, ref, view)
	}

	file, err := openExclusive(dst, e.opts.FileMode)
	if err != nil {
		return newError(ErrDestinationUnavailable, "open", ref, dst, err)
	}
	err = writeView(file, view, false)
	if err != nil {
		return newError(ErrIncompleteWrite, "write", ref, dst, removePartial(dst, err))
	}

	e.finish(dst, ref, view)
	return nil
}

func (e *Extractor) writeAtomic(dst string, ref Ref, view View) error {
	tmp, err := createTemp(dst, e.opts.FileMode)
	if err != nil {
		return newError(ErrDestinationUnavailable, "create temp", ref, dst, err)
	}
	tmpPath := tmp.Name()

	err = writeView(tmp, view, true)
	if err != nil {
		return newError(ErrIncompleteWrite, "write temp", ref, dst, removePartial(tmpPath, err))
	}
	err = os.Rename(tmpPath, dst)
	if err != nil {
		return newError(ErrDestinationUnavailable, "rename", ref, dst, removePartial(tmpPath, err))
	}

	e.finish(dst, ref, view)
	return nil
}

const createTempAttempts = 100

// createTemp creates a hidden temporary file next to dst. The file is created with mode
// so the process umask applies to it exactly as to files written in place.
func createTemp(dst string, mode os.FileMode) (*os.File, error) {
	dir, base := filepath.Dir(dst), filepath.Base(dst)
	var err error
	for i := 0; i < createTempAttempts; i++ {
		name := filepath.Join(dir, "."+base+"."+strconv.FormatUint(uint64(rand.Uint32()), 10)+".tmp")
		var file *os.File
		file, err = os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, mode)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		return file, err
	}

	return nil, fmt.Errorf("create temp file for %s: %w", dst, err)
}

func (e *Extractor) finish(dst string, ref Ref, view View) {
	if e.opts.Chown {
		if err := chownToInvokingUser(dst); err != nil {
			logger.Warnf("chown %s: %v", dst, err)
		}
	}
	logger.Debugf("extracted %s to %s (%d bytes)", ref, dst, view.Len())
}

// writeView copies the whole view and closes file.
func writeView(file *os.File, view View, sync bool) (err error) {
	defer func() {
		err = multierr.Append(err, file.Close())
	}()

	n, err := view.WriteTo(file)
	if err != nil {
		return err
	}
	if n != int64(view.Len()) {
		return fmt.Errorf("wrote %d of %d bytes: %w", n, view.Len(), io.ErrShortWrite)
	}
	if sync {
		return file.Sync()
	}

	return nil
}

func removePartial(path string, cause error) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return multierr.Append(cause, fmt.Errorf("remove partial file: %w", err))
	}
	return cause
}
