package resource

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// isFileEqual reports whether the file at path holds exactly the bytes of view.
// A missing file is not an error.
func isFileEqual(path string, view View) (bool, error) {
	stat, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	} else if !stat.Mode().IsRegular() || stat.Size() != int64(view.Len()) {
		return false, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Warnf("close %s after compare: %v", path, err)
		}
	}()

	return streamsEqual(view.NewReader(), bufio.NewReader(file))
}

func streamsEqual(s1 io.Reader, s2 io.Reader) (bool, error) {
	const chunkSize = 4096
	buf1 := make([]byte, chunkSize)
	buf2 := make([]byte, chunkSize)
	for {
		len1, err1 := io.ReadFull(s1, buf1)
		len2, err2 := io.ReadFull(s2, buf2)
		if !isEndOrNil(err1) || !isEndOrNil(err2) {
			return false, fmt.Errorf("compare streams reading err: source1 err: %v; source2 err: %v", err1, err2)
		}
		if !bytes.Equal(buf1[:len1], buf2[:len2]) {
			return false, nil
		}
		// equal short reads mean both streams ended at the same offset
		if err1 != nil || err2 != nil {
			return true, nil
		}
	}
}

func isEndOrNil(err error) bool {
	return err == nil || err == io.EOF || err == io.ErrUnexpectedEOF
}
