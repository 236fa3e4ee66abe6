package log

import (
	"errors"
	"fmt"
	"io"
)

var (
	errWriterAlreadyLoaded = errors.New("io.Writer already loaded")
	errWriterNotFound      = errors.New("io.Writer not found")
	errWriterIsNil         = errors.New("io.Writer is nil")
)

// Add appends a new writer to the multiwriter slice
func (mw *multiWriter) Add(writer io.Writer) error {
	if writer == nil {
		return errWriterIsNil
	}
	mw.mu.Lock()
	defer mw.mu.Unlock()
	for i := range mw.writers {
		if mw.writers[i] == writer {
			return errWriterAlreadyLoaded
		}
	}
	mw.writers = append(mw.writers, writer)
	return nil
}

// Remove removes existing writer from multiwriter slice
func (mw *multiWriter) Remove(writer io.Writer) error {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	for i := range mw.writers {
		if mw.writers[i] != writer {
			continue
		}
		mw.writers[i] = mw.writers[len(mw.writers)-1]
		mw.writers[len(mw.writers)-1] = nil
		mw.writers = mw.writers[:len(mw.writers)-1]
		return nil
	}
	return errWriterNotFound
}

// Write writes p to each writer in turn and returns on the first failure
func (mw *multiWriter) Write(p []byte) (int, error) {
	mw.mu.RLock()
	defer mw.mu.RUnlock()
	for x := range mw.writers {
		n, err := mw.writers[x].Write(p)
		if err != nil {
			return n, fmt.Errorf("%T %w", mw.writers[x], err)
		}
		if n != len(p) {
			return n, fmt.Errorf("%T %w", mw.writers[x], io.ErrShortWrite)
		}
	}
	return len(p), nil
}

// MultiWriter make and return a new copy of multiWriter
func MultiWriter(writers ...io.Writer) (*multiWriter, error) {
	mw := &multiWriter{}
	for x := range writers {
		if err := mw.Add(writers[x]); err != nil {
			return nil, err
		}
	}
	return mw, nil
}
