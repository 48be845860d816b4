package action

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/RomanHargrave/lyrebird/pkg/errclass"
	"github.com/RomanHargrave/lyrebird/pkg/logging"
	"github.com/RomanHargrave/lyrebird/pkg/model"
	"github.com/RomanHargrave/lyrebird/pkg/pathutil"
)

// CreateFile creates a new file at path holding content and records it.
// The file must not already exist. An empty path creates a uniquely named
// file in the temporary directory. It returns the absolute path created.
func CreateFile(ctx context.Context, rec Recorder, path, content string) (string, error) {
	if path == "" {
		path = filepath.Join(os.TempDir(), "lyrebird-"+uuid.NewString()+".txt")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", errclass.ErrActionFailed.Wrap("create file", err)
	}
	_, werr := f.WriteString(content)
	cerr := f.Close()
	if werr != nil {
		return "", errclass.ErrActionFailed.Wrap(fmt.Sprintf("write %s", path), werr)
	}
	if cerr != nil {
		return "", errclass.ErrActionFailed.Wrap(fmt.Sprintf("close %s", path), cerr)
	}

	abs, err := pathutil.Canonical(path)
	if err != nil {
		return "", errclass.ErrActionFailed.Wrap("canonicalize", err)
	}

	logging.Debug("file created", map[string]any{"file": abs})
	return abs, rec.Record(model.FileAction{Action: model.FileCreate, File: abs})
}

// ModifyFile appends content to the existing file at path and records it.
func ModifyFile(ctx context.Context, rec Recorder, path, content string) (string, error) {
	abs, err := pathutil.Canonical(path)
	if err != nil {
		return "", errclass.ErrActionFailed.Wrap("canonicalize", err)
	}

	f, err := os.OpenFile(abs, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return "", errclass.ErrActionFailed.Wrap("open file", err)
	}
	_, werr := f.WriteString(content)
	cerr := f.Close()
	if werr != nil {
		return "", errclass.ErrActionFailed.Wrap(fmt.Sprintf("append to %s", abs), werr)
	}
	if cerr != nil {
		return "", errclass.ErrActionFailed.Wrap(fmt.Sprintf("close %s", abs), cerr)
	}

	logging.Debug("file modified", map[string]any{"file": abs, "bytes": len(content)})
	return abs, rec.Record(model.FileAction{Action: model.FileModify, File: abs})
}

// DeleteFile removes the file at path and records it.
func DeleteFile(ctx context.Context, rec Recorder, path string) (string, error) {
	abs, err := pathutil.Canonical(path)
	if err != nil {
		return "", errclass.ErrActionFailed.Wrap("canonicalize", err)
	}

	if err := os.Remove(abs); err != nil {
		return "", errclass.ErrActionFailed.Wrap("delete file", err)
	}

	logging.Debug("file deleted", map[string]any{"file": abs})
	return abs, rec.Record(model.FileAction{Action: model.FileDelete, File: abs})
}
