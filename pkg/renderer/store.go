package renderer

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/nikogura/interview-roadmap/pkg/roadmap"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// FormatJSON writes indented JSON.
	FormatJSON = "json"
	// FormatYAML writes YAML.
	FormatYAML = "yaml"
)

// ErrArtifactExists is returned when the target exists and overwriting is off.
var ErrArtifactExists = errors.New("artifact already exists")

// SaveOptions controls how a roadmap is persisted.
type SaveOptions struct {
	Format    string
	Overwrite bool
	// LockDir holds the advisory lock files. Empty selects DefaultLockDir.
	LockDir string
}

// DefaultLockDir returns the per-user directory for artifact locks,
// falling back to the system temp directory.
func DefaultLockDir() (dir string) {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	dir = filepath.Join(base, "interview-roadmap", "locks")
	return dir
}

// LockPath returns the lock file guarding the artifact at path. Locks live
// outside the output directory, named after the artifact's absolute path.
func LockPath(path, lockDir string) (lockPath string, err error) {
	var abs string
	abs, err = filepath.Abs(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to resolve %s", path)
		return lockPath, err
	}
	if lockDir == "" {
		lockDir = DefaultLockDir()
	}
	name := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+abs)).String() + ".lock"
	lockPath = filepath.Join(lockDir, name)
	return lockPath, err
}

// Encode serializes a roadmap. JSON uses two-space indentation and keeps
// non-ASCII and HTML characters literal.
func Encode(rm roadmap.Roadmap, format string) (data []byte, err error) {
	switch format {
	case "", FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		err = enc.Encode(rm)
		if err != nil {
			err = errors.Wrap(err, "failed to encode roadmap as JSON")
			return data, err
		}
		data = buf.Bytes()
	case FormatYAML:
		data, err = yaml.Marshal(rm)
		if err != nil {
			err = errors.Wrap(err, "failed to encode roadmap as YAML")
			return data, err
		}
	default:
		err = errors.Errorf("unsupported format '%s'", format)
	}
	return data, err
}

// Save writes the roadmap to path. The write holds an advisory lock from
// LockPath and goes through a temp file renamed into place, so readers never
// see a partial artifact. With Overwrite unset an existing file yields
// ErrArtifactExists.
func Save(rm roadmap.Roadmap, path string, opts SaveOptions) (err error) {
	var data []byte
	data, err = Encode(rm, opts.Format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", dir)
		return err
	}

	var lockPath string
	lockPath, err = LockPath(path, opts.LockDir)
	if err != nil {
		return err
	}
	err = os.MkdirAll(filepath.Dir(lockPath), 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create lock directory: %s", filepath.Dir(lockPath))
		return err
	}

	lock := flock.New(lockPath)
	err = lock.Lock()
	if err != nil {
		err = errors.Wrapf(err, "failed to lock %s", path)
		return err
	}
	// The lock file is left in place; unlinking it would let a waiter and a
	// newcomer lock different inodes.
	defer func() {
		_ = lock.Unlock()
	}()

	if !opts.Overwrite {
		_, statErr := os.Stat(path)
		if statErr == nil {
			err = errors.Wrapf(ErrArtifactExists, "%s", path)
			return err
		}
	}

	var tmp *os.File
	tmp, err = os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		err = errors.Wrap(err, "failed to create temp file")
		return err
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Chmod(0644)
	}
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		err = errors.Wrapf(err, "failed to write roadmap: %s", path)
		return err
	}

	err = os.Rename(tmpName, path)
	if err != nil {
		_ = os.Remove(tmpName)
		err = errors.Wrapf(err, "failed to move roadmap into place: %s", path)
		return err
	}

	return err
}

// Load reads a roadmap artifact back. The format follows the file extension.
func Load(path string) (rm roadmap.Roadmap, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read roadmap: %s", path)
		return rm, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		err = yaml.Unmarshal(data, &rm)
	} else {
		err = json.Unmarshal(data, &rm)
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to parse roadmap: %s", path)
		return rm, err
	}

	return rm, err
}
