// Package resultcache implements the append-only job result store.
package resultcache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/zerr"
)

// timestampLayout sorts lexically in write order.
const timestampLayout = "20060102T150405.000000000Z"

const entryExt = ".entry"

// Store implements ports.ResultCache with one directory per job id.
// Every Store call writes a new file, so racing writers of the same job both
// succeed and leave content-equal entries behind.
type Store struct {
	root  string
	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for entry names.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a result store below the given cache root.
func NewStore(cacheRoot string, opts ...Option) (*Store, error) {
	root := domain.ResultsPath(filepath.Clean(cacheRoot))
	if err := os.MkdirAll(root, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheCreateFailed, err.Error()), "path", root)
	}

	s := &Store{
		root:  root,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// header is the first line of an entry. The payload follows it verbatim, so the
// checksum covers exactly the bytes Load returns.
type header struct {
	JobID     string    `json:"job_id"`
	WrittenAt time.Time `json:"written_at"`
	Checksum  string    `json:"checksum"`
	Size      int       `json:"size"`
}

func checksum(payload []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(payload))
}

func (s *Store) jobDir(jobID string) string {
	return filepath.Join(s.root, jobID)
}

// Load returns the newest entry of the job whose checksum verifies.
// Damaged entries are skipped. When only damaged entries exist the error
// matches domain.ErrCacheEntryCorrupt.
func (s *Store) Load(jobID string) ([]byte, bool, error) {
	if err := domain.ValidateJobID(jobID); err != nil {
		return nil, false, err
	}

	names, err := s.entryNames(jobID)
	if err != nil {
		return nil, false, err
	}

	var lastErr error
	for i := len(names) - 1; i >= 0; i-- {
		payload, err := s.readEntry(jobID, names[i])
		if err != nil {
			lastErr = err
			continue
		}
		return payload, true, nil
	}
	return nil, false, lastErr
}

func (s *Store) entryNames(jobID string) ([]string, error) {
	entries, err := os.ReadDir(s.jobDir(jobID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheReadFailed, err.Error()), "job_id", jobID)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != entryExt || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) readEntry(jobID, name string) ([]byte, error) {
	path := filepath.Join(s.jobDir(jobID), name)
	//nolint:gosec // Path is built from a validated job id and a listed file name
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheReadFailed, err.Error()), "path", path)
	}

	line, payload, ok := bytes.Cut(data, []byte{'\n'})
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheEntryCorrupt, "entry has no header"), "path", path)
	}
	var hdr header
	if err := json.Unmarshal(line, &hdr); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheEntryCorrupt, "entry header is not valid JSON"), "path", path)
	}
	if hdr.JobID != jobID || hdr.Size != len(payload) || hdr.Checksum != checksum(payload) {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheEntryCorrupt, "checksum does not verify"), "path", path)
	}
	return payload, nil
}

// Store appends the payload as a new entry when the job reports a result.
func (s *Store) Store(job *domain.JobInfo, payload []byte) (bool, error) {
	if !job.HasResult() {
		return false, nil
	}
	if err := domain.ValidateJobID(job.ID); err != nil {
		return false, err
	}
	if !json.Valid(payload) {
		return false, zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, "payload is not valid JSON"), "job_id", job.ID)
	}

	writtenAt := s.now().UTC()
	line, err := json.Marshal(header{
		JobID:     job.ID,
		WrittenAt: writtenAt,
		Checksum:  checksum(payload),
		Size:      len(payload),
	})
	if err != nil {
		return false, zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "job_id", job.ID)
	}
	data := make([]byte, 0, len(line)+1+len(payload))
	data = append(data, line...)
	data = append(data, '\n')
	data = append(data, payload...)

	name := writtenAt.Format(timestampLayout) + "-" + s.newID() + entryExt
	if err := atomicWriteFile(filepath.Join(s.jobDir(job.ID), name), data); err != nil {
		return false, zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "job_id", job.ID)
	}
	return true, nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".entry-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// List enumerates all entries, grouped by job id and ordered by write time.
func (s *Store) List() ([]domain.CacheEntry, error) {
	jobs, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheReadFailed, err.Error()), "path", s.root)
	}

	var out []domain.CacheEntry
	for _, job := range jobs {
		if !job.IsDir() {
			continue
		}
		names, err := s.entryNames(job.Name())
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			entry := domain.CacheEntry{JobID: job.Name(), Name: name}
			info, err := os.Stat(filepath.Join(s.jobDir(job.Name()), name))
			if err != nil {
				return nil, zerr.With(zerr.Wrap(domain.ErrCacheReadFailed, err.Error()), "job_id", job.Name())
			}
			entry.Size = info.Size()
			entry.WrittenAt = parseWrittenAt(name, info.ModTime())
			out = append(out, entry)
		}
	}
	return out, nil
}

// parseWrittenAt recovers the write time from an entry name, falling back to the file time.
func parseWrittenAt(name string, fallback time.Time) time.Time {
	if len(name) >= len(timestampLayout) {
		if t, err := time.Parse(timestampLayout, name[:len(timestampLayout)]); err == nil {
			return t
		}
	}
	return fallback.UTC()
}

// Prune deletes the entries the policy selects and returns them.
// Job directories left empty are removed as well.
func (s *Store) Prune(policy domain.EvictionPolicy) ([]domain.CacheEntry, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}

	evicted := policy.Evict(entries, s.now())
	touched := make(map[string]struct{})
	for i, e := range evicted {
		path := filepath.Join(s.jobDir(e.JobID), e.Name)
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			pruneErr := zerr.With(zerr.Wrap(domain.ErrCachePruneFailed, err.Error()), "path", path)
			return evicted[:i], pruneErr
		}
		touched[e.JobID] = struct{}{}
	}

	for jobID := range touched {
		// Fails while entries remain, which is fine.
		_ = os.Remove(s.jobDir(jobID))
	}
	return evicted, nil
}
