package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/sukechannnn/gitsnap/util"
	"go.uber.org/zap"
)

// FileSnapshot is the committed (HEAD) and on-disk content of one file.
type FileSnapshot struct {
	Original        string `json:"original"`
	Current         string `json:"current"`
	ExistsAtHead    bool   `json:"existsAtHead"`
	ExistsInWorkdir bool   `json:"existsInWorkdir"`
}

type SnapshotStatus string

const (
	StatusAdded     SnapshotStatus = "added"
	StatusDeleted   SnapshotStatus = "deleted"
	StatusModified  SnapshotStatus = "modified"
	StatusUnchanged SnapshotStatus = "unchanged"
	StatusAbsent    SnapshotStatus = "absent"
)

// Status classifies the snapshot from its flags and a plain text comparison.
func (s *FileSnapshot) Status() SnapshotStatus {
	switch {
	case s.ExistsAtHead && s.ExistsInWorkdir:
		if s.Original == s.Current {
			return StatusUnchanged
		}
		return StatusModified
	case s.ExistsAtHead:
		return StatusDeleted
	case s.ExistsInWorkdir:
		return StatusAdded
	default:
		return StatusAbsent
	}
}

// Resolver builds FileSnapshots. It keeps no state between calls and is
// safe for concurrent use; every call opens and closes its own repository.
type Resolver struct {
	store  RepositoryStore
	fs     billy.Basic
	logger *zap.Logger
}

type Option func(*Resolver)

func WithStore(store RepositoryStore) Option {
	return func(r *Resolver) {
		r.store = store
	}
}

// WithFilesystem sets the filesystem the working directory side is read
// from. Paths passed to it are absolute.
func WithFilesystem(fs billy.Basic) Option {
	return func(r *Resolver) {
		r.fs = fs
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		store:  NewGoGitStore(),
		fs:     osfs.New("/"),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver = NewResolver()

// ResolveFileSnapshot resolves filePath with the default resolver.
func ResolveFileSnapshot(projectPath, filePath string) (*FileSnapshot, error) {
	return defaultResolver.Resolve(projectPath, filePath)
}

// Resolve returns the HEAD and working directory content of filePath.
// filePath is absolute or relative to projectPath. The repository is the
// one enclosing the file when the file exists on disk, otherwise the one at
// projectPath.
func (r *Resolver) Resolve(projectPath, filePath string) (*FileSnapshot, error) {
	actualFilePath := absoluteFilePath(projectPath, filePath)

	// 存在確認は一度だけ行い、リポジトリ探索と読み込みの両方で使う
	_, statErr := r.fs.Stat(actualFilePath)
	if errors.Is(statErr, syscall.ENOTDIR) {
		statErr = os.ErrNotExist
	}
	onDisk := statErr == nil

	repo, relPath, err := r.openRepository(projectPath, filePath, actualFilePath, onDisk)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	commit, err := repo.Head()
	if err != nil {
		return nil, newError(KindHeadResolution, "failed to resolve HEAD in", repo.Workdir(), err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, newError(KindTreeAccess, "failed to get HEAD tree in", repo.Workdir(), err)
	}

	snapshot := &FileSnapshot{}

	if filepath.IsAbs(relPath) {
		// 作業ツリーの外にある絶対パスは HEAD に存在しないものとして扱う
		r.logger.Debug("file is outside the working directory",
			zap.String("workdir", repo.Workdir()),
			zap.String("file", relPath))
	} else {
		lookupPath, err := treePath(relPath)
		if err != nil {
			return nil, newError(KindInvalidPath, "invalid path", relPath, err)
		}

		snapshot.Original, snapshot.ExistsAtHead, err = r.readHead(tree, lookupPath)
		if err != nil {
			return nil, err
		}
	}

	snapshot.Current, snapshot.ExistsInWorkdir, err = r.readWorkdir(actualFilePath, statErr)
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// openRepository picks the repository and the repository relative path.
// The discovered repository wins when the file is on disk; otherwise, or
// when discovery finds nothing, the repository at projectPath is opened.
func (r *Resolver) openRepository(projectPath, filePath, actualFilePath string, onDisk bool) (Repository, string, error) {
	if onDisk {
		repo, err := r.store.Discover(filepath.Dir(actualFilePath))
		if err == nil {
			rel, ok := stripWorkdir(repo.Workdir(), actualFilePath)
			if !ok {
				rel = filePath
			}
			r.logger.Debug("discovered repository from file",
				zap.String("workdir", repo.Workdir()),
				zap.String("path", rel))
			return repo, rel, nil
		}
		r.logger.Debug("no repository above file, falling back to project",
			zap.String("file", actualFilePath),
			zap.Error(err))
	}

	repo, err := r.store.Open(projectPath)
	if err != nil {
		return nil, "", newError(KindRepositoryResolution, "failed to open repository", projectPath, err)
	}

	rel := filePath
	if filepath.IsAbs(filePath) {
		// 絶対パスはリポジトリの作業ツリーからの相対パスに直す
		if stripped, ok := stripWorkdir(repo.Workdir(), actualFilePath); ok {
			rel = stripped
		}
	}
	r.logger.Debug("opened project repository",
		zap.String("workdir", repo.Workdir()),
		zap.String("path", rel))

	return repo, rel, nil
}

// readHead returns the decoded blob at path. A path without an entry is
// reported as absent; any other lookup failure is an error.
func (r *Resolver) readHead(tree Tree, path string) (string, bool, error) {
	entry, err := tree.Entry(path)
	if errors.Is(err, ErrEntryNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, newError(KindTreeAccess, "failed to look up", path, err)
	}

	if entry.Kind != EntryBlob && entry.Kind != EntrySymlink {
		return "", false, newError(KindObjectRead, "unexpected entry type at", path, fmt.Errorf("%s is not a blob", entry.Kind))
	}

	content, err := tree.Contents(entry)
	if err != nil {
		return "", false, newError(KindObjectRead, "failed to read blob", path, err)
	}

	return util.DecodeText(content), true, nil
}

func (r *Resolver) readWorkdir(path string, statErr error) (string, bool, error) {
	if statErr != nil {
		if errors.Is(statErr, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, newError(KindWorkdirRead, "failed to stat current file", path, statErr)
	}

	// stat と読み込みの間に削除された場合もエラーとして扱う
	content, err := util.ReadFileContent(r.fs, path)
	if err != nil {
		return "", false, newError(KindWorkdirRead, "failed to read current file", path, err)
	}

	return content, true, nil
}
