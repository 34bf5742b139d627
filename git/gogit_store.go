package git

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// maxTagDepth bounds tag peeling so a malformed tag cycle cannot loop forever.
const maxTagDepth = 16

// GoGitStore opens repositories from disk with go-git.
type GoGitStore struct{}

func NewGoGitStore() *GoGitStore {
	return &GoGitStore{}
}

func (s *GoGitStore) Discover(path string) (Repository, error) {
	return s.open(path, true)
}

func (s *GoGitStore) Open(path string) (Repository, error) {
	return s.open(path, false)
}

func (s *GoGitStore) open(path string, detect bool) (Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          detect,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%w at %s", ErrRepositoryNotFound, path)
	}
	if err != nil {
		return nil, err
	}

	r := &goGitRepository{repo: repo}

	// 作業ツリーを持たない bare リポジトリは対象外
	wt, err := repo.Worktree()
	if err != nil {
		r.Close()
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil, fmt.Errorf("repository has no working directory: %w", err)
		}
		return nil, err
	}
	r.workdir = wt.Filesystem.Root()

	return r, nil
}

type goGitRepository struct {
	repo    *git.Repository
	workdir string
}

func (r *goGitRepository) Workdir() string {
	return r.workdir
}

func (r *goGitRepository) Head() (Commit, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return nil, err
	}

	obj, err := r.repo.Object(plumbing.AnyObject, ref.Hash())
	if err != nil {
		return nil, err
	}

	// タグがタグを指している場合もコミットに辿り着くまで剥がす
	for depth := 0; depth < maxTagDepth; depth++ {
		switch o := obj.(type) {
		case *object.Commit:
			return &goGitCommit{repo: r.repo, commit: o}, nil
		case *object.Tag:
			obj, err = r.repo.Object(plumbing.AnyObject, o.Target)
			if err != nil {
				return nil, fmt.Errorf("failed to peel tag %s: %w", o.Name, err)
			}
		default:
			return nil, fmt.Errorf("HEAD points at a %s, not a commit", obj.Type())
		}
	}
	return nil, fmt.Errorf("HEAD tag chain is deeper than %d", maxTagDepth)
}

func (r *goGitRepository) Close() error {
	if c, ok := r.repo.Storer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type goGitCommit struct {
	repo   *git.Repository
	commit *object.Commit
}

func (c *goGitCommit) Tree() (Tree, error) {
	tree, err := c.commit.Tree()
	if err != nil {
		return nil, err
	}
	return &goGitTree{repo: c.repo, root: tree}, nil
}

type goGitTree struct {
	repo *git.Repository
	root *object.Tree
}

// Entry walks the tree one path component at a time. A missing component,
// or an intermediate component that is not a directory, means the path has
// no entry.
func (t *goGitTree) Entry(path string) (*TreeEntry, error) {
	parts := strings.Split(path, "/")
	tree := t.root

	for i, name := range parts {
		entry := findEntry(tree, name)
		if entry == nil {
			return nil, ErrEntryNotFound
		}

		if i == len(parts)-1 {
			return &TreeEntry{
				Path: path,
				Hash: entry.Hash.String(),
				Kind: entryKind(entry.Mode),
			}, nil
		}

		if entry.Mode != filemode.Dir {
			return nil, ErrEntryNotFound
		}

		sub, err := t.repo.TreeObject(entry.Hash)
		if err != nil {
			return nil, fmt.Errorf("failed to read tree %s: %w", strings.Join(parts[:i+1], "/"), err)
		}
		tree = sub
	}

	return nil, ErrEntryNotFound
}

func (t *goGitTree) Contents(entry *TreeEntry) ([]byte, error) {
	if entry.Kind != EntryBlob && entry.Kind != EntrySymlink {
		return nil, fmt.Errorf("entry %s is a %s, not a blob", entry.Path, entry.Kind)
	}

	blob, err := t.repo.BlobObject(plumbing.NewHash(entry.Hash))
	if err != nil {
		return nil, err
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

func findEntry(tree *object.Tree, name string) *object.TreeEntry {
	for i := range tree.Entries {
		if tree.Entries[i].Name == name {
			return &tree.Entries[i]
		}
	}
	return nil
}

func entryKind(mode filemode.FileMode) EntryKind {
	switch mode {
	case filemode.Dir:
		return EntryTree
	case filemode.Submodule:
		return EntrySubmodule
	case filemode.Symlink:
		return EntrySymlink
	default:
		return EntryBlob
	}
}
