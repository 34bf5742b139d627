package git

import (
	"errors"
)

var (
	// ErrRepositoryNotFound is returned by a RepositoryStore when no
	// repository exists at (or, for Discover, above) the given path.
	ErrRepositoryNotFound = errors.New("repository not found")
	// ErrEntryNotFound is returned by Tree.Entry when the path has no entry.
	ErrEntryNotFound = errors.New("entry not found")
)

// EntryKind is the object type a tree entry points at.
type EntryKind string

const (
	EntryBlob      EntryKind = "blob"
	EntryTree      EntryKind = "tree"
	EntrySubmodule EntryKind = "submodule"
	EntrySymlink   EntryKind = "symlink"
)

// TreeEntry is one path of a commit tree.
type TreeEntry struct {
	Path string
	Hash string
	Kind EntryKind
}

// RepositoryStore locates repositories on disk.
type RepositoryStore interface {
	// Discover walks upward from path to the nearest enclosing repository.
	Discover(path string) (Repository, error)
	// Open opens the repository rooted exactly at path.
	Open(path string) (Repository, error)
}

// Repository is the read-only view of a repository used to build a snapshot.
// A Repository is owned by one caller and released with Close.
type Repository interface {
	// Workdir is the absolute root of the working directory.
	Workdir() string
	Head() (Commit, error)
	Close() error
}

type Commit interface {
	Tree() (Tree, error)
}

type Tree interface {
	// Entry looks up a slash separated path relative to the tree root and
	// returns ErrEntryNotFound when no such entry exists.
	Entry(path string) (*TreeEntry, error)
	// Contents returns the raw bytes of a blob or symlink entry.
	Contents(entry *TreeEntry) ([]byte, error)
}
