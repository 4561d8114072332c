package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"astrolabe/internal/config"
	"astrolabe/internal/parser"
	"astrolabe/internal/store"
)

// Store is the part of store.Store that ingestion writes through.
type Store interface {
	EnsureSchema(ctx context.Context) error
	UpsertProfile(ctx context.Context, p store.ProfileInput) error
	RemoveStaleProfiles(ctx context.Context, currentSourceFiles []string) (int64, error)
	GetSourceHashes(ctx context.Context) (map[string]string, error)
}

type Result struct {
	ProfilesUpserted int
	ProfilesRemoved  int
	FilesSkipped     int
	Errors           []error
}

type Options struct {
	Full bool
}

func Run(ctx context.Context, cfg *config.ProjectConfig, db Store, options Options) (*Result, error) {
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	var existingHashes map[string]string
	if !options.Full {
		var err error
		existingHashes, err = db.GetSourceHashes(ctx)
		if err != nil {
			return nil, fmt.Errorf("get source hashes: %w", err)
		}
	}

	roots := make([]string, 0, len(cfg.Profiles.Paths))
	for _, path := range cfg.Profiles.Paths {
		roots = append(roots, cfg.Resolve(path))
	}
	excludes := make([]string, 0, len(cfg.Profiles.Exclude))
	for _, path := range cfg.Profiles.Exclude {
		excludes = append(excludes, cfg.Resolve(path))
	}

	files, err := walkMarkdownFiles(roots, excludes)
	if err != nil {
		return nil, fmt.Errorf("walking profile files: %w", err)
	}

	result := &Result{}
	for _, path := range files {
		hash, err := computeHash(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("hashing %s: %w", path, err))
			continue
		}
		if !options.Full {
			if existing, ok := existingHashes[path]; ok && existing == hash {
				result.FilesSkipped++
				continue
			}
		}

		doc, err := parser.ParseFile(path)
		if err != nil {
			if errors.Is(err, parser.ErrNoFrontmatter) {
				result.FilesSkipped++
				continue
			}
			result.Errors = append(result.Errors, fmt.Errorf("parsing %s: %w", path, err))
			continue
		}

		input := store.ProfileInput{
			Name:       doc.Title,
			Born:       doc.Born,
			Location:   doc.Location,
			Tags:       doc.Tags,
			Notes:      strings.TrimSpace(doc.Body),
			SourceFile: path,
			SourceHash: hash,
		}
		if err := db.UpsertProfile(ctx, input); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("upserting %s: %w", path, err))
			continue
		}
		result.ProfilesUpserted++
	}

	deleted, err := db.RemoveStaleProfiles(ctx, files)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("removing stale profiles: %w", err))
	}
	result.ProfilesRemoved = int(deleted)

	return result, nil
}

func walkMarkdownFiles(roots []string, excludes []string) ([]string, error) {
	excluded := make([]string, 0, len(excludes))
	for _, path := range excludes {
		if path == "" {
			continue
		}
		excluded = append(excluded, filepath.Clean(path))
	}

	var files []string
	for _, root := range roots {
		if root == "" {
			continue
		}
		root = filepath.Clean(root)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && isExcluded(path, excluded) {
				return filepath.SkipDir
			}
			if d.IsDir() {
				return nil
			}
			if !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
				return nil
			}
			if isExcluded(path, excluded) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func isExcluded(path string, excludes []string) bool {
	clean := filepath.Clean(path)
	for _, exclude := range excludes {
		if exclude == clean || strings.HasPrefix(clean, exclude+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

func computeHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
