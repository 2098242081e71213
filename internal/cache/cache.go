package cache

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/minio/sha256-simd"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Prefix marks files written by Cache. CheckCache only ever removes files
// that carry it.
const Prefix = "glmapviz_"

const (
	MinioDir  = "miniocache"
	OutputDir = "outputFiles"
)

type Cache struct {
	Location string
	Logger   *zap.Logger
}

// UrlToCacheFileName uses a path and query string to form a readable cached
// file name.
func UrlToCacheFileName(path, query string) string {
	replacer := strings.NewReplacer("&", "", "=", "", ".", "", "/", "", "?", "")
	return Prefix + replacer.Replace(path) + "_" + replacer.Replace(query)
}

// KeyFor hashes parts into a fixed length cache file name, for requests
// whose parameters don't make a usable file name.
func KeyFor(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return Prefix + hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) path(cacheFileName, subDir string) string {
	return filepath.Join(c.Location, subDir, cacheFileName)
}

// Get retrieves data from cacheFileName within subDir.
func (c *Cache) Get(cacheFileName, subDir string) ([]byte, error) {
	data, err := os.ReadFile(c.path(cacheFileName, subDir))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s from cache", cacheFileName)
	}
	return data, nil
}

// Open opens cacheFileName within subDir for reading.
func (c *Cache) Open(cacheFileName, subDir string) (*os.File, error) {
	file, err := os.Open(c.path(cacheFileName, subDir))
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s from cache", cacheFileName)
	}
	return file, nil
}

// Put places data into the file cacheFileName within subDir, creating subDir
// if needed.
func (c *Cache) Put(cacheFileName, subDir string, data []byte) error {
	fullPath := c.path(cacheFileName, subDir)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return errors.Wrap(err, "creating cache directory")
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return errors.Wrapf(err, "writing %s to cache", cacheFileName)
	}
	if c.Logger != nil {
		c.Logger.Debug("Stored item in cache", zap.String("file", cacheFileName), zap.Int("bytes", len(data)))
	}
	return nil
}

// Evict removes the oldest cache files in cachePath until the files there
// total no more than maxBytes. Files without Prefix count towards the total
// but are never removed. It returns the names removed.
func Evict(cachePath string, maxBytes int64, logger *zap.Logger) ([]string, error) {
	entries, err := os.ReadDir(cachePath)
	if err != nil {
		return nil, errors.Wrapf(err, "listing cache %s", cachePath)
	}

	var currentBytes int64
	var candidates []os.FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		currentBytes += info.Size()
		if strings.HasPrefix(info.Name(), Prefix) {
			candidates = append(candidates, info)
		} else {
			logger.Warn("Unexpected file in cache directory", zap.String("file", info.Name()))
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ModTime().Before(candidates[j].ModTime())
	})

	var removed []string
	for _, oldest := range candidates {
		if currentBytes <= maxBytes {
			break
		}
		logger.Info("Cache over maximum, removing old file", zap.String("file", oldest.Name()), zap.Int64("cache_bytes", currentBytes))
		if err := os.Remove(filepath.Join(cachePath, oldest.Name())); err != nil {
			logger.Error("Error removing cache file", zap.Error(err))
			continue
		}
		currentBytes -= oldest.Size()
		removed = append(removed, oldest.Name())
	}
	return removed, nil
}

// CheckCache runs Evict every checkInterval until ctx is done.
func CheckCache(ctx context.Context, cachePath string, checkInterval time.Duration, maxBytes int64, logger *zap.Logger) {
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()
	for {
		if _, err := Evict(cachePath, maxBytes, logger); err != nil {
			logger.Error("CheckCache error", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
