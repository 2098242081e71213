// Package datasource reads join data rows from the configured locations.
package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/spectriclabs/glmapviz/internal/cache"
	"github.com/spectriclabs/glmapviz/internal/config"
	"github.com/spectriclabs/glmapviz/internal/layer"
)

const (
	LocalFile = "localFile"
	Minio     = "minio"
)

type File struct {
	Filename string `json:"filename"`
	Type     string `json:"type"`
}

// localPath joins fileName under root without letting it climb out.
func localPath(root, fileName string) string {
	return filepath.Join(root, filepath.Clean("/"+fileName))
}

// Open returns a reader for fileName within the location called
// locationName. Minio objects are kept in the cache's miniocache directory
// when cfg.UseCache is set.
func Open(
	ctx context.Context,
	cfg *config.Config,
	fileCache *cache.Cache,
	logger *zap.Logger,
	locationName string,
	fileName string,
) (io.ReadCloser, error) {
	currentLocation, err := cfg.FindLocation(locationName)
	if err != nil {
		return nil, err
	}

	switch currentLocation.LocationType {
	case LocalFile:
		fullFilepath := localPath(currentLocation.Path, fileName)
		logger.Info(
			"Reading local file",
			zap.String("location_name", locationName),
			zap.String("filename", fileName),
			zap.String("path", fullFilepath),
		)
		file, err := os.Open(fullFilepath)
		if err != nil {
			return nil, errors.Wrap(err, "opening local file")
		}
		return file, nil
	case Minio:
		objectPath := filepath.ToSlash(filepath.Join(currentLocation.Path, fileName))
		cacheFileName := cache.UrlToCacheFileName(currentLocation.MinioBucket+"/"+objectPath, "")
		if cfg.UseCache {
			if file, err := fileCache.Open(cacheFileName, cache.MinioDir); err == nil {
				logger.Debug("Minio object found in cache", zap.String("object", objectPath))
				return file, nil
			}
		}

		logger.Info("Minio object not in cache, fetching", zap.String("bucket", currentLocation.MinioBucket), zap.String("object", objectPath))
		data, err := fetchMinio(ctx, currentLocation, objectPath, logger)
		if err != nil {
			return nil, err
		}
		if cfg.UseCache {
			if err := fileCache.Put(cacheFileName, cache.MinioDir, data); err != nil {
				logger.Warn("Error caching minio object", zap.Error(err))
			}
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	default:
		return nil, fmt.Errorf("unsupported location type %s in %s", currentLocation.LocationType, currentLocation.LocationName)
	}
}

func fetchMinio(ctx context.Context, location config.Location, objectPath string, logger *zap.Logger) ([]byte, error) {
	start := time.Now()
	minioClient, err := minio.New(
		location.Location,
		&minio.Options{
			Creds:  credentials.NewStaticV4(location.MinioAccessKey, location.MinioSecretKey, ""),
			Secure: location.MinioSecure,
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "establishing connection to minio")
	}

	object, err := minioClient.GetObject(ctx, location.MinioBucket, objectPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "getting minio object")
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s from minio", objectPath)
	}
	logger.Info("Fetched minio object", zap.String("object", objectPath), zap.Int("bytes", len(data)), zap.Duration("elapsed", time.Since(start)))
	return data, nil
}

// List returns the entries of dir within a localFile location.
func List(cfg *config.Config, locationName, dir string) ([]File, error) {
	currentLocation, err := cfg.FindLocation(locationName)
	if err != nil {
		return nil, err
	}
	if currentLocation.LocationType != LocalFile {
		return nil, fmt.Errorf("listing files only supported for localFile location types: %s provided", currentLocation.LocationType)
	}

	entries, err := os.ReadDir(localPath(currentLocation.Path, dir))
	if err != nil {
		return nil, errors.Wrap(err, "listing directory")
	}
	files := make([]File, len(entries))
	for i, entry := range entries {
		files[i].Filename = entry.Name()
		if entry.IsDir() {
			files[i].Type = "directory"
		} else {
			files[i].Type = "file"
		}
	}
	return files, nil
}

type featureCollection struct {
	Type     string `json:"type"`
	Features []struct {
		Properties layer.Row `json:"properties"`
	} `json:"features"`
}

// ReadRows decodes join data: either a JSON array of objects or a GeoJSON
// FeatureCollection, whose feature properties become the rows.
func ReadRows(r io.Reader) ([]layer.Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading rows")
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty data file")
	}

	if trimmed[0] == '[' {
		var rows []layer.Row
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, errors.Wrap(err, "decoding rows")
		}
		return rows, nil
	}

	var fc featureCollection
	if err := json.Unmarshal(trimmed, &fc); err != nil {
		return nil, errors.Wrap(err, "decoding feature collection")
	}
	if fc.Type != "FeatureCollection" {
		return nil, errors.Errorf("unsupported GeoJSON type %q", fc.Type)
	}
	rows := make([]layer.Row, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f.Properties == nil {
			f.Properties = layer.Row{}
		}
		rows = append(rows, f.Properties)
	}
	return rows, nil
}

// OpenRows opens fileName and decodes its rows.
func OpenRows(
	ctx context.Context,
	cfg *config.Config,
	fileCache *cache.Cache,
	logger *zap.Logger,
	locationName string,
	fileName string,
) ([]layer.Row, error) {
	reader, err := Open(ctx, cfg, fileCache, logger, locationName, fileName)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return ReadRows(reader)
}
