package datasource

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spectriclabs/glmapviz/internal/cache"
	"github.com/spectriclabs/glmapviz/internal/config"
	"github.com/spectriclabs/glmapviz/internal/layer"
)

const statesJSON = `[{"abbr":"CA","density":17},{"abbr":"NY","density":525}]`

const statesGeoJSON = `{"type":"FeatureCollection","features":[
	{"type":"Feature","geometry":null,"properties":{"abbr":"CA","density":17}},
	{"type":"Feature","geometry":null}
]}`

func setup(t *testing.T) (*config.Config, *cache.Cache) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "states.json"), []byte(statesJSON), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dataDir, "nested"), 0755))

	cfg := &config.Config{
		UseCache:      true,
		CacheLocation: t.TempDir(),
		LocationDetails: []config.Location{
			{LocationName: "local", LocationType: LocalFile, Path: dataDir},
			{LocationName: "bucket", LocationType: Minio, MinioBucket: "geodata", Location: "127.0.0.1:1"},
			{LocationName: "ftp", LocationType: "ftp"},
		},
	}
	return cfg, &cache.Cache{Location: cfg.CacheLocation, Logger: zap.NewNop()}
}

func TestOpenLocalFile(t *testing.T) {
	cfg, c := setup(t)
	rows, err := OpenRows(context.Background(), cfg, c, zap.NewNop(), "local", "states.json")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "CA", rows[0]["abbr"])
	assert.Equal(t, 525.0, rows[1]["density"])

	// paths can't climb out of the location
	rows, err = OpenRows(context.Background(), cfg, c, zap.NewNop(), "local", "../../states.json")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestOpenErrors(t *testing.T) {
	cfg, c := setup(t)
	_, err := Open(context.Background(), cfg, c, zap.NewNop(), "nowhere", "states.json")
	assert.Error(t, err)

	_, err = Open(context.Background(), cfg, c, zap.NewNop(), "local", "missing.json")
	assert.Error(t, err)

	_, err = Open(context.Background(), cfg, c, zap.NewNop(), "ftp", "states.json")
	assert.EqualError(t, err, "unsupported location type ftp in ftp")
}

func TestOpenMinioFromCache(t *testing.T) {
	cfg, c := setup(t)
	name := cache.UrlToCacheFileName("geodata/states.json", "")
	require.NoError(t, c.Put(name, cache.MinioDir, []byte(statesJSON)))

	reader, err := Open(context.Background(), cfg, c, zap.NewNop(), "bucket", "states.json")
	require.NoError(t, err)
	defer reader.Close()
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, statesJSON, string(data))
}

func TestList(t *testing.T) {
	cfg, _ := setup(t)
	files, err := List(cfg, "local", "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []File{{"nested", "directory"}, {"states.json", "file"}}, files)

	_, err = List(cfg, "bucket", "")
	assert.Error(t, err)
}

func TestReadRows(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(statesGeoJSON))
	require.NoError(t, err)
	assert.Equal(t, []layer.Row{{"abbr": "CA", "density": 17.0}, {}}, rows)

	expected := []string{
		"",
		"   ",
		`{"type":"Feature"}`,
		`[1, 2]`,
		`{"type":`,
	}
	for _, input := range expected {
		if _, err := ReadRows(strings.NewReader(input)); err == nil {
			t.Errorf("ReadRows(%q) returned no error", input)
		}
	}
}
