package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUrlToCacheFileName(t *testing.T) {
	expected := []struct {
		InputPath           string
		InputQuery          string
		OutputCacheFileName string
	}{
		{
			InputPath:           "/data/breaks/local/states.json",
			InputQuery:          "property=density&stops=5",
			OutputCacheFileName: "glmapviz_databreakslocalstatesjson_propertydensitystops5",
		},
		{
			InputPath:           "states.json",
			InputQuery:          "",
			OutputCacheFileName: "glmapviz_statesjson_",
		},
	}

	for _, exp := range expected {
		result := UrlToCacheFileName(exp.InputPath, exp.InputQuery)
		if result != exp.OutputCacheFileName {
			t.Errorf(
				"UrlToCacheFileName(%s, %s) returned %s instead of %s",
				exp.InputPath,
				exp.InputQuery,
				result,
				exp.OutputCacheFileName,
			)
		}
	}
}

func TestKeyFor(t *testing.T) {
	a := KeyFor("local", "states.json", "density")
	assert.True(t, strings.HasPrefix(a, Prefix))
	assert.Len(t, a, len(Prefix)+64)
	assert.Equal(t, a, KeyFor("local", "states.json", "density"))
	assert.NotEqual(t, a, KeyFor("local", "states.jsondensity"))
	assert.Equal(t, Prefix+"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", KeyFor())
}

func TestPutGet(t *testing.T) {
	c := &Cache{Location: t.TempDir(), Logger: zap.NewNop()}
	name := KeyFor("a")

	_, err := c.Get(name, OutputDir)
	assert.Error(t, err)

	require.NoError(t, c.Put(name, OutputDir, []byte("[1,2,3]")))
	data, err := c.Get(name, OutputDir)
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", string(data))

	f, err := c.Open(name, OutputDir)
	require.NoError(t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.Size())
}

func writeAged(t *testing.T, dir, name string, size int, age time.Duration) {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
}

func TestEvict(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, dir, Prefix+"oldest", 100, 3*time.Hour)
	writeAged(t, dir, "notours", 100, 4*time.Hour)
	writeAged(t, dir, Prefix+"older", 100, 2*time.Hour)
	writeAged(t, dir, Prefix+"newest", 100, time.Hour)

	removed, err := Evict(dir, 250, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{Prefix + "oldest", Prefix + "older"}, removed)
	assert.FileExists(t, filepath.Join(dir, "notours"))
	assert.FileExists(t, filepath.Join(dir, Prefix+"newest"))

	removed, err = Evict(dir, 250, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, removed)

	_, err = Evict(filepath.Join(dir, "missing"), 0, zap.NewNop())
	assert.Error(t, err)
}

func TestCheckCacheStops(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, dir, Prefix+"big", 1000, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		CheckCache(ctx, dir, 10*time.Millisecond, 10, zap.NewNop())
		close(done)
	}()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, Prefix+"big"))
		return os.IsNotExist(err)
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("CheckCache did not return after cancel")
	}
}
