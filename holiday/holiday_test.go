package holiday

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{"2024-04-29":"昭和の日","2024-05-03":"憲法記念日","not-a-date":"x"}`

func TestDecode(t *testing.T) {
	s, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Len(t, s, 2)
	assert.True(t, s.Has("2024-04-29"))
	assert.False(t, s.Has("not-a-date"))
	assert.True(t, s.Contains(time.Date(2024, time.May, 3, 23, 0, 0, 0, time.UTC)))
	assert.False(t, s.Contains(time.Date(2024, time.May, 4, 0, 0, 0, 0, time.UTC)))
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader(`[1,2]`))
	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sample))
	}))
	defer srv.Close()

	s, err := Fetch(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.True(t, s.Has("2024-05-03"))
}

func TestFetchStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), nil, srv.URL)
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0600))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, s, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestNilSet(t *testing.T) {
	var s Set
	assert.False(t, s.Has("2024-01-01"))
}
