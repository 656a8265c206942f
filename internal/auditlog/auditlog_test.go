package auditlog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestWriter_Path(t *testing.T) {
	w := New("/var/log/strata")
	at := time.Date(2024, 3, 9, 7, 30, 0, 0, time.UTC)

	assert.Equal(t, filepath.Join("/var/log/strata", "2024", "03", "09", "2024-03-09_07.log"), w.Path(at))
}

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2024, 3, 9, 7, 30, 15, 0, time.UTC)
	w := New(dir, WithClock(fixedClock(at)))

	require.NoError(t, w.Write("SELECT 1"))
	require.NoError(t, w.Write("SELECT 2"))

	data, err := os.ReadFile(w.Path(at))
	require.NoError(t, err)
	assert.Equal(t, "[2024-03-09 07:30:15] SELECT 1\r\n[2024-03-09 07:30:15] SELECT 2\r\n", string(data))
}

func TestWriter_WriteSplitsByHour(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2024, 3, 9, 7, 59, 59, 0, time.UTC)
	clock := at
	w := New(dir, WithClock(func() time.Time { return clock }))

	require.NoError(t, w.Write("first"))
	clock = at.Add(time.Second)
	require.NoError(t, w.Write("second"))

	first, err := os.ReadFile(filepath.Join(dir, "2024", "03", "09", "2024-03-09_07.log"))
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(dir, "2024", "03", "09", "2024-03-09_08.log"))
	require.NoError(t, err)

	assert.Equal(t, "[2024-03-09 07:59:59] first\r\n", string(first))
	assert.Equal(t, "[2024-03-09 08:00:00] second\r\n", string(second))
}

func TestWriter_ConcurrentAppends(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2024, 3, 9, 7, 0, 0, 0, time.UTC)
	w := New(dir, WithClock(fixedClock(at)))

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, w.Write("UPDATE t SET a = 1"))
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(w.Path(at))
	require.NoError(t, err)
	assert.Len(t, data, n*len("[2024-03-09 07:00:00] UPDATE t SET a = 1\r\n"))
}
