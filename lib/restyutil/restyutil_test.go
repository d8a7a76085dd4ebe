package restyutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	mutex    sync.Mutex
	messages map[string]string
}

func (m *memoryOutput) Write(id string, contents string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.messages == nil {
		m.messages = map[string]string{}
	}
	m.messages[id] = contents
}

func TestDumpExchanges(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Court", "Hæstiréttur")
		w.Write([]byte("<h1>Mál nr. 5/2025</h1>"))
	}))
	defer server.Close()

	output := &memoryOutput{}
	client := resty.New()
	DumpExchanges(client, output)

	_, err := client.R().SetHeader("User-Agent", "courtlinks-test").Get(server.URL + "/domar/")
	require.NoError(t, err)

	message, ok := output.messages["0001.http"]
	require.True(t, ok)
	require.True(t, strings.HasPrefix(message, "---- REQUEST ----\n\nGET "+server.URL+"/domar/"))
	require.Contains(t, message, "User-Agent: courtlinks-test")
	require.Contains(t, message, "---- RESPONSE ----\n\n200 ")
	require.Contains(t, message, "X-Court: Hæstiréttur")
	require.True(t, strings.HasSuffix(message, "<h1>Mál nr. 5/2025</h1>"))
}

func TestFormatRequestBodyWithoutBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://www.haestirettur.is/domar/", nil)
	require.Equal(t, "", formatRequestBody(req))

	req.GetBody = func() (io.ReadCloser, error) { return nil, nil }
	require.Equal(t, "", formatRequestBody(req))

	req.GetBody = func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("q=1")), nil }
	require.Equal(t, "q=1", formatRequestBody(req))
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dump")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale.http"), []byte("old"), 0o600))

	output, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	output.Write("0001.http", "contents")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	contents, err := os.ReadFile(filepath.Join(dir, "0001.http"))
	require.NoError(t, err)
	require.Equal(t, "contents", string(contents))
}
