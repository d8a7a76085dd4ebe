package telemetry

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	recorder := &Recorder{}
	tel := NewScopedAPI("harvest", NewScopedAPI("haestirettur", recorder))

	tel.ReportBroken("client.fetch", errors.New("boom"), "https://www.haestirettur.is")
	tel.ReportCount("client.discover", 3)
	tel.ReportCount("client.discover", 5)

	broken := recorder.Reports(KindBroken)
	require.Len(t, broken, 1)
	require.Equal(t, "haestirettur: harvest: client.fetch", broken[0].Id)
	require.Len(t, broken[0].Params, 2)

	require.True(t, recorder.Has(KindBroken, "client.fetch"))
	require.False(t, recorder.Has(KindWarning, "client.fetch"))

	count, ok := recorder.LastCount("client.discover")
	require.True(t, ok)
	require.Equal(t, int64(5), count)
	_, ok = recorder.LastCount("client.assemble")
	require.False(t, ok)
}

func TestSlogAPI(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	tel := NewSlogAPI(logger)

	tel.ReportBroken("client.fetch", "https://www.haestirettur.is/domar/")
	tel.ReportDebug("hidden", 1)
	tel.ReportCount("harvester.index", 2)

	out := buf.String()
	require.Contains(t, out, "level=ERROR")
	require.Contains(t, out, "id=client.fetch")
	require.Contains(t, out, "params.0=https://www.haestirettur.is/domar/")
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "n=2")
}

func TestInstrumentResty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	recorder := &Recorder{}
	client := resty.New()
	InstrumentResty(client, recorder)

	_, err := client.R().Get(server.URL)
	require.NoError(t, err)
	require.True(t, recorder.Has(KindDebug, report_resty_request))
	require.True(t, recorder.Has(KindDebug, report_resty_response))

	server.Close()
	_, err = client.R().Get(server.URL)
	require.Error(t, err)
	require.True(t, recorder.Has(KindBroken, report_resty_response))
}
