package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bryanwahyu/credcheck/internal/application"
	appanalysis "github.com/bryanwahyu/credcheck/internal/application/analysis"
	appextract "github.com/bryanwahyu/credcheck/internal/application/extract"
	"github.com/bryanwahyu/credcheck/internal/infra/extract"
	"github.com/bryanwahyu/credcheck/internal/infra/history/memory"
)

type historyItem struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Date        string           `json:"date"`
	Score       float64          `json:"score"`
	URL         *string          `json:"url"`
	TextSnippet *string          `json:"textSnippet"`
	FullResult  *json.RawMessage `json:"fullResult"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	n := 0
	svc := &appanalysis.Service{
		Records: memory.NewStore(),
		Clock:   application.FixedClock(time.Date(2024, 5, 15, 14, 23, 0, 0, time.UTC)),
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
	h := NewRouter(svc, appextract.NewService(extract.NewPlaceholder()), Options{HistoryBackend: "memory"})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func postAnalyze(t *testing.T, srv *httptest.Server, content, typ string) *http.Response {
	t.Helper()
	body, err := json.Marshal(map[string]string{"content": content, "type": typ})
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+"/api/analyze", "application/json", strings.NewReader(string(body)))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestRoot(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, welcomeMessage, body["message"])
}

func TestAnalyze_Text(t *testing.T) {
	srv := newTestServer(t)
	resp := postAnalyze(t, srv, "New report finds according to researchers that X", "text")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "id-1", body["id"])
	assert.Equal(t, 0.85, body["score"])
	assert.Equal(t, "Likely Credible", body["verdict"])
	assert.Equal(t, 0.85, body["confidence"])
	assert.Len(t, body["categories"], 5)
	assert.Len(t, body["sources"], 2)
	assert.Len(t, body["suggestions"], 4)
	assert.Equal(t, "New report finds according to researchers that X...", body["text_snippet"])
	assert.Nil(t, body["url"])
	assert.Contains(t, body, "url")
	assert.Equal(t, "2024-05-15T14:23:00Z", body["timestamp"])
}

func TestAnalyze_URLWithAlarmingKeyword(t *testing.T) {
	srv := newTestServer(t)
	resp := postAnalyze(t, srv, "https://example.com/shocking-miracle-research", "url")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, 0.25, body["score"])
	assert.Equal(t, "Likely Fake News", body["verdict"])
	assert.Equal(t, "https://example.com/shocking-miracle-research", body["url"])
	assert.Nil(t, body["text_snippet"])
}

func TestAnalyze_ValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	resp := postAnalyze(t, srv, "hello", "pdf")
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["detail"], "type")

	resp = postAnalyze(t, srv, "", "text")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err := http.Post(srv.URL+"/api/analyze", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecentAndHistory(t *testing.T) {
	srv := newTestServer(t)
	contents := []string{"first fake story", "second study", "third item", "fourth item", "fifth miracle"}
	for _, c := range contents {
		resp := postAnalyze(t, srv, c, "text")
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/api/analyses/recent")
	require.NoError(t, err)
	var recent []historyItem
	decode(t, resp, &recent)
	require.Len(t, recent, 3)
	assert.Equal(t, "id-1", recent[0].ID)
	assert.Equal(t, "id-2", recent[1].ID)
	assert.Equal(t, "id-3", recent[2].ID)
	assert.Equal(t, "first fake story...", recent[0].Title)
	assert.Equal(t, "2024-05-15T14:23:00Z", recent[0].Date)
	assert.NotNil(t, recent[0].FullResult)

	resp, err = http.Get(srv.URL + "/api/analyses/history")
	require.NoError(t, err)
	var all []historyItem
	decode(t, resp, &all)
	require.Len(t, all, 5)
	assert.Equal(t, "id-5", all[4].ID)

	resp, err = http.Get(srv.URL + "/api/analyses/history?credibility=low")
	require.NoError(t, err)
	var low []historyItem
	decode(t, resp, &low)
	require.Len(t, low, 2)
	assert.Equal(t, "id-1", low[0].ID)
	assert.Equal(t, "id-5", low[1].ID)

	resp, err = http.Get(srv.URL + "/api/analyses/history?q=STUDY")
	require.NoError(t, err)
	var found []historyItem
	decode(t, resp, &found)
	require.Len(t, found, 1)
	assert.Equal(t, "id-2", found[0].ID)

	resp, err = http.Get(srv.URL + "/api/analyses/history?credibility=bogus")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHistory_EmptyIsJSONArray(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/analyses/history")
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.Equal(t, "[]", string(raw))
}

func TestGetAnalysis(t *testing.T) {
	srv := newTestServer(t)
	resp := postAnalyze(t, srv, "plain words", "text")
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/analyses/id-1")
	require.NoError(t, err)
	var item historyItem
	decode(t, resp, &item)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0.55, item.Score)

	resp, err = http.Get(srv.URL + "/api/analyses/unknown")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExport(t *testing.T) {
	srv := newTestServer(t)
	resp := postAnalyze(t, srv, "https://example.com/report", "url")
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/analyses/export")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("History")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestExtract(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/extract?url=https://news.example.com/a")
	require.NoError(t, err)
	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["placeholder"])
	assert.Equal(t, "Article Title Placeholder", body["title"])

	resp, err = http.Get(srv.URL + "/api/extract?url=ftp://x")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/analyze", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}
