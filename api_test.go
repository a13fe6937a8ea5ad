package lingvo_widget

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/beastars1/lingvo-widget/global"
	"github.com/beastars1/lingvo-widget/services/quiz"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doRequest(t *testing.T, w *Widget, method, path, body string) (int, Resp) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	w.newRouter().ServeHTTP(rec, req)
	resp := Resp{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestApiTranslate(t *testing.T) {
	w := newTestWidget(t, &stubWords{}, nil)

	tests := []struct {
		name     string
		body     string
		status   int
		code     int
		wantData map[string]interface{}
	}{
		{"ok", `{"word":"time"}`, http.StatusOK, codeOk, map[string]interface{}{"word": "time", "translation": "laikas"}},
		{"missing word", `{}`, http.StatusBadRequest, codeBadRequest, nil},
		{"blank word", `{"word":"  "}`, http.StatusBadRequest, codeBadRequest, nil},
		{"not found", `{"word":"xyzzy"}`, http.StatusNotFound, codeNotFound, nil},
		{"upstream", `{"word":"offline"}`, http.StatusBadGateway, codeUpstream, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := doRequest(t, w, http.MethodPost, "/v1/translate", tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, resp.Code)
			if tt.wantData != nil {
				assert.Equal(t, tt.wantData, resp.Data)
			} else {
				assert.NotEmpty(t, resp.Msg)
			}
		})
	}
}

func TestApiTodayWord(t *testing.T) {
	w := newTestWidget(t, &stubWords{queue: []string{"apple"}}, newTestStore(t))

	status, resp := doRequest(t, w, http.MethodGet, "/v1/word/today", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"word": "apple", "translation": "obuolys"}, resp.Data)

	status, resp = doRequest(t, w, http.MethodGet, "/v1/word/today", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"word": "apple", "translation": "obuolys"}, resp.Data)
}

func TestApiTodayWordUpstreamError(t *testing.T) {
	w := newTestWidget(t, &stubWords{}, nil)

	status, resp := doRequest(t, w, http.MethodGet, "/v1/word/today", "")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, codeUpstream, resp.Code)
}

func TestApiStatsAndUntranslatable(t *testing.T) {
	w := newTestWidget(t, &stubWords{}, nil)

	_, resp := doRequest(t, w, http.MethodGet, "/v1/words/untranslatable", "")
	assert.Equal(t, map[string]interface{}{"words": []interface{}{}}, resp.Data)

	w.Game().Restore(quiz.Stats{Score: 3, Incorrect: 1}, []string{"xyzzy"})

	status, resp := doRequest(t, w, http.MethodGet, "/v1/quiz/stats", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"score": float64(3), "incorrect": float64(1)}, resp.Data)

	_, resp = doRequest(t, w, http.MethodGet, "/v1/words/untranslatable", "")
	assert.Equal(t, map[string]interface{}{"words": []interface{}{"xyzzy"}}, resp.Data)
}

func TestApiVersion(t *testing.T) {
	w := newTestWidget(t, &stubWords{}, nil)

	status, resp := doRequest(t, w, http.MethodGet, "/v1/version", "")
	assert.Equal(t, http.StatusOK, status)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, global.AppBuildInfo.Version, data["version"])
	assert.Equal(t, global.AppBuildInfo.Commit, data["commit"])
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "v"+APPVersion+" (dev)", VersionString())
}
