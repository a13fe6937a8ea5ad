package lingvo_widget

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type (
	Resp struct {
		Code int         `json:"code"`
		Msg  string      `json:"msg"`
		Data interface{} `json:"data"`
	}
	translateReq struct {
		Word string `json:"word" binding:"required"`
	}
	wordResp struct {
		Word        string `json:"word"`
		Translation string `json:"translation"`
	}
	statsResp struct {
		Score     int `json:"score"`
		Incorrect int `json:"incorrect"`
	}
	untranslatableResp struct {
		Words []string `json:"words"`
	}
)

const (
	codeOk = iota
	codeBadRequest
	codeNotFound
	codeUpstream
)

func (w *Widget) newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), cors.Default())
	if w.opts.enablePprof {
		pprof.Register(r)
	}
	v1 := r.Group("/v1")
	v1.GET("/word/today", w.apiTodayWord)
	v1.POST("/translate", w.apiTranslate)
	v1.GET("/quiz/stats", w.apiQuizStats)
	v1.GET("/words/untranslatable", w.apiUntranslatable)
	v1.GET("/version", w.apiVersion)
	return r
}

func respOk(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Resp{Code: codeOk, Data: data})
}

func respFail(c *gin.Context, status, code int, err error) {
	c.JSON(status, Resp{Code: code, Msg: err.Error()})
}

func (w *Widget) apiTodayWord(c *gin.Context) {
	word, translation, err := w.TodayWord(c.Request.Context())
	if err != nil {
		respFail(c, http.StatusBadGateway, codeUpstream, err)
		return
	}
	respOk(c, wordResp{Word: word, Translation: translation})
}

func (w *Widget) apiTranslate(c *gin.Context) {
	req := &translateReq{}
	if err := c.ShouldBindJSON(req); err != nil {
		respFail(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}
	word, translation, err := w.Translate(c.Request.Context(), req.Word)
	switch {
	case errors.Is(err, ErrEmptyWord):
		respFail(c, http.StatusBadRequest, codeBadRequest, err)
	case errors.Is(err, ErrNotFound):
		respFail(c, http.StatusNotFound, codeNotFound, err)
	case err != nil:
		respFail(c, http.StatusBadGateway, codeUpstream, err)
	default:
		respOk(c, wordResp{Word: word, Translation: translation})
	}
}

func (w *Widget) apiQuizStats(c *gin.Context) {
	stats := w.game.Stats()
	respOk(c, statsResp{Score: stats.Score, Incorrect: stats.Incorrect})
}

func (w *Widget) apiUntranslatable(c *gin.Context) {
	list := w.game.Untranslatable()
	if list == nil {
		list = []string{}
	}
	respOk(c, untranslatableResp{Words: list})
}

func (w *Widget) apiVersion(c *gin.Context) {
	respOk(c, currentVersion())
}
