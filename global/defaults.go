package global

import "github.com/beastars1/lingvo-widget/conf"

var (
	DefaultAppConf = conf.AppConf{
		Mode: EnvProd,
		Log: conf.LogConf{
			Level:      "info",
			Filepath:   "./logs/lingvo.log",
			MaxSize:    64,
			MaxBackups: 5,
			MaxAge:     14,
			Compress:   false,
		},
		Sentry: conf.SentryConf{
			Enabled: false,
		},
		WordAPI: conf.WordAPIConf{
			Url:            "https://random-word-api.herokuapp.com/word?number=1",
			TimeoutSec:     10,
			RequestsPerSec: 5,
		},
		Dictionary: conf.DictionaryConf{
			Url:            "https://dictionary.yandex.net/api/v1/dicservice.json/lookup",
			ApiKey:         "",
			TimeoutSec:     10,
			RequestsPerSec: 5,
		},
		HttpServer: conf.HttpServerConf{
			Enabled: false,
			Addr:    "127.0.0.1:4397",
		},
	}
	DefaultClientConf = conf.Client{
		LangPair:             "en-lt",
		QuizOptionsCount:     4,
		NextQuestionDelaySec: 2,
		MaxSkips:             20,
		MaxOptionRounds:      10,
	}
)
