package conf

const (
	SqliteDBPath = "lingvo.db"
)

type (
	AppConf struct {
		Mode       string         `json:"mode" default:"prod" env:"MODE"`
		Log        LogConf        `json:"log"`
		Sentry     SentryConf     `json:"sentry"`
		WordAPI    WordAPIConf    `json:"wordApi"`
		Dictionary DictionaryConf `json:"dictionary"`
		HttpServer HttpServerConf `json:"httpServer"`
	}
	LogConf struct {
		Level      string `json:"level" default:"info" env:"LINGVO_LOG_LEVEL"`
		Filepath   string `json:"filepath" default:"./logs/lingvo.log" env:"LINGVO_LOG_FILEPATH"`
		MaxSize    int    `json:"maxSize" default:"64"`
		MaxBackups int    `json:"maxBackups" default:"5"`
		MaxAge     int    `json:"maxAge" default:"14"`
		Compress   bool   `json:"compress"`
	}
	SentryConf struct {
		Enabled bool   `json:"enabled" env:"LINGVO_SENTRY_ENABLED"`
		Dsn     string `json:"dsn" env:"LINGVO_SENTRY_DSN"`
	}
	WordAPIConf struct {
		Url            string `json:"url" env:"LINGVO_WORD_API_URL"`
		TimeoutSec     int    `json:"timeoutSec" default:"10"`
		RequestsPerSec int    `json:"requestsPerSec" default:"5"`
	}
	DictionaryConf struct {
		Url            string `json:"url" env:"LINGVO_DICTIONARY_API_URL"`
		ApiKey         string `json:"apiKey" env:"LINGVO_API_KEY"`
		TimeoutSec     int    `json:"timeoutSec" default:"10"`
		RequestsPerSec int    `json:"requestsPerSec" default:"5"`
	}
	HttpServerConf struct {
		Enabled bool   `json:"enabled" env:"LINGVO_HTTP_SERVER_ENABLED"`
		Addr    string `json:"addr" default:"127.0.0.1:4397" env:"LINGVO_HTTP_SERVER_ADDR"`
	}
)
