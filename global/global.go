package global

import (
	"sync"

	"github.com/beastars1/lingvo-widget/conf"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	AppInfo struct {
		Version   string
		Commit    string
		BuildTime string
		BuildUser string
	}
)

const (
	AppName = "Language Learning Widget: English & Lithuanian"
	EnvDev  = "dev"
	EnvProd = "prod"
)

var (
	confMu       = sync.Mutex{}
	Conf         = new(conf.AppConf)
	ClientConf   = new(conf.Client)
	AppBuildInfo AppInfo
	Logger       = zap.NewNop().Sugar()
	SqliteDB     *gorm.DB
	Cleanups     = map[string]func() error{}
)

func SetAppInfo(info AppInfo) {
	AppBuildInfo = info
}

func GetClientConf() conf.Client {
	confMu.Lock()
	defer confMu.Unlock()
	return *ClientConf
}

func SetClientConf(cfg conf.Client) *conf.Client {
	confMu.Lock()
	defer confMu.Unlock()
	*ClientConf = cfg
	return ClientConf
}

func GetEnv() string {
	return Conf.Mode
}

func IsDevMode() bool {
	return GetEnv() == EnvDev
}

func Cleanup() {
	for name, cleanup := range Cleanups {
		if err := cleanup(); err != nil {
			Logger.Errorw("cleanup failed", "name", name, "error", err)
		}
	}
}
