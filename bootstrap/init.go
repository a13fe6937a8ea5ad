package bootstrap

import (
	"os"
	"path/filepath"
	"time"

	"github.com/beastars1/lingvo-widget/conf"
	"github.com/beastars1/lingvo-widget/global"
	"github.com/beastars1/lingvo-widget/pkg/logger"
	"github.com/beastars1/lingvo-widget/pkg/tool"
	"github.com/beastars1/lingvo-widget/services/db/enity"

	"github.com/getsentry/sentry-go"
	"github.com/jinzhu/configor"
	"github.com/jinzhu/now"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	confFile = "config.yml"
)

func initConf() {
	_ = godotenv.Load(".env")
	if tool.IsFile(".env.local") {
		_ = godotenv.Overload(".env.local")
	}

	*global.Conf = global.DefaultAppConf
	err := configor.Load(global.Conf, confFile)
	if err != nil {
		panic(err)
	}
}

func initClientConf(dbPath string) (err error) {
	var dbLogger = gormLogger.Discard
	if global.IsDevMode() {
		dbLogger = gormLogger.Default
	}
	gormCfg := &gorm.Config{
		Logger: dbLogger,
	}
	db, err := gorm.Open(sqlite.Open(dbPath), gormCfg)
	if err != nil {
		return errors.Wrap(err, "open sqlite")
	}
	if err = enity.Migrate(db); err != nil {
		return errors.Wrap(err, "migrate sqlite")
	}
	store := enity.NewStore(db)
	clientConf, err := store.LoadClientConf(global.DefaultClientConf)
	if errors.Is(err, enity.ErrInvalidClientConf) {
		global.Logger.Warnw("local client config is invalid, restoring defaults", zap.Error(err))
		clientConf = global.DefaultClientConf
		err = store.SaveClientConf(clientConf)
	}
	if err != nil {
		return err
	}
	global.SetClientConf(clientConf)
	global.SqliteDB = db
	global.Cleanups["sqlite"] = func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func initLog(cfg *conf.LogConf) {
	writeSyncer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Filepath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  true,
	})
	if global.IsDevMode() {
		writeSyncer = zapcore.AddSync(os.Stdout)
	} else {
		_ = os.MkdirAll(filepath.Dir(cfg.Filepath), 0o755)
	}
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncodeDuration = zapcore.StringDurationEncoder
	level, err := logger.Str2ZapLevel(cfg.Level)
	if err != nil {
		panic("zap level is Incorrect")
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(config),
		writeSyncer,
		zap.NewAtomicLevelAt(level),
	)
	global.Logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
	global.Cleanups["loggerSync"] = func() error {
		_ = global.Logger.Sync()
		return nil
	}
}

func InitApp() {
	initConf()
	initLog(&global.Conf.Log)
	if err := initClientConf(conf.SqliteDBPath); err != nil {
		panic(err)
	}
	initLib()
}

func initLib() {
	now.WeekStartDay = time.Monday
	if global.Conf.Sentry.Enabled {
		if err := initSentry(global.Conf.Sentry.Dsn); err != nil {
			global.Logger.Warnw("init sentry failed", zap.Error(err))
		}
	}
}

func initSentry(dsn string) error {
	isDebugMode := global.IsDevMode()
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Debug:       isDebugMode,
		SampleRate:  1.0,
		Release:     global.AppBuildInfo.Version,
		Environment: global.GetEnv(),
	})
	if err == nil {
		global.Cleanups["sentryFlush"] = func() error {
			sentry.Flush(2 * time.Second)
			return nil
		}
		sentry.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetContext("lingvo", map[string]interface{}{
				"version": global.AppBuildInfo.Version,
				"commit":  global.AppBuildInfo.Commit,
			})
		})
	}
	return err
}
