package lingvo_widget

import (
	"fmt"

	"github.com/beastars1/lingvo-widget/global"
)

// Overridden at build time:
//
//	go build -ldflags "-X github.com/beastars1/lingvo-widget.Commit=$(git rev-parse --short HEAD)"
var (
	APPVersion = "0.1.0"
	Commit     = "dev"
	BuildTime  = ""
	BuildUser  = ""
)

type versionResp struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime,omitempty"`
	BuildUser string `json:"buildUser,omitempty"`
}

func init() {
	global.SetAppInfo(global.AppInfo{
		Version:   APPVersion,
		Commit:    Commit,
		BuildUser: BuildUser,
		BuildTime: BuildTime,
	})
}

// VersionString renders the build as "v0.1.0 (dev)".
func VersionString() string {
	info := global.AppBuildInfo
	if info.Commit == "" {
		return "v" + info.Version
	}
	return fmt.Sprintf("v%s (%s)", info.Version, info.Commit)
}

func currentVersion() versionResp {
	info := global.AppBuildInfo
	return versionResp{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildTime: info.BuildTime,
		BuildUser: info.BuildUser,
	}
}
