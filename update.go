package lingvo_widget

import (
	"encoding/json"
	"time"

	"github.com/beastars1/lingvo-widget/global"
	"github.com/beastars1/lingvo-widget/pkg/tool"
	"github.com/beastars1/lingvo-widget/services/logger"
	"github.com/hashicorp/go-version"
	"go.uber.org/zap"
)

const (
	releaseInfoUrl = "https://api.github.com/repos/beastars1/lingvo-widget/releases/latest"
	releaseUrl     = "https://github.com/beastars1/lingvo-widget/releases"
)

type releaseInfo struct {
	HtmlUrl         string    `json:"html_url"`
	TagName         string    `json:"tag_name"`
	TargetCommitish string    `json:"target_commitish"`
	Name            string    `json:"name"`
	CreatedAt       time.Time `json:"created_at"`
	PublishedAt     time.Time `json:"published_at"`
	Assets          []struct {
		CreatedAt          time.Time `json:"created_at"`
		UpdatedAt          time.Time `json:"updated_at"`
		BrowserDownloadUrl string    `json:"browser_download_url"`
	} `json:"assets"`
	Body string `json:"body"`
}

func (r releaseInfo) hasNewVersion(currVersion string) (ok bool, downloadUrl, info string) {
	if r.TagName == "" {
		return false, "", ""
	}
	cmp, err := compareVersion(currVersion, r.TagName)
	if err != nil {
		logger.Debug("unparsable release version", zap.Error(err), "tag", r.TagName)
		return false, "", ""
	}
	if cmp >= 0 {
		return false, "", ""
	}
	downloadUrl = releaseUrl
	if r.HtmlUrl != "" {
		downloadUrl = r.HtmlUrl
	}
	if len(r.Assets) > 0 {
		downloadUrl = r.Assets[0].BrowserDownloadUrl
	}
	return true, downloadUrl, r.Body
}

// compareVersion compares two semantic versions; pre-releases sort before
// their release.
func compareVersion(a, b string) (int, error) {
	va, err := version.NewVersion(a)
	if err != nil {
		return 0, err
	}
	vb, err := version.NewVersion(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

func CheckUpdate() (ok bool, downloadUrl, info string) {
	body := tool.HttpGet(releaseInfoUrl)
	if body == nil {
		return false, "", ""
	}
	var release = releaseInfo{}
	err := json.Unmarshal(body, &release)
	if err != nil {
		return false, "", ""
	}
	return release.hasNewVersion(global.AppBuildInfo.Version)
}
