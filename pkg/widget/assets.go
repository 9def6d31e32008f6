package widget

import (
	"embed"
	"io/fs"
	"strings"
)

// LibraryVersion is the intl-tel-input release the widget targets.
const LibraryVersion = "25.12.5"

const cdnBase = "https://cdn.jsdelivr.net/npm/intl-tel-input@" + LibraryVersion + "/build/"

// CDN locations of the intl-tel-input build.
const (
	LibraryStylesheetURL = cdnBase + "css/intlTelInput.css"
	LibraryScriptURL     = cdnBase + "js/intlTelInput.min.js"
	LibraryUtilsURL      = cdnBase + "js/utils.js"
)

// Page marker ids. Each asset is injected at most once per page.
const (
	LibraryStylesheetID = "intl-tel-input-styles"
	WidgetStyleID       = "phone-input-styles"
	LibraryScriptID     = "intl-tel-input-script"
	LibraryUtilsID      = "intl-tel-input-utils"
)

// Theme asset keys looked up through RendererConfig.AssetURL.
const (
	AssetKeyStylesheet = "phone-input.stylesheet"
	AssetKeyScript     = "phone-input.script"
	AssetKeyUtils      = "phone-input.utils"
)

//go:embed assets/phone-input.css
var assetFiles embed.FS

// AssetsFS exposes the widget stylesheet so hosts can serve it as a file
// instead of relying on the inline style block.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(assetFiles, "assets")
	if err != nil {
		return assetFiles
	}
	return sub
}

// Stylesheet returns the widget stylesheet.
func Stylesheet() string {
	raw, err := fs.ReadFile(assetFiles, "assets/phone-input.css")
	if err != nil {
		return ""
	}
	return string(raw)
}

// assetURLs resolves the library locations, preferring theme overrides.
type assetURLs struct {
	stylesheet string
	script     string
	utils      string
}

func resolveAssetURLs(resolve func(string) string) assetURLs {
	urls := assetURLs{
		stylesheet: LibraryStylesheetURL,
		script:     LibraryScriptURL,
		utils:      LibraryUtilsURL,
	}
	if resolve == nil {
		return urls
	}
	if v := strings.TrimSpace(resolve(AssetKeyStylesheet)); v != "" {
		urls.stylesheet = v
	}
	if v := strings.TrimSpace(resolve(AssetKeyScript)); v != "" {
		urls.script = v
	}
	if v := strings.TrimSpace(resolve(AssetKeyUtils)); v != "" {
		urls.utils = v
	}
	return urls
}
