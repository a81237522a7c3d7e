package drive

import (
	"net/url"
	"strings"
)

const (
	viewBase     = "https://drive.google.com/file/d/"
	downloadBase = "https://drive.google.com/uc?export=download&id="
)

// Links are the browser URLs derived for a file.
type Links struct {
	View     string `json:"viewUrl"`
	Preview  string `json:"previewUrl"`
	Download string `json:"downloadUrl"`
}

// LinksFor derives the view, embeddable preview and direct download URLs
// for file id from the provider's view link.
//
// Whatever follows /file/d/<id> in the link (/preview, /edit, /view) is
// normalised to /view. A link without that segment, or an empty one, is
// replaced with the canonical https://drive.google.com/file/d/<id>/view.
// Query strings are kept on the view URL only. The download URL depends on
// id alone.
func LinksFor(id, viewLink string) Links {
	if id == "" {
		return Links{}
	}

	view := canonicalView(id, viewLink)
	return Links{
		View:     view,
		Preview:  strings.TrimSuffix(stripQuery(view), "/view") + "/preview",
		Download: downloadBase + url.QueryEscape(id),
	}
}

func canonicalView(id, link string) string {
	path, query, _ := strings.Cut(link, "?")
	segment := "/file/d/" + id

	idx := strings.Index(path, segment)
	if idx < 0 {
		return viewBase + id + "/view"
	}
	if rest := path[idx+len(segment):]; rest != "" && rest[0] != '/' {
		return viewBase + id + "/view"
	}

	view := path[:idx+len(segment)] + "/view"
	if query != "" {
		view += "?" + query
	}
	return view
}

func stripQuery(s string) string {
	path, _, _ := strings.Cut(s, "?")
	return path
}
