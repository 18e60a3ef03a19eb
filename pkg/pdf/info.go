package pdf

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// DocInfo carries the document information dictionary fields together with
// the page count. Date fields hold the raw PDF date strings; use FormatDate
// for display.
type DocInfo struct {
	Path         string `json:"path"`
	PageCount    int    `json:"page_count"`
	Title        string `json:"title,omitempty"`
	Author       string `json:"author,omitempty"`
	Creator      string `json:"creator,omitempty"`
	Producer     string `json:"producer,omitempty"`
	CreationDate string `json:"creation_date,omitempty"`
	ModDate      string `json:"mod_date,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Keywords     string `json:"keywords,omitempty"`
}

func fillInfoFromDict(s Store, dict types.Dict, info *DocInfo) {
	if v, ok := ResolveText(s, dict["Title"]); ok {
		info.Title = v
	}
	if v, ok := ResolveText(s, dict["Author"]); ok {
		info.Author = v
	}
	if v, ok := ResolveText(s, dict["Creator"]); ok {
		info.Creator = v
	}
	if v, ok := ResolveText(s, dict["Producer"]); ok {
		info.Producer = v
	}
	if v, ok := ResolveText(s, dict["CreationDate"]); ok {
		info.CreationDate = v
	}
	if v, ok := ResolveText(s, dict["ModDate"]); ok {
		info.ModDate = v
	}
	if v, ok := ResolveText(s, dict["Subject"]); ok {
		info.Subject = v
	}
	if v, ok := ResolveText(s, dict["Keywords"]); ok {
		info.Keywords = v
	}
}
