package feed

import (
	"encoding/xml"
	"io"
	"strings"
)

// CatalogEntry is one entry of the catalog/media feed. GroupKey and
// CommercialCode are derived from the media URL, not carried by the feed
// itself.
type CatalogEntry struct {
	ID             string
	Title          string
	Description    string
	ImageURL       string
	GroupKey       string
	CommercialCode string
}

// Lengths of the codes derived from a media file name.
const (
	groupKeyLen       = 10
	commercialCodeLen = 8
)

type catalogItem struct {
	ID          string `xml:"id"`
	Title       string `xml:"title"`
	Description string `xml:"description"`
	ImageLink   string `xml:"image_link"`
}

// DecodeCatalog reads the catalog XML feed and returns its entries in
// document order. Items can appear at any nesting depth; the feed arrives
// sometimes as a bare item list and sometimes wrapped in an rss/channel
// envelope. Entries whose derived group key is empty are discarded.
// A malformed document yields the entries decoded up to the defect.
func DecodeCatalog(r io.Reader) []CatalogEntry {
	dec := xml.NewDecoder(r)

	var entries []CatalogEntry
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "item" {
			continue
		}

		var item catalogItem
		if err := dec.DecodeElement(&item, &start); err != nil {
			continue
		}

		imageURL := strings.TrimSpace(item.ImageLink)
		groupKey, commercialCode := deriveCodes(imageURL)
		if groupKey == "" {
			continue
		}
		entries = append(entries, CatalogEntry{
			ID:             strings.TrimSpace(item.ID),
			Title:          strings.TrimSpace(item.Title),
			Description:    strings.TrimSpace(item.Description),
			ImageURL:       imageURL,
			GroupKey:       groupKey,
			CommercialCode: commercialCode,
		})
	}
	return entries
}

// deriveCodes extracts the group key and commercial code from a media URL:
// the file name's prefix before its first underscore, truncated to 10 and
// 8 characters respectively.
func deriveCodes(imageURL string) (groupKey, commercialCode string) {
	fileName := imageURL
	if idx := strings.LastIndex(imageURL, "/"); idx >= 0 {
		fileName = imageURL[idx+1:]
	}
	code, _, _ := strings.Cut(fileName, "_")

	groupKey = code
	if len(groupKey) > groupKeyLen {
		groupKey = groupKey[:groupKeyLen]
	}
	commercialCode = code
	if len(commercialCode) > commercialCodeLen {
		commercialCode = commercialCode[:commercialCodeLen]
	}
	return groupKey, commercialCode
}
