package domain

import (
	"time"
)

// MediaType classifies the media attached to a product variant.
type MediaType string

// Media type constants, in ascending display-richness order.
const (
	MediaProduct  MediaType = "PRODUCT"
	MediaModel    MediaType = "MODEL"
	MediaVideo    MediaType = "VIDEO"
	MediaCampaign MediaType = "CAMPAIGN"
)

// Age group constants as they appear in the inventory feed.
const (
	AgeBebe    = "BEBE"
	AgeToddler = "TODDLER"
	AgeKids    = "KIDS"
)

// Gender constants as they appear in the inventory feed.
const (
	GenderFemenino  = "FEMENINO"
	GenderMasculino = "MASCULINO"
	GenderUnisex    = "UNISEX"
)

// ValidMediaTypes returns the set of valid media classifications.
func ValidMediaTypes() []MediaType {
	return []MediaType{MediaProduct, MediaModel, MediaVideo, MediaCampaign}
}

// IsValidMediaType checks whether the given value is a valid media classification.
func IsValidMediaType(m MediaType) bool {
	for _, v := range ValidMediaTypes() {
		if v == m {
			return true
		}
	}
	return false
}

// ValidAges returns the known age groups.
func ValidAges() []string {
	return []string{AgeBebe, AgeToddler, AgeKids}
}

// IsValidAge checks whether the given value is a known age group.
func IsValidAge(a string) bool {
	return a == AgeBebe || a == AgeToddler || a == AgeKids
}

// ValidGenders returns the known genders.
func ValidGenders() []string {
	return []string{GenderFemenino, GenderMasculino, GenderUnisex}
}

// IsValidGender checks whether the given value is a known gender.
func IsValidGender(g string) bool {
	return g == GenderFemenino || g == GenderMasculino || g == GenderUnisex
}

// IsVisual reports whether the media counts toward a row's visual quota.
// Anything richer than a plain product shot is visual.
func (m MediaType) IsVisual() bool {
	return m == MediaVideo || m == MediaCampaign || m == MediaModel
}

// IsHero reports whether the media is a hero placement (lead-slot material).
// Model shots are visual but not hero.
func (m MediaType) IsHero() bool {
	return m == MediaVideo || m == MediaCampaign
}

// ProductVariant is the unified merchandising record built from one inventory
// group joined against the catalog feed. One variant exists per group key.
type ProductVariant struct {
	GroupKey       string     `json:"group_key"`
	CommercialCode string     `json:"commercial_code"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	ImageURL       string     `json:"image_url"`
	Color          string     `json:"color"`
	Sizes          []string   `json:"sizes"`
	GarmentType    string     `json:"garment_type"`
	Age            string     `json:"age"`
	Gender         string     `json:"gender"`
	StockEcommerce int        `json:"stock_ecommerce"`
	StockStores    int        `json:"stock_stores"`
	RankAnalytics  int        `json:"rank_analytics"`
	RankStores     int        `json:"rank_stores"`
	NewInDate      *time.Time `json:"new_in_date,omitempty"`
	FamilyName     string     `json:"family_name,omitempty"`
	Media          MediaType  `json:"media"`
	CampaignName   string     `json:"campaign_name,omitempty"`
	HasStock       bool       `json:"has_stock"`
	HasPrice       bool       `json:"has_price"`

	// Normalized tags computed once at synchronization, consumed by scoring.
	ColorFamily string `json:"color_family"`
	Category    string `json:"category"`
	Vibe        string `json:"vibe"`
}

// HasImage reports whether media is actually attached.
func (v *ProductVariant) HasImage() bool {
	return v.ImageURL != ""
}

// IsSellable reports whether the variant can appear in the arranged grid.
// Variants without stock, price, or an image fall into the invalid tail.
func (v *ProductVariant) IsSellable() bool {
	return v.HasStock && v.HasPrice && v.HasImage()
}

// ReplaceMedia overwrites the image reference and media classification
// without touching identity. Campaign name is cleared unless the new
// classification is CAMPAIGN.
func (v *ProductVariant) ReplaceMedia(imageURL string, media MediaType, campaignName string) {
	v.ImageURL = imageURL
	v.Media = media
	if media == MediaCampaign {
		v.CampaignName = campaignName
	} else {
		v.CampaignName = ""
	}
}
