package feed

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"
)

// Sentinel values used by the inventory feed.
const (
	// NotAvailable marks an absent value in optional columns.
	NotAvailable = "#N/A"
	// UnrankedSentinel is the ranking assigned when a ranking column is
	// missing or unparseable. It sorts after every real ranking.
	UnrankedSentinel = 9999
)

// Inventory column headers as exported by the merchandising sheet.
// RankStores has two accepted spellings; the sheet carried a typo for years
// and both variants are still in circulation.
const (
	colGroupKey        = "Grupo (Fórmula)"
	colCommercialCode  = "Codigo Comercial"
	colSKU             = "SKU"
	colGarmentType     = "Tipo Prenda"
	colAge             = "Edad"
	colGender          = "Género"
	colTitle           = "TITULO"
	colColor           = "COLOR"
	colSize            = "TALLE"
	colStockEcommerce  = "STOCK ECOMMERCE"
	colStockStores     = "STOCK LOCALES"
	colRankAnalytics   = "Ranking Analytics"
	colRankStores      = "Ranking Locales"
	colRankStoresTypo  = "Rankign Locales"
	colPriceCents      = "PRICE_CENTS"
	colImageLoaded     = "IMAGEN CARGADA"
	colNewIn           = "NEW IN"
	colCampaignPhoto   = "FOTO CAMPAÑA"
	colModelPhoto      = "FOTO MODELO"
	colVideo           = "VIDEO"
)

// InventoryRow is one size/variant line of the inventory/metrics feed.
// Optional media columns keep their raw value; NotAvailable means absent.
type InventoryRow struct {
	GroupKey       string
	CommercialCode string
	SKU            string
	GarmentType    string
	Age            string
	Gender         string
	Title          string
	Color          string
	Size           string
	StockEcommerce int
	StockStores    int
	RankAnalytics  int
	RankStores     int
	PriceCents     int
	ImageLoaded    bool
	NewIn          string
	CampaignPhoto  string
	ModelPhoto     string
	Video          string
}

// DecodeInventory reads the delimited inventory feed. The first record is
// the header; every data record is matched to it by position. Records whose
// field count differs from the header are dropped silently, as are records
// the csv reader cannot split. Numeric defects degrade to sentinels instead
// of failing the row.
func DecodeInventory(r io.Reader) []InventoryRow {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}

	var rows []InventoryRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if len(record) != len(header) {
			continue
		}

		field := func(name string) string {
			i, ok := idx[name]
			if !ok {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		rankStores := field(colRankStores)
		if rankStores == "" {
			rankStores = field(colRankStoresTypo)
		}

		rows = append(rows, InventoryRow{
			GroupKey:       field(colGroupKey),
			CommercialCode: field(colCommercialCode),
			SKU:            field(colSKU),
			GarmentType:    field(colGarmentType),
			Age:            field(colAge),
			Gender:         field(colGender),
			Title:          field(colTitle),
			Color:          field(colColor),
			Size:           field(colSize),
			StockEcommerce: parseIntOr(field(colStockEcommerce), 0),
			StockStores:    parseIntOr(field(colStockStores), 0),
			RankAnalytics:  parseIntOr(field(colRankAnalytics), UnrankedSentinel),
			RankStores:     parseIntOr(rankStores, UnrankedSentinel),
			PriceCents:     parseIntOr(field(colPriceCents), 0),
			ImageLoaded:    strings.EqualFold(field(colImageLoaded), "SI"),
			NewIn:          field(colNewIn),
			CampaignPhoto:  field(colCampaignPhoto),
			ModelPhoto:     field(colModelPhoto),
			Video:          field(colVideo),
		})
	}
	return rows
}

func parseIntOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// ParseNewInDate parses the optional arrival date column, formatted as
// DD/MM/YYYY. Empty values, NotAvailable, and malformed dates all mean
// "not a new arrival" and return nil.
func ParseNewInDate(s string) *time.Time {
	if s == "" || s == NotAvailable {
		return nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return nil
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}
