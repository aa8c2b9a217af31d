package keyelem

import "regexp"

var (
	scanNumberRe   = regexp.MustCompile(`\b\d+(?:,\d{3})*(?:\.\d+)?\b`)
	scanPercentRe  = regexp.MustCompile(`\d+(?:\.\d+)?%`)
	scanCurrencyRe = regexp.MustCompile(`[$¥€£]\s*\d+(?:,\d{3})*(?:\.\d+)?`)
	scanEmailRe    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	scanURLRe      = regexp.MustCompile(`https?://[^\s]+`)
)

// Elements holds the generic signals found by Scan.
type Elements struct {
	Numbers     []string `json:"numbers"`
	Percentages []string `json:"percentages"`
	Currencies  []string `json:"currencies"`
	Emails      []string `json:"emails"`
	URLs        []string `json:"urls"`
}

// Scan performs the generic element pass shared by all segmentation modes:
// numbers, percentages, currency amounts, emails and URLs. It is a free
// function so segmenters use it by composition rather than inheritance.
func Scan(text string) Elements {
	return Elements{
		Numbers:     scanNumberRe.FindAllString(text, -1),
		Percentages: scanPercentRe.FindAllString(text, -1),
		Currencies:  scanCurrencyRe.FindAllString(text, -1),
		Emails:      scanEmailRe.FindAllString(text, -1),
		URLs:        scanURLRe.FindAllString(text, -1),
	}
}
