package keyelem

import (
	"reflect"
	"testing"
)

func TestScan_AllSignalKinds(t *testing.T) {
	text := "Revenue grew 12.5% to $1,200,000 in 2024. " +
		"Contact ops@example.com or see https://example.com/report for details."

	got := Scan(text)

	if want := []string{"12.5%"}; !reflect.DeepEqual(got.Percentages, want) {
		t.Errorf("percentages: got %v, want %v", got.Percentages, want)
	}
	if want := []string{"$1,200,000"}; !reflect.DeepEqual(got.Currencies, want) {
		t.Errorf("currencies: got %v, want %v", got.Currencies, want)
	}
	if want := []string{"ops@example.com"}; !reflect.DeepEqual(got.Emails, want) {
		t.Errorf("emails: got %v, want %v", got.Emails, want)
	}
	if want := []string{"https://example.com/report"}; !reflect.DeepEqual(got.URLs, want) {
		t.Errorf("urls: got %v, want %v", got.URLs, want)
	}
	if len(got.Numbers) == 0 {
		t.Error("expected numeric tokens")
	}
}

func TestScan_Empty(t *testing.T) {
	got := Scan("")
	if len(got.Numbers)+len(got.Percentages)+len(got.Currencies)+len(got.Emails)+len(got.URLs) != 0 {
		t.Errorf("expected no signals, got %+v", got)
	}
}
