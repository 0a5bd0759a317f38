package lifecycle

import (
	"reflect"
	"testing"
)

func TestNormalizeTarget(t *testing.T) {
	tests := map[string]string{
		"ebay":                         "ebay",
		"  Poshmark ":                  "poshmark",
		"ebay.com":                     "ebay",
		"www.ebay.co.uk":               "ebay",
		"https://www.ebay.co.uk/itm/1": "ebay",
		"HTTPS://Shop.Depop.com:443/x": "depop",
		"mercari.com/us/item/m123":     "mercari",
		"facebook-marketplace":         "facebook-marketplace",
		"":                             "",
	}
	for in, want := range tests {
		if got := NormalizeTarget(in); got != want {
			t.Errorf("NormalizeTarget(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeTargetsDedupes(t *testing.T) {
	got := normalizeTargets([]string{"Poshmark", "", "ebay.com", "poshmark", " ", "https://ebay.com/x"})
	want := []string{"poshmark", "ebay"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("normalizeTargets = %v, want %v", got, want)
	}
}
