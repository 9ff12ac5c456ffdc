package aicopy

import "testing"

func TestParseModelJSONPlain(t *testing.T) {
	raw := `{"metaTitle":"Ψηφιακός Μετασχηματισμός","metaDescription":"Λύσεις Industry 4.0"}`

	var result SEOResult
	if err := parseModelJSON(raw, &result); err != nil {
		t.Fatalf("parseModelJSON failed: %v", err)
	}
	if result.MetaTitle != "Ψηφιακός Μετασχηματισμός" {
		t.Errorf("unexpected metaTitle %q", result.MetaTitle)
	}
	if result.MetaDescription != "Λύσεις Industry 4.0" {
		t.Errorf("unexpected metaDescription %q", result.MetaDescription)
	}
}

func TestParseModelJSONFenced(t *testing.T) {
	raw := "```json\n{\"metaTitle\":\"AgTech\",\"metaDescription\":\"IoT λύσεις\"}\n```"

	var result SEOResult
	if err := parseModelJSON(raw, &result); err != nil {
		t.Fatalf("parseModelJSON failed: %v", err)
	}
	if result.MetaTitle != "AgTech" {
		t.Errorf("unexpected metaTitle %q", result.MetaTitle)
	}
}

func TestParseModelJSONSectorContent(t *testing.T) {
	raw := "```json\n" + `{
		"executiveSummary": "Σύνοψη",
		"challenges": [{"title": "Κόστος", "description": "Υψηλό αρχικό κόστος"}],
		"solutions": [{"title": "IoT", "description": "Αισθητήρες"}],
		"benefits": [{"title": "Απόδοση", "description": "Μετρήσιμη αξία"}],
		"futureOutlook": "Προοπτική"
	}` + "\n```"

	var result SectorContent
	if err := parseModelJSON(raw, &result); err != nil {
		t.Fatalf("parseModelJSON failed: %v", err)
	}
	if result.ExecutiveSummary != "Σύνοψη" {
		t.Errorf("unexpected executiveSummary %q", result.ExecutiveSummary)
	}
	if len(result.Challenges) != 1 || result.Challenges[0].Title != "Κόστος" {
		t.Errorf("unexpected challenges %#v", result.Challenges)
	}
	if result.FutureOutlook != "Προοπτική" {
		t.Errorf("unexpected futureOutlook %q", result.FutureOutlook)
	}
}

func TestParseModelJSONMalformed(t *testing.T) {
	var result SEOResult
	if err := parseModelJSON("not json at all", &result); err == nil {
		t.Fatal("expected error for malformed output")
	}
}

func TestNewServiceRequiresKey(t *testing.T) {
	if _, err := NewService("", ""); err == nil {
		t.Fatal("expected error when API key is empty")
	}
}
