package util

import (
	"strings"
	"testing"
)

func TestSanitizeForCSV(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain", `"plain"`},
		{`with "quotes"`, `"with ""quotes"""`},
		{"comma, separated", `"comma, separated"`},
		{"", `""`},
	}
	for _, c := range cases {
		if got := SanitizeForCSV(c.in); got != c.want {
			t.Fatalf("SanitizeForCSV(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCSVToHTMLTable(t *testing.T) {
	got := CSVToHTMLTable("Giver,Feedback\n\"Alice\",\"<b>bold</b>\"\n")

	if !strings.HasPrefix(got, `<table class="table table-bordered table-striped table-condensed">`) {
		t.Fatalf("table wrapper missing:\n%s", got)
	}
	if !strings.HasSuffix(got, "</table>") {
		t.Fatalf("table not closed:\n%s", got)
	}
	if !strings.Contains(got, "<tr><td>Giver</td><td>Feedback</td></tr>") {
		t.Fatalf("header row missing:\n%s", got)
	}
	if strings.Contains(got, "<b>") {
		t.Fatalf("cell content must be escaped:\n%s", got)
	}
	if !strings.Contains(got, "&lt;b&gt;bold&lt;/b&gt;") {
		t.Fatalf("escaped cell missing:\n%s", got)
	}
}

func TestCSVToHTMLTableRaggedRows(t *testing.T) {
	got := CSVToHTMLTable("a,b,c\nd\n")
	if !strings.Contains(got, "<tr><td>d</td></tr>") {
		t.Fatalf("short rows should still render:\n%s", got)
	}
}
