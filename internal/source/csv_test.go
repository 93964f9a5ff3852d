package source

import (
	"errors"
	"testing"
)

const sampleCSV = "iShares MSCI USA Islamic UCITS ETF\nFund Holdings as of 25-Aug-2026\nTicker,Name,Shares,Market Currency,Asset Class,Market Value\nAAPL,APPLE INC,\"1,200\",USD,Equity,\"250,000.00\"\nMSFT,MICROSOFT CORP,800,USD,Equity,\"200,000.00\"\n"

func TestParseHoldingsCSV_SkipsMetadataLines(t *testing.T) {
	raw, err := parseHoldingsCSV(sampleCSV, 2)
	if err != nil {
		t.Fatalf("parseHoldingsCSV() returned unexpected error: %v", err)
	}
	if raw.Header[0] != "Ticker" {
		t.Errorf("header = %v, want Ticker first", raw.Header)
	}
	if len(raw.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(raw.Records))
	}
	if raw.Records[0][2] != "1,200" {
		t.Errorf("quoted field = %q, want raw cell preserved", raw.Records[0][2])
	}
}

func TestParseHoldingsCSV_NoSkip(t *testing.T) {
	raw, err := parseHoldingsCSV("Ticker,Shares\nAAPL,100\n", 0)
	if err != nil {
		t.Fatalf("parseHoldingsCSV() returned unexpected error: %v", err)
	}
	if len(raw.Records) != 1 {
		t.Errorf("records = %d, want 1", len(raw.Records))
	}
}

func TestParseHoldingsCSV_TooShort(t *testing.T) {
	tests := []struct {
		name string
		text string
		skip int
	}{
		{"only metadata lines", "line one\nline two", 2},
		{"empty payload", "", 2},
		{"empty payload no skip", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseHoldingsCSV(tt.text, tt.skip)
			if !errors.Is(err, ErrShortCSV) {
				t.Errorf("error = %v, want ErrShortCSV", err)
			}
		})
	}
}

func TestDecodeText_UTF8(t *testing.T) {
	got := decodeText([]byte("Ticker,Name\nAAPL,Société Générale"))
	if got != "Ticker,Name\nAAPL,Société Générale" {
		t.Errorf("decodeText() altered valid UTF-8: %q", got)
	}
}

func TestDecodeText_Latin1Fallback(t *testing.T) {
	// "Société" encoded in Latin-1: é is 0xE9, which is invalid UTF-8.
	latin1 := []byte{'S', 'o', 'c', 'i', 0xE9, 't', 0xE9}
	got := decodeText(latin1)
	if got != "Société" {
		t.Errorf("decodeText() = %q, want %q", got, "Société")
	}
}
