package common

import (
	"testing"
)

func TestParseAmount_SimpleNumber(t *testing.T) {
	result, err := ParseAmount("123.45")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "123.45" {
		t.Errorf("Expected '123.45', got '%s'", result.String())
	}
}

func TestParseAmount_AccountingParentheses(t *testing.T) {
	result, err := ParseAmount("(123.45)")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "-123.45" {
		t.Errorf("Expected '-123.45', got '%s'", result.String())
	}
}

func TestParseAmount_CurrencyAndThousands(t *testing.T) {
	result, err := ParseAmount("$1,234.56")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "1234.56" {
		t.Errorf("Expected '1234.56', got '%s'", result.String())
	}
}

func TestParseAmount_NegativeSign(t *testing.T) {
	result, err := ParseAmount("-123.45")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "-123.45" {
		t.Errorf("Expected '-123.45', got '%s'", result.String())
	}
}

func TestParseAmount_ParenthesesWithSymbols(t *testing.T) {
	result, err := ParseAmount("($1,000.00)")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "-1000" {
		t.Errorf("Expected '-1000', got '%s'", result.String())
	}
}

func TestParseAmount_NonNumeric(t *testing.T) {
	_, err := ParseAmount("ABC")
	if err == nil {
		t.Error("Expected error for non-numeric input, got nil")
	}
}

func TestParseAmount_Empty(t *testing.T) {
	_, err := ParseAmount("")
	if err == nil {
		t.Error("Expected error for empty input, got nil")
	}
}

func TestParseDate_ISO(t *testing.T) {
	result, err := ParseDate("2024-03-01")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Year() != 2024 || result.Month() != 3 || result.Day() != 1 {
		t.Errorf("Expected 2024-03-01, got %v", result)
	}
}

func TestParseDate_AmbiguousSlashIsMonthFirst(t *testing.T) {
	result, err := ParseDate("03/04/2024")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Month() != 3 || result.Day() != 4 {
		t.Errorf("Expected March 4, got month %d day %d", result.Month(), result.Day())
	}
}

func TestParseDate_TwoDigitYear(t *testing.T) {
	result, err := ParseDate("3/4/24")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Year() != 2024 {
		t.Errorf("Expected year 2024, got %d", result.Year())
	}
}

func TestParseDate_Dashes(t *testing.T) {
	result, err := ParseDate("03-04-2024")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Month() != 3 || result.Day() != 4 {
		t.Errorf("Expected March 4, got month %d day %d", result.Month(), result.Day())
	}
}

func TestParseDate_TextualMonth(t *testing.T) {
	result, err := ParseDate("March 4, 2024")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Month() != 3 || result.Day() != 4 || result.Year() != 2024 {
		t.Errorf("Expected 2024-03-04, got %v", result)
	}
}

func TestParseDate_Phrase(t *testing.T) {
	result, err := ParseDate("Posted 03/04/2024 pending")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Month() != 3 || result.Day() != 4 {
		t.Errorf("Expected March 4, got %v", result)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("not a date")
	if err == nil {
		t.Error("Expected error for invalid date, got nil")
	}
}

func TestLooksLikeDate_EmptyIsFalse(t *testing.T) {
	if LooksLikeDate("") {
		t.Error("Expected false for empty input")
	}
}

func TestLooksLikeDate_Shapes(t *testing.T) {
	for _, s := range []string{"2024-03-01", "3/4/24", "03-04-2024", "paid on 01/05/2024"} {
		if !LooksLikeDate(s) {
			t.Errorf("Expected %q to look like a date", s)
		}
	}
	if LooksLikeDate("COFFEE SHOP") {
		t.Error("Expected plain text not to look like a date")
	}
}

func TestLooksLikeAmount_EmptyIsFalse(t *testing.T) {
	if LooksLikeAmount("") {
		t.Error("Expected false for empty input")
	}
}

func TestLooksLikeAmount_Shapes(t *testing.T) {
	for _, s := range []string{"-4.50", "$1,234.56", "100"} {
		if !LooksLikeAmount(s) {
			t.Errorf("Expected %q to look like an amount", s)
		}
	}
	if LooksLikeAmount("pending") {
		t.Error("Expected plain text not to look like an amount")
	}
}

func TestFindDate_EarliestMatchWins(t *testing.T) {
	match, start, _, ok := FindDate("2024-03-01 then 01/05/2024")
	if !ok {
		t.Fatal("Expected a date match")
	}
	if match != "2024-03-01" || start != 0 {
		t.Errorf("Expected leading ISO date, got %q at %d", match, start)
	}
}
