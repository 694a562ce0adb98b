package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "borrow conflict",
			code:    "R001",
			wantMsg: "Root state already borrowed",
			wantCat: CategoryReactive,
		},
		{
			name:    "dom error",
			code:    "R050",
			wantMsg: "Cannot replace a detached node",
			wantCat: CategoryDOM,
		},
		{
			name:    "config error",
			code:    "R100",
			wantMsg: "Invalid configuration",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "R999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "demo %q not found", "bogus")
	if err.Message != `demo "bogus" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestCellsError_Error(t *testing.T) {
	err := New("R001")
	if got, want := err.Error(), "R001: Root state already borrowed"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := New("R100").Wrap(stderrors.New("bad yaml"))
	if got, want := wrapped.Error(), "R100: Invalid configuration: bad yaml"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := &CellsError{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestErrorsIsByCode(t *testing.T) {
	err := FromError(stderrors.New("boom"), "R070")
	if !stderrors.Is(err, New("R070")) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(err, New("R001")) {
		t.Error("errors.Is should not match a different code")
	}
	var ce *CellsError
	if !stderrors.As(err, &ce) || ce.Code != "R070" {
		t.Errorf("errors.As = %v", ce)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "R001") != nil {
		t.Error("FromError(nil) should be nil")
	}
	orig := New("R050")
	if FromError(orig, "R001") != orig {
		t.Error("FromError should return an existing CellsError unchanged")
	}
}

func TestRegister(t *testing.T) {
	Register("X900", ErrorTemplate{Category: CategoryCLI, Message: "custom"})
	if got := New("X900").Message; got != "custom" {
		t.Errorf("Message = %q, want custom", got)
	}
	found := false
	for _, c := range GetAllCodes() {
		if c == "X900" {
			found = true
		}
	}
	if !found {
		t.Error("GetAllCodes should include registered code")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("R001").WithSuggestion("release state before awaiting").Format()
	for _, want := range []string{"ERROR R001: Root state already borrowed", "Hint: release state before awaiting"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}

	var buf bytes.Buffer
	Fprint(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("Fprint() = %q", buf.String())
	}
}

func TestFormatJSON(t *testing.T) {
	var got map[string]string
	if err := json.Unmarshal([]byte(New("R050").FormatJSON()), &got); err != nil {
		t.Fatalf("FormatJSON() not valid JSON: %v", err)
	}
	if got["code"] != "R050" || got["category"] != "dom" {
		t.Errorf("FormatJSON() = %v", got)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q longer than width", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}
