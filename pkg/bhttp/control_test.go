package bhttp

import (
	"errors"
	"strings"
	"testing"
)

func TestInformativeResponse_StatusRange(t *testing.T) {
	tests := []struct {
		code    int
		wantErr bool
	}{
		{99, true},
		{100, false},
		{103, false},
		{199, false},
		{200, true},
		{50, true},
		{300, true},
		{-1, true},
	}

	for _, tt := range tests {
		_, err := NewInformativeResponse(tt.code, EmptyFields)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewInformativeResponse(%d) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			continue
		}
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrInvalidStatusCode) {
			t.Errorf("NewInformativeResponse(%d) error = %v, want ErrInvalidStatusCode", tt.code, err)
		}
		if !strings.Contains(err.Error(), "status code") {
			t.Errorf("NewInformativeResponse(%d) error = %q, want mention of status code", tt.code, err)
		}
	}
}

func TestResponseControlDataBuilder_FinalStatusRange(t *testing.T) {
	tests := []struct {
		code    int
		wantErr bool
	}{
		{0, true},
		{180, true},
		{199, true},
		{200, false},
		{404, false},
		{599, false},
		{600, true},
	}

	for _, tt := range tests {
		c, err := NewResponseControlDataBuilder().SetFinalStatusCode(tt.code).Build()
		if (err != nil) != tt.wantErr {
			t.Errorf("Build() with final %d error = %v, wantErr %v", tt.code, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !errors.Is(err, ErrInvalidStatusCode) || !strings.Contains(err.Error(), "status code") {
				t.Errorf("Build() with final %d error = %v", tt.code, err)
			}
			continue
		}
		if c.FinalStatusCode() != tt.code {
			t.Errorf("FinalStatusCode() = %d, want %d", c.FinalStatusCode(), tt.code)
		}
	}
}

func TestResponseControlDataBuilder_ZeroInformative(t *testing.T) {
	_, err := NewResponseControlDataBuilder().
		AddInformativeResponse(InformativeResponse{}).
		SetFinalStatusCode(200).
		Build()
	if !errors.Is(err, ErrInvalidStatusCode) {
		t.Errorf("Build() error = %v, want ErrInvalidStatusCode", err)
	}
}

func TestResponseControlData_InformativeOrder(t *testing.T) {
	b := NewResponseControlDataBuilder().SetFinalStatusCode(200)
	for _, code := range []int{100, 102, 103} {
		ir, err := NewInformativeResponse(code, EmptyFields)
		if err != nil {
			t.Fatalf("NewInformativeResponse(%d) error = %v", code, err)
		}
		b.AddInformativeResponse(ir)
	}
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got := c.InformativeResponses()
	if len(got) != 3 {
		t.Fatalf("len(InformativeResponses()) = %d, want 3", len(got))
	}
	for i, code := range []int{100, 102, 103} {
		if got[i].StatusCode() != code {
			t.Errorf("InformativeResponses()[%d].StatusCode() = %d, want %d", i, got[i].StatusCode(), code)
		}
	}

	// The returned slice is a copy.
	got[0] = InformativeResponse{}
	if c.InformativeResponses()[0].StatusCode() != 100 {
		t.Error("InformativeResponses() exposes internal slice")
	}

	// Builder reuse does not alter built values.
	ir, _ := NewInformativeResponse(101, EmptyFields)
	b.AddInformativeResponse(ir)
	if len(c.InformativeResponses()) != 3 {
		t.Error("builder mutation leaked into built control data")
	}
}

func TestRequestControlData_Equal(t *testing.T) {
	a := RequestControlData{Method: "GET", Scheme: "https", Authority: "example.com", Path: "/"}
	if !a.Equal(a) {
		t.Error("Equal() = false for identical control data")
	}
	b := a
	b.Path = "/other"
	if a.Equal(b) {
		t.Error("Equal() = true for different paths")
	}
	resp, _ := NewResponseControlDataBuilder().SetFinalStatusCode(200).Build()
	if a.Equal(resp) || resp.Equal(a) {
		t.Error("request and response control data compared equal")
	}
}

func TestRequestControlData_AppendBinary(t *testing.T) {
	c := RequestControlData{Method: "GET", Scheme: "https", Path: "/"}
	got, err := c.AppendBinary(nil)
	if err != nil {
		t.Fatalf("AppendBinary() error = %v", err)
	}
	want := "\x03GET\x05https\x00\x01/"
	if string(got) != want {
		t.Errorf("AppendBinary() = %q, want %q", got, want)
	}
}
