// File: error_test.go
// Title: Core Error Tests
// Description: Unit tests for Error construction, wrapping, codes and
//              severity derivation.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial tests
// - 2026-10-18 v0.2.0: Tests for asa codes and errors.As lookups

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	msg := "test error message"
	err := New(msg)

	if err == nil {
		t.Fatal("New() returned nil")
	}
	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() should not be empty")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "wrapper message",
			wantNil: true,
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original error"),
			message:  "wrapper message",
			wantMsg:  "wrapper message: original error",
			wantCode: CodeUnknown,
		},
		{
			name:     "wrap asa error keeps code",
			err:      New("unexpected token").WithCode(CodeAsaSyntax),
			message:  "parse main.asa",
			wantMsg:  "parse main.asa: unexpected token",
			wantCode: CodeAsaSyntax,
		},
		{
			name:     "wrap fmt-wrapped asa error keeps code",
			err:      fmt.Errorf("read: %w", New("too deep").WithCode(CodeAsaLimit)),
			message:  "parse",
			wantMsg:  "parse: read: too deep",
			wantCode: CodeAsaLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Wrap() = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if got.Code() != tt.wantCode {
				t.Errorf("Code() = %v, want %v", got.Code(), tt.wantCode)
			}
			if !errors.Is(got, tt.err) {
				t.Error("errors.Is() should find the wrapped error")
			}
		})
	}
}

func TestWithCodeDerivesSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeAsaSyntax, SeverityLow},
		{CodeAsaUnimplemented, SeverityLow},
		{CodeAsaLimit, SeverityHigh},
		{CodeAsaInternal, SeverityCritical},
		{CodeConfigError, SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}
}

func TestCodeHelpers(t *testing.T) {
	if got := CodeAsaSyntax.ExitCode(); got != 2 {
		t.Errorf("ExitCode() = %d, want 2", got)
	}
	if got := CodeInvalidConfig.ExitCode(); got != 4 {
		t.Errorf("ExitCode() = %d, want 4", got)
	}
}

func TestHasCodeAndGetCode(t *testing.T) {
	inner := New("bad token").WithCode(CodeAsaSyntax)
	outer := Wrap(inner, "check").WithCode(CodeInvalidInput)

	if !HasCode(outer, CodeAsaSyntax) {
		t.Error("HasCode() should find a code deeper in the chain")
	}
	if !HasCode(outer, CodeInvalidInput) {
		t.Error("HasCode() should find the outer code")
	}
	if HasCode(errors.New("plain"), CodeAsaSyntax) {
		t.Error("HasCode() on a plain error should be false")
	}
	if got := GetCode(fmt.Errorf("ctx: %w", inner)); got != CodeAsaSyntax {
		t.Errorf("GetCode() = %v, want %v", got, CodeAsaSyntax)
	}
	if got := GetSeverity(errors.New("plain")); got != SeverityMedium {
		t.Errorf("GetSeverity() = %v, want %v", got, SeverityMedium)
	}
}

func TestDetailsAndString(t *testing.T) {
	err := New("unexpected '('").
		WithCode(CodeAsaSyntax).
		WithOperation("parse").
		WithRequestID("run-1").
		WithDetails(map[string]interface{}{"line": 1, "column": 4})

	if v, ok := err.Detail("line"); !ok || v != 1 {
		t.Errorf("Detail(line) = %v, %v", v, ok)
	}

	details := err.Details()
	details["line"] = 99
	if v, _ := err.Detail("line"); v != 1 {
		t.Error("Details() must return a copy")
	}

	s := err.String()
	for _, want := range []string{"Code: ASA_SYNTAX", "Operation: parse", "RequestID: run-1", "column=4, line=1"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("eof"), "parse").WithCode(CodeAsaSyntax).WithDetail("offset", 7)

	data, mErr := json.Marshal(err)
	if mErr != nil {
		t.Fatalf("Marshal() error = %v", mErr)
	}

	var decoded map[string]interface{}
	if uErr := json.Unmarshal(data, &decoded); uErr != nil {
		t.Fatalf("Unmarshal() error = %v", uErr)
	}
	if decoded["code"] != "ASA_SYNTAX" {
		t.Errorf("code = %v, want ASA_SYNTAX", decoded["code"])
	}
	if decoded["cause"] != "eof" {
		t.Errorf("cause = %v, want eof", decoded["cause"])
	}
	if decoded["severity"] != "low" {
		t.Errorf("severity = %v, want low", decoded["severity"])
	}
}
