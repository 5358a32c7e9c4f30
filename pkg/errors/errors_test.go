package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidPad, "pad must not be negative, got %v", -1.5)

	if err.Code != ErrCodeInvalidPad {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidPad)
	}
	if err.Message != "pad must not be negative, got -1.5" {
		t.Errorf("Message = %q", err.Message)
	}
	if !strings.HasPrefix(err.Error(), "INVALID_PAD: ") {
		t.Errorf("Error() = %q, want INVALID_PAD prefix", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := Wrap(ErrCodeMeasure, cause, "measure %q", "hello")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "underlying failure") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidBox, "box has zero width")

	if !Is(err, ErrCodeInvalidBox) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeInvalidPad) {
		t.Error("Is() should not match a different code")
	}
	if Is(nil, ErrCodeInvalidBox) {
		t.Error("Is(nil) should be false")
	}
	if Is(fmt.Errorf("plain"), ErrCodeInvalidBox) {
		t.Error("Is() should be false for plain errors")
	}
}

func TestIsUnwrapsChain(t *testing.T) {
	inner := New(ErrCodeFontNotFound, "no usable font")
	outer := fmt.Errorf("load style: %w", inner)

	if !Is(outer, ErrCodeFontNotFound) {
		t.Error("Is() should find the code through fmt.Errorf wrapping")
	}
	if GetCode(outer) != ErrCodeFontNotFound {
		t.Errorf("GetCode() = %s, want %s", GetCode(outer), ErrCodeFontNotFound)
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidArea, "bad area")); got != ErrCodeInvalidArea {
		t.Errorf("GetCode() = %s, want %s", got, ErrCodeInvalidArea)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidColumn, "column %q not included in data", "size")
	if got := UserMessage(err); got != `column "size" not included in data` {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := fmt.Errorf("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
