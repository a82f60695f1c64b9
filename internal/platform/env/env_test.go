package env

import (
	"reflect"
	"testing"
	"time"
)

func TestStringDefault(t *testing.T) {
	if got := String("TESSERA_TEST_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("got=%q, want fallback", got)
	}
	t.Setenv("TESSERA_TEST_SET", "value")
	if got := String("TESSERA_TEST_SET", "fallback"); got != "value" {
		t.Fatalf("got=%q, want value", got)
	}
}

func TestStrings(t *testing.T) {
	t.Setenv("TESSERA_TEST_LIST", "a, b,,c ")
	want := []string{"a", "b", "c"}
	if got := Strings("TESSERA_TEST_LIST", nil); !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v, want %v", got, want)
	}
	def := []string{"x"}
	if got := Strings("TESSERA_TEST_LIST_UNSET", def); !reflect.DeepEqual(got, def) {
		t.Fatalf("got=%v, want default", got)
	}
}

func TestIntParseError(t *testing.T) {
	t.Setenv("TESSERA_TEST_INT", "not-a-number")
	if _, err := Int("TESSERA_TEST_INT", 1); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDuration(t *testing.T) {
	t.Setenv("TESSERA_TEST_DUR", "250ms")
	got, err := Duration("TESSERA_TEST_DUR", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 250*time.Millisecond {
		t.Fatalf("got=%v, want 250ms", got)
	}
}

func TestBoolDefault(t *testing.T) {
	got, err := Bool("TESSERA_TEST_BOOL_UNSET", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Fatalf("got=false, want default true")
	}
}
