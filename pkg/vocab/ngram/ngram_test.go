package ngram

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/vocab/pkg/vocab/internalerr"
)

func TestGenerateUnigramsAndBigrams(t *testing.T) {
	gen, err := NewGenerator(1, 2, "_")
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	got := gen.Generate([]string{"a", "b", "c", "d"})
	want := []string{"a", "a_b", "b", "b_c", "c", "c_d", "d"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Generate = %v, want %v", got, want)
	}
}

func TestGenerateTruncatesTrailingWindows(t *testing.T) {
	gen, err := NewGenerator(2, 3, "_")
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	// No order-3 gram starting at "b" (only 2 tokens remain) and no
	// order-2 gram starting at "c".
	got := gen.Generate([]string{"a", "b", "c"})
	want := []string{"a_b", "a_b_c", "b_c"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Generate = %v, want %v", got, want)
	}
}

func TestGenerateShorterThanMin(t *testing.T) {
	gen, err := NewGenerator(3, 5, "_")
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	if got := gen.Generate([]string{"a", "b"}); len(got) != 0 {
		t.Errorf("Expected no n-grams for short input, got %v", got)
	}
}

func TestGenerateLengthBetweenMinAndMax(t *testing.T) {
	// len=2 is below max=4 but still >= min=1; the old fixed-size
	// estimate would underflow here, the generator must not.
	gen, err := NewGenerator(1, 4, "_")
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	got := gen.Generate([]string{"a", "b"})
	want := []string{"a", "a_b", "b"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Generate = %v, want %v", got, want)
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	gen, err := NewGenerator(1, 2, "_")
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	if got := gen.Generate(nil); len(got) != 0 {
		t.Errorf("Expected no n-grams for empty input, got %v", got)
	}
}

func TestGenerateSingleOrder(t *testing.T) {
	gen, err := NewGenerator(2, 2, "_")
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	got := gen.Generate([]string{"a", "b", "c"})
	want := []string{"a_b", "b_c"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Generate = %v, want %v", got, want)
	}
}

func TestGenerateCustomDelimiter(t *testing.T) {
	gen, err := NewGenerator(2, 2, " ")
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	got := gen.Generate([]string{"new", "york"})
	want := []string{"new york"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Generate = %v, want %v", got, want)
	}
}

func TestGenerateDefaultDelimiter(t *testing.T) {
	gen, err := NewGenerator(2, 2, "")
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	if gen.Delimiter() != DefaultDelimiter {
		t.Errorf("Delimiter = %q, want %q", gen.Delimiter(), DefaultDelimiter)
	}
}

func TestNewGeneratorValidation(t *testing.T) {
	cases := []struct {
		name     string
		min, max int
	}{
		{"zero min", 0, 2},
		{"negative min", -1, 2},
		{"max below min", 3, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewGenerator(tc.min, tc.max, "_")
			if err == nil {
				t.Fatal("Expected configuration error, got nil")
			}
			if !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
