package twgroup

import (
	stderrors "errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aledsdavies/twgroup/core/ast"
	"github.com/aledsdavies/twgroup/core/errors"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"flat group", "md:(pl-3 pt-2)", "md:pl-3 md:pt-2"},
		{"multiple flat groups", "sm:(m-1 p-2) lg:(m-4 p-6)", "sm:m-1 sm:p-2 lg:m-4 lg:p-6"},
		{"nested groups", "hover:(bg-red-500 md:(pl-3 pt-2))", "hover:bg-red-500 hover:md:pl-3 hover:md:pt-2"},
		{"deeply nested groups", "focus:(hover:(md:(underline text-lg)))", "focus:hover:md:underline focus:hover:md:text-lg"},
		{"plain classes", "text-center font-bold", "text-center font-bold"},
		{"extra whitespace inside group", "md:(   pl-3   pt-2  )", "md:pl-3 md:pt-2"},
		{"whitespace normalised", "  a \t b\n\nc  ", "a b c"},
		{"empty input", "", ""},
		{"empty group vanishes", "a sm:() b", "a b"},
		{"only an empty group", "md:()", ""},
		{"mixed plain and grouped", "flex md:(block p-4) text-sm", "flex md:block md:p-4 text-sm"},
		{"arbitrary value brackets", "md:(bg-[url(/a b.png)] w-[calc(100%-1rem)])", "md:bg-[url(/a b.png)] md:w-[calc(100%-1rem)]"},
		{"no inserted separator", "group-(hover focus)", "group-hover group-focus"},
		{"unterminated bracket absorbs rest", "a [b (c", "a [b (c"},
		{"important modifier after bracket", "md:(w-[1px]!)", "md:w-[1px]!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.input)
			if err != nil {
				t.Fatalf("Expand(%q) error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Expand(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestExpandUnbalanced(t *testing.T) {
	for _, input := range []string{
		"md:(pl-3",
		")md:(pl-3)",
		"md:(a))",
		"(a b)",
		"md: (a)",
		"a:(b:(c)",
	} {
		t.Run(input, func(t *testing.T) {
			got, err := Expand(input)
			if !stderrors.Is(err, errors.UnbalancedGrouping) {
				t.Fatalf("expected UNBALANCED_GROUPING, got %v", err)
			}
			if diff := cmp.Diff("", got); diff != "" {
				t.Errorf("expected no partial output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpandIdempotentOnFlatOutput(t *testing.T) {
	once, err := Expand("hover:(bg-red-500 md:(pl-3 pt-2)) flex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := Expand(once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second expansion changed output (-want +got):\n%s", diff)
	}
}

func TestExpandTokensMatchesWordCount(t *testing.T) {
	input := "a x:(b [c d] y:(e z:()) f) g"
	root, err := Parse(input, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tokens, err := ExpandTokens(input, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a", "x:b", "x:[c d]", "x:y:e", "x:f", "g"}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ast.CountWords(root), len(tokens)); diff != "" {
		t.Errorf("entry count mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := fmt.Sprintf("v%d:(a b:(c%d))", i, i)
			want := fmt.Sprintf("v%d:a v%d:b:c%d", i, i, i)
			got, err := Expand(input)
			if err != nil {
				errs <- err
				return
			}
			if got != want {
				errs <- fmt.Errorf("Expand(%q) = %q, want %q", input, got, want)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
