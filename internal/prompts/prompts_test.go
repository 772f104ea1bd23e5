package prompts

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/sant0-9/essaypolish/internal/essay"
)

func request(t essay.Type, content string, opts ...essay.Option) essay.Request {
	return essay.Request{
		Content:   content,
		Type:      t,
		Level:     essay.Medium,
		InputType: essay.Paragraph,
		Options:   opts,
	}
}

func TestBuildExactOutput(t *testing.T) {
	got, err := Build(request(essay.Argumentative, "Hello world", essay.Structure))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	want := `Please act as an expert English writing tutor specializing in Chinese high school education.
Analyze the following 段落 and provide detailed polishing suggestions:

【Focus Areas】
- Logical flow between paragraphs
- Thesis statement clarity

【Content to Analyze】
Hello world

【Output Requirements】
1. 修改建议 (中文)
2. Revised version
3. 修改说明 (英文)`

	if got != want {
		t.Errorf("Build() =\n%s\nwant\n%s", got, want)
	}
}

func TestBuildContentAfterMarker(t *testing.T) {
	got, err := Build(request(essay.Argumentative, "Hello world", essay.Structure))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	marker := strings.Index(got, "【Content to Analyze】")
	content := strings.Index(got, "Hello world")
	if marker < 0 || content < marker {
		t.Errorf("content should follow the marker, marker=%d content=%d", marker, content)
	}
}

func TestBuildSelectsOnlyChosenBlocks(t *testing.T) {
	tests := []struct {
		name    string
		typ     essay.Type
		opts    []essay.Option
		present []essay.Option
		absent  []essay.Option
	}{
		{
			name:    "argumentative subset",
			typ:     essay.Argumentative,
			opts:    []essay.Option{essay.Grammar},
			present: []essay.Option{essay.Grammar},
			absent:  []essay.Option{essay.Structure, essay.Vocabulary},
		},
		{
			name:    "continuation all",
			typ:     essay.Continuation,
			opts:    []essay.Option{essay.Coherence, essay.Vividness, essay.Climax},
			present: []essay.Option{essay.Coherence, essay.Vividness, essay.Climax},
		},
		{
			name:    "option from other type ignored",
			typ:     essay.Argumentative,
			opts:    []essay.Option{essay.Climax, essay.Vocabulary},
			present: []essay.Option{essay.Vocabulary},
			absent:  []essay.Option{essay.Structure, essay.Grammar},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(request(tt.typ, "text", tt.opts...))
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			for _, o := range tt.present {
				block, _ := FocusArea(tt.typ, o)
				if strings.Count(got, block) != 1 {
					t.Errorf("expected block for %s exactly once", o)
				}
			}
			for _, o := range tt.absent {
				block, _ := FocusArea(tt.typ, o)
				if strings.Contains(got, block) {
					t.Errorf("unexpected block for %s", o)
				}
			}
		})
	}
}

func TestBuildIgnoresUnknownOption(t *testing.T) {
	withUnknown, err := Build(request(essay.Argumentative, "text", essay.Structure, essay.Climax, essay.Option("bogus")))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	plain, _ := Build(request(essay.Argumentative, "text", essay.Structure))
	if withUnknown != plain {
		t.Error("unknown options should not change the output")
	}
	if strings.Contains(withUnknown, "Suspense building") {
		t.Error("climax bullets must not appear for argumentative essays")
	}
}

func TestBuildUnknownType(t *testing.T) {
	_, err := Build(request(essay.Type("poem"), "text", essay.Structure))
	if !errors.Is(err, essay.ErrUnknownType) {
		t.Errorf("Build() error = %v, want ErrUnknownType", err)
	}
}

func TestBuildUnknownInputType(t *testing.T) {
	for _, it := range []essay.InputType{-1, essay.InputType(len(essay.InputTypes))} {
		req := request(essay.Argumentative, "text", essay.Structure)
		req.InputType = it

		got, err := Build(req)
		if !errors.Is(err, essay.ErrUnknownInputType) {
			t.Errorf("Build(input type %d) error = %v, want ErrUnknownInputType", int(it), err)
		}
		if got != "" {
			t.Errorf("Build(input type %d) returned %q, want no prompt", int(it), got)
		}
	}
}

func TestFocusArea(t *testing.T) {
	for _, typ := range essay.Types {
		for _, o := range typ.Options() {
			if block, ok := FocusArea(typ, o); !ok || !strings.HasPrefix(block, "- ") {
				t.Errorf("FocusArea(%s, %s) = %q, %v", typ, o, block, ok)
			}
		}
	}

	if _, ok := FocusArea(essay.Continuation, essay.Structure); ok {
		t.Error("structure should not belong to continuation")
	}
	if _, ok := FocusArea(essay.Type("poem"), essay.Climax); ok {
		t.Error("unknown type should have no focus areas")
	}
}

func TestBuildIdempotent(t *testing.T) {
	req := request(essay.Continuation, "The door creaked open.", essay.Vividness, essay.Coherence)
	first, _ := Build(req)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Build(req)
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if r != first {
			t.Errorf("call %d differs from first call", i)
		}
	}
}

func TestBuildOptionOrder(t *testing.T) {
	ab, _ := Build(request(essay.Argumentative, "text", essay.Structure, essay.Grammar))
	ba, _ := Build(request(essay.Argumentative, "text", essay.Grammar, essay.Structure))

	if ab == ba {
		t.Fatal("order should affect output")
	}
	if len(ab) != len(ba) {
		t.Error("reordering should not change content length")
	}

	structure, _ := FocusArea(essay.Argumentative, essay.Structure)
	grammar, _ := FocusArea(essay.Argumentative, essay.Grammar)
	if strings.Index(ab, structure) > strings.Index(ab, grammar) {
		t.Error("structure should come first in ab")
	}
	if strings.Index(ba, grammar) > strings.Index(ba, structure) {
		t.Error("grammar should come first in ba")
	}
}

func TestBuildUsesInputTypeLabel(t *testing.T) {
	for _, it := range essay.InputTypes {
		req := request(essay.Argumentative, "text", essay.Structure)
		req.InputType = it
		got, _ := Build(req)
		if !strings.Contains(got, "Analyze the following "+it.Label()+" and provide") {
			t.Errorf("missing label %q", it.Label())
		}
	}
}

func TestBuildIgnoresLevel(t *testing.T) {
	req := request(essay.Argumentative, "text", essay.Structure)
	req.Level = essay.Basic
	basic, _ := Build(req)
	req.Level = essay.Advanced
	advanced, _ := Build(req)
	if basic != advanced {
		t.Error("polish level should not change the output")
	}
}
