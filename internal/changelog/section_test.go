package changelog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() *Parser {
	return NewParser(NewLinkRewriter("PRFP", testTracker, testIssues), "github.com")
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	raw := RawSection{
		Line: 2,
		Text: "## 2.1.0 (2024-01-05)\n\n" +
			"Fixed [PRFP-9] :running_woman:\n\n" +
			"#### Bug Fix\n" +
			"- thing\n\n" +
			"## Committers: 2\n" +
			"- Zed (@zed)(https://x/zed))\n" +
			"- Jane (@jane)(https://x/jane))\n\n",
	}

	parsed, err := newTestParser().Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "2.1.0", parsed.Title)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), parsed.Date)
	assert.Equal(t, "2024-01-05", parsed.DateString())
	assert.Equal(t, 2, parsed.Line)
	assert.Equal(t,
		"Fixed [PRFP-9](https://tracker.example/issue/PRFP-9) :running:\n\n## Bug Fix\n- thing",
		parsed.Body)
	assert.Equal(t, []string{"jane", "zed"}, parsed.Aliases())
	assert.Empty(t, parsed.SkippedContributors)
	assert.NotContains(t, parsed.Body, "Committers")
}

func TestParser_Parse_TitleForms(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		heading   string
		wantTitle string
		wantDate  string
	}{
		"plain version": {
			heading:   "## 1.0.0 (2024-02-29)",
			wantTitle: "1.0.0",
			wantDate:  "2024-02-29",
		},
		"title with inner parenthetical": {
			heading:   "## 1.0.0 (beta) (2024-03-01)",
			wantTitle: "1.0.0 (beta)",
			wantDate:  "2024-03-01",
		},
		"extra spaces": {
			heading:   "##   v0.9 ( 2023-12-31 )  ",
			wantTitle: "v0.9",
			wantDate:  "2023-12-31",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			parsed, err := newTestParser().Parse(RawSection{Text: tt.heading + "\nbody\n"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, parsed.Title)
			assert.Equal(t, tt.wantDate, parsed.DateString())
			assert.Equal(t, "body", parsed.Body)
		})
	}
}

func TestParser_Parse_Rejections(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text    string
		wantErr error
	}{
		"no date": {
			text:    "## Unreleased\n\nWork in progress.\n",
			wantErr: ErrNoDate,
		},
		"empty heading": {
			text:    "## \nbody\n",
			wantErr: ErrNoHeading,
		},
		"not a heading": {
			text:    "body only\n",
			wantErr: ErrNoHeading,
		},
		"only a date": {
			text:    "## (2024-01-01)\n",
			wantErr: ErrNoHeading,
		},
		"impossible date": {
			text:    "## 1.0.0 (2024-02-30)\n",
			wantErr: ErrInvalidDate,
		},
		"non date parenthetical": {
			text:    "## 1.0.0 (soon)\n",
			wantErr: ErrInvalidDate,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := newTestParser().Parse(RawSection{Line: 7, Text: tt.text})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			var se *SectionError
			assert.ErrorAs(t, err, &se)
			assert.Contains(t, err.Error(), "line 7")
		})
	}
}

func TestParser_Parse_MalformedContributorSkipped(t *testing.T) {
	t.Parallel()

	raw := RawSection{Text: "## 1.0.0 (2024-01-01)\nBody\n\n#### Committers: 2\n- broken line\n- Ann ([@ann](https://github.com/ann))\n"}

	parsed, err := newTestParser().Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"ann"}, parsed.Aliases())
	assert.Equal(t, []string{"- broken line"}, parsed.SkippedContributors)
	assert.Equal(t, "Body", parsed.Body)
}

func TestParser_NilRewriter(t *testing.T) {
	t.Parallel()

	parsed, err := NewParser(nil, "").Parse(RawSection{Text: "## 1.0.0 (2024-01-01)\n[PRFP-1]\n#### Committers: 1\n- [@a](https://h/a)\n"})
	require.NoError(t, err)
	assert.Equal(t, "[PRFP-1]", parsed.Body)
	require.Len(t, parsed.Contributors, 1)
	assert.Equal(t, "https://github.com/a.png", parsed.Contributors[0].ImageURL)
}

func TestPromoteHeadings(t *testing.T) {
	t.Parallel()

	in := "#### A\n##### B\n### C\ntext #### D"
	assert.Equal(t, "## A\n##### B\n### C\ntext #### D", promoteHeadings(in))
}
