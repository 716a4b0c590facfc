package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseContributor(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		line   string
		want   Contributor
		wantOK bool
	}{
		"name with parenthesised alias and url": {
			line: "- Jane (@jane)(https://x/jane))",
			want: Contributor{
				Name:     "Jane",
				Alias:    "jane",
				URL:      "https://x/jane",
				ImageURL: "https://github.com/jane.png",
			},
			wantOK: true,
		},
		"lerna style with name": {
			line: "- Jane Doe ([@jdoe](https://github.com/jdoe))",
			want: Contributor{
				Name:     "Jane Doe",
				Alias:    "jdoe",
				URL:      "https://github.com/jdoe",
				ImageURL: "https://github.com/jdoe.png",
			},
			wantOK: true,
		},
		"lerna style without name": {
			line: "- [@bot](https://github.com/bot)",
			want: Contributor{
				Name:     "bot",
				Alias:    "bot",
				URL:      "https://github.com/bot",
				ImageURL: "https://github.com/bot.png",
			},
			wantOK: true,
		},
		"leading whitespace tolerated": {
			line: "   - Ann ([@ann](https://github.com/ann))",
			want: Contributor{
				Name:     "Ann",
				Alias:    "ann",
				URL:      "https://github.com/ann",
				ImageURL: "https://github.com/ann.png",
			},
			wantOK: true,
		},
		"missing url": {
			line:   "- Jane (@jane)",
			wantOK: false,
		},
		"missing alias": {
			line:   "- Jane (https://x/jane)",
			wantOK: false,
		},
		"plain bullet": {
			line:   "- thanks everyone",
			wantOK: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseContributor(tt.line, "github.com")
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAvatarURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://github.com/jane.png", AvatarURL("github.com", "jane"))
	assert.Equal(t, "https://gitlab.com/jane.png", AvatarURL("https://gitlab.com/", "jane"))
}

func TestExtractCommitters(t *testing.T) {
	t.Parallel()

	body := "\nFixed things.\n\n#### Committers: 3\n" +
		"- Zed ([@zed](https://github.com/zed))\n" +
		"- not a contributor\n" +
		"- Amy ([@amy](https://github.com/amy))\n" +
		"\nTrailing note.\n"

	block := extractCommitters(body, "github.com")

	assert.Equal(t, "\nFixed things.\n\nTrailing note.\n", block.body)
	assert.Equal(t, []string{"- not a contributor"}, block.skipped)
	if assert.Len(t, block.contributors, 2) {
		assert.Equal(t, "amy", block.contributors[0].Alias)
		assert.Equal(t, "zed", block.contributors[1].Alias)
	}
}

func TestExtractCommitters_NoBlock(t *testing.T) {
	t.Parallel()

	block := extractCommitters("just text\n- a list item\n", "github.com")
	assert.Equal(t, "just text\n- a list item\n", block.body)
	assert.Empty(t, block.contributors)
	assert.Empty(t, block.skipped)
}
