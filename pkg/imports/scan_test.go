package imports

import (
	"testing"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sources(imps []Import) []string {
	out := make([]string, 0, len(imps))
	for _, imp := range imps {
		out = append(out, imp.Source)
	}
	return out
}

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single package import",
			text: `#import "@preview/test:0.1.0": *`,
			want: []string{"@preview/test:0.1.0"},
		},
		{
			name: "file and package imports",
			text: "#import \"lib.typ\": helper\n= Title\n#import \"@local/util:1.0.0\" as util\n",
			want: []string{"lib.typ", "@local/util:1.0.0"},
		},
		{
			name: "multi-line import list",
			text: "#import \"@preview/a:1.0.0\": (\n  one,\n  two,\n)\n#import \"@preview/b:2.0.0\"\n",
			want: []string{"@preview/a:1.0.0", "@preview/b:2.0.0"},
		},
		{
			name: "line comment",
			text: "// #import \"@preview/hidden:1.0.0\"\n#import \"@preview/shown:1.0.0\"",
			want: []string{"@preview/shown:1.0.0"},
		},
		{
			name: "nested block comment",
			text: "/* outer /* inner */ #import \"@preview/hidden:1.0.0\" */\n#import \"@preview/shown:1.0.0\"",
			want: []string{"@preview/shown:1.0.0"},
		},
		{
			name: "raw block",
			text: "```typ\n#import \"@preview/hidden:1.0.0\"\n```\nand `#import \"x\"` inline",
			want: nil,
		},
		{
			name: "escaped hash",
			text: `\#import "@preview/hidden:1.0.0"`,
			want: nil,
		},
		{
			name: "inside string",
			text: "#let s = \"#import \\\"@preview/hidden:1.0.0\\\"\"\n#import \"@preview/shown:1.0.0\"",
			want: []string{"@preview/shown:1.0.0"},
		},
		{
			name: "inside code block",
			text: "#{\n  import \"@preview/hidden:1.0.0\"\n}\n#import \"@preview/shown:1.0.0\"",
			want: []string{"@preview/shown:1.0.0"},
		},
		{
			name: "inside content block",
			text: "#box[#import \"@preview/hidden:1.0.0\"]\n#import \"@preview/shown:1.0.0\"",
			want: []string{"@preview/shown:1.0.0"},
		},
		{
			name: "after function with content",
			text: "#show: doc => [\n  #doc\n]\n#text(red)[hi] #import \"@preview/same-line:1.0.0\"",
			want: []string{"@preview/same-line:1.0.0"},
		},
		{
			name: "links are not comments",
			text: "see https://typst.app #import \"@preview/linked:1.0.0\"",
			want: []string{"@preview/linked:1.0.0"},
		},
		{
			name: "import of a variable",
			text: "#import mod: x\n#import \"@preview/next:1.0.0\"",
			want: []string{"@preview/next:1.0.0"},
		},
		{
			name: "importer is not a keyword",
			text: `#importer("@preview/nope:1.0.0")`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.text)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, sources(got))
		})
	}
}

func TestImportLine(t *testing.T) {
	text := "= Doc\n\n#import \"@preview/a:1.0.0\""
	imps := Scan(text)
	require.Len(t, imps, 1)
	assert.Equal(t, 3, imps[0].Line(text))
	assert.True(t, imps[0].IsPackage())
}

func TestPackageSpecs(t *testing.T) {
	text := "#import \"lib.typ\"\n#import \"@preview/ok:0.1.0\"\n#import \"@preview/broken\"\n"

	specs, errs := PackageSpecs(text)

	assert.Equal(t, []types.PackageSpec{
		{Namespace: "preview", Name: "ok", Version: types.MustParseVersion("0.1.0")},
	}, specs)
	require.Len(t, errs, 1)
	assert.True(t, errors.IsErrorCode(errs[0], errors.ErrPackageSpecInvalid))
	assert.Equal(t, "@preview/broken", errors.GetErrorDetails(errs[0])[errors.DetailPackage])
	assert.Equal(t, 3, errors.GetErrorDetails(errs[0])[errors.DetailLine])
}
