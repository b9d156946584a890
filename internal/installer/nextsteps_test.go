package installer

import (
	"strings"
	"testing"
)

func TestNextSteps(t *testing.T) {
	md := NextSteps("demo", "", "")
	for _, want := range []string{
		"Extension created 🚀",
		"1. `cd demo`",
		"2. `npm run dev:https`",
		"Once the npm server is running, follow the instructions in `demo/README.md` to add it to your Looker instance.",
		DocsURL,
	} {
		if !strings.Contains(md, want) {
			t.Errorf("next steps missing %q:\n%s", want, md)
		}
	}

	if md := NextSteps("demo", "", "https://example.com/docs"); !strings.Contains(md, "https://example.com/docs") || strings.Contains(md, DocsURL) {
		t.Errorf("docs URL override not applied:\n%s", md)
	}
}

func TestNextSteps_PackageManager(t *testing.T) {
	md := NextSteps("demo", "pnpm", "")
	for _, want := range []string{"2. `pnpm run dev:https`", "Once the pnpm server is running"} {
		if !strings.Contains(md, want) {
			t.Errorf("next steps missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "`npm run") {
		t.Errorf("next steps still name npm:\n%s", md)
	}
}
