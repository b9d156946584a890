package installer

import (
	"fmt"
	"strings"
)

// DocsURL is the extension framework documentation.
const DocsURL = "https://cloud.google.com/looker/docs/intro-to-extension-framework"

// NextSteps returns the markdown shown after a successful generation.
// An empty packageManager falls back to DefaultPackageManager and an empty
// docsURL to DocsURL.
func NextSteps(projectName, packageManager, docsURL string) string {
	if packageManager == "" {
		packageManager = DefaultPackageManager
	}
	if docsURL == "" {
		docsURL = DocsURL
	}

	var b strings.Builder
	b.WriteString("# Extension created 🚀\n\n")
	b.WriteString("To run your new extension, run the following commands:\n\n")
	fmt.Fprintf(&b, "1. `cd %s`\n", projectName)
	fmt.Fprintf(&b, "2. `%s run dev:https`\n\n", packageManager)
	fmt.Fprintf(&b, "Once the %s server is running, follow the instructions in `%s/README.md` to add it to your Looker instance.\n\n", packageManager, projectName)
	fmt.Fprintf(&b, "For documentation see: %s\n", docsURL)
	return b.String()
}
