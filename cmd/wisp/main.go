// Command wisp is the browser's entrypoint: one positional URL argument,
// no flags, exit code 0 on quit. Grounded on browser.py's
// `if __name__ == "__main__"` block (argv[1] as the start URL, falling
// back to a local file) and willow's scene.Run wiring (window setup then
// a blocking RunGame call).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hearthframe/wisp/chrome"
	"github.com/hearthframe/wisp/font"
	"github.com/hearthframe/wisp/report"
	"github.com/hearthframe/wisp/tab"
	"github.com/hearthframe/wisp/trace"
	"github.com/hearthframe/wisp/weburl"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "wisp:", err)
		os.Exit(1)
	}
}

func run() error {
	startURL, err := resolveStartURL(os.Args)
	if err != nil {
		return err
	}

	fontLib, err := font.NewSystemLibrary("DejaVu Sans")
	if err != nil {
		return fmt.Errorf("locating a system font: %w", err)
	}

	reporter, err := report.New(os.Getenv("WISP_SENTRY_DSN"))
	if err != nil {
		return fmt.Errorf("setting up error reporting: %w", err)
	}

	tr := trace.NewWriter("browser.json", "wisp")
	defer tr.Close()

	t := tab.New(chrome.Width, chrome.Height, fontLib)

	w := chrome.New(t)
	w.Report = reporter
	w.Trace = tr
	w.Open(startURL)

	return chrome.Run(w, "wisp")
}

// resolveStartURL parses argv[1] as an absolute URL, or, when absent,
// falls back to a file:// URL for a bundled start page, matching spec
// §6's "defaults to a file URL".
func resolveStartURL(args []string) (weburl.URL, error) {
	if len(args) < 2 {
		abs, err := filepath.Abs("testdata/start.html")
		if err != nil {
			return weburl.URL{}, err
		}
		return weburl.URL{Scheme: "file", FilePath: abs}, nil
	}
	return weburl.Parse(args[1])
}
