package plotview

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pkg/browser"
)

// Viewer shows heat maps one at a time. Showing a plot replaces the
// one on the page and blocks until the operator acknowledges it on the
// terminal, which keeps the run synchronous: one plot, one look, next
// plot.
type Viewer struct {
	server      *Server
	openBrowser bool

	started bool
	url     string
	in      *bufio.Reader
	out     io.Writer
}

// NewViewer creates a viewer on top of a plot server. When openBrowser
// is set, the first shown plot also opens the page in the default
// browser.
func NewViewer(server *Server, openBrowser bool) *Viewer {
	return &Viewer{
		server:      server,
		openBrowser: openBrowser,
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stderr,
	}
}

// WithIO redirects the acknowledgement prompt, mainly for tests.
func (v *Viewer) WithIO(in io.Reader, out io.Writer) *Viewer {
	v.in = bufio.NewReader(in)
	v.out = out

	return v
}

// Show displays one heat map and waits for the operator to dismiss it.
func (v *Viewer) Show(hm *Heatmap) error {
	if !v.started {
		url, err := v.server.Start()
		if err != nil {
			return err
		}

		v.url = url
		v.started = true

		if v.openBrowser {
			if err := browser.OpenURL(url); err != nil {
				fmt.Fprintf(v.out,
					"Could not open a browser: %s. Open %s manually.\n",
					err, url)
			}
		}
	}

	v.server.SetPlot(hm)

	fmt.Fprintf(v.out, "Showing %q at %s. Press Enter to continue. ",
		hm.Title, v.url)

	_, err := v.in.ReadString('\n')
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}
