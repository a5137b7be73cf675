// Package export assembles downloadable archives from generated component
// code. Archive building is a pure function of its inputs.
package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

const (
	defaultFolder  = "component"
	markupFilename = "index.jsx"
	styleFilename  = "styles.css"
)

// builds a zip containing one markup file and one style file inside a
// folder named after the session title. Empty inputs produce empty files.
func Archive(markup, style, title string) ([]byte, error) {
	folder := title
	if folder == "" {
		folder = defaultFolder
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	files := []struct {
		name string
		body string
	}{
		{markupFilename, stripCodeFences(markup)},
		{styleFilename, style},
	}

	for _, file := range files {
		f, err := w.Create(folder + "/" + file.name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", file.name, err)
		}

		if _, err := f.Write([]byte(file.body)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", file.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return buf.Bytes(), nil
}

// removes markdown code-fence decorations the model sometimes wraps around
// the markup. Only the known leading/trailing patterns are stripped.
func stripCodeFences(markup string) string {
	clean := strings.TrimSpace(markup)

	if strings.HasPrefix(clean, "```jsx") {
		clean = strings.TrimSpace(strings.TrimPrefix(clean, "```jsx"))
	}

	if strings.HasPrefix(clean, "```") {
		clean = strings.TrimSpace(strings.TrimPrefix(clean, "```"))
	}

	if strings.HasSuffix(clean, "```") {
		clean = strings.TrimSpace(strings.TrimSuffix(clean, "```"))
	}

	return clean
}
