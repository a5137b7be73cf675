package export

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reads back every file in the archive as name -> content
func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := make(map[string]string, len(reader.File))
	for _, f := range reader.File {
		rc, err := f.Open()
		require.NoError(t, err)

		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		files[f.Name] = string(content)
	}

	return files
}

func TestArchive_ContainsMarkupAndStyle(t *testing.T) {
	data, err := Archive("<div>hello</div>", ".card { color: red; }", "my component")

	require.NoError(t, err)

	files := readArchive(t, data)
	assert.Len(t, files, 2)
	assert.Equal(t, "<div>hello</div>", files["my component/index.jsx"])
	assert.Equal(t, ".card { color: red; }", files["my component/styles.css"])
}

func TestArchive_EmptyTitleUsesDefaultFolder(t *testing.T) {
	data, err := Archive("<div/>", "", "")

	require.NoError(t, err)

	files := readArchive(t, data)
	assert.Contains(t, files, "component/index.jsx")
	assert.Contains(t, files, "component/styles.css")
}

func TestArchive_EmptyCodeProducesEmptyFiles(t *testing.T) {
	data, err := Archive("", "", "Untitled")

	require.NoError(t, err)

	files := readArchive(t, data)
	assert.Equal(t, "", files["Untitled/index.jsx"])
	assert.Equal(t, "", files["Untitled/styles.css"])
}

func TestArchive_StripsJSXCodeFences(t *testing.T) {
	data, err := Archive("```jsx\n<div>fenced</div>\n```", "", "t")

	require.NoError(t, err)

	files := readArchive(t, data)
	assert.Equal(t, "<div>fenced</div>", files["t/index.jsx"])
}

func TestArchive_StripsBareCodeFences(t *testing.T) {
	data, err := Archive("```\n<div/>\n```", "", "t")

	require.NoError(t, err)

	files := readArchive(t, data)
	assert.Equal(t, "<div/>", files["t/index.jsx"])
}

func TestArchive_Deterministic(t *testing.T) {
	first, err := Archive("<div/>", ".a {}", "t")
	require.NoError(t, err)

	second, err := Archive("<div/>", ".a {}", "t")
	require.NoError(t, err)

	// zip headers carry no timestamps from us, so contents must match
	assert.Equal(t, readArchive(t, first), readArchive(t, second))
}

func TestStripCodeFences_UntouchedWithoutFences(t *testing.T) {
	assert.Equal(t, "<div>plain</div>", stripCodeFences("<div>plain</div>"))
}
