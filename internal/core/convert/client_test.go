package convert

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testClient(url string) *Client {
	return NewClient(url, 5*time.Second, zerolog.Nop())
}

func sampleResult() Result {
	return Result{
		Title:  "The Pragmatic Programmer",
		Author: "Hunt & Thomas",
		Chapters: []Chapter{
			{Title: "A Pragmatic Philosophy", Highlights: []Highlight{
				{Text: "Care about your craft", Location: "120", Kind: KindHighlight},
			}},
			{Title: "Chapter Two", Highlights: nil},
		},
		Markdown: "# The Pragmatic Programmer\n\n## A Pragmatic Philosophy\n",
		Stats: Stats{
			TotalHighlights:    10,
			MatchedHighlights:  9,
			OrphanedHighlights: 1,
			MatchRate:          90,
			FileSize:           "4.2 KB",
		},
	}
}

func TestSubmitSuccess(t *testing.T) {
	book := writeTempFile(t, "book.epub", "epub-bytes")
	clippings := writeTempFile(t, "clippings.txt", "clippings")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/convert", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1 << 20))

		_, _, err := r.FormFile("epub")
		require.NoError(t, err, "epub file part missing")
		_, _, err = r.FormFile("clippings")
		require.NoError(t, err, "clippings file part missing")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sampleResult())
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).Submit(context.Background(), Request{
		BookPath:      book,
		ClippingsPath: clippings,
	})
	require.NoError(t, err)

	assert.Equal(t, "The Pragmatic Programmer", result.Title)
	assert.Len(t, result.Chapters, 2)
	assert.Equal(t, 90.0, result.Stats.MatchRate)
	assert.NotEmpty(t, result.Markdown)
}

func TestSubmitSendsOnlyMergeFileWhenSet(t *testing.T) {
	book := writeTempFile(t, "book.epub", "epub-bytes")
	clippings := writeTempFile(t, "clippings.txt", "clippings")
	mergeDoc := writeTempFile(t, "old.md", "# old document")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1 << 20))

		_, _, err := r.FormFile("existing_markdown")
		require.NoError(t, err, "merge file part missing")

		assert.Empty(t, r.FormValue("existing_markdown_text"),
			"stale merge text must not be submitted alongside the file")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sampleResult())
	}))
	defer srv.Close()

	// Build through the collector so file-over-text precedence is the
	// real code path under test.
	c := NewCollector()
	c.SetBookFile(book)
	c.SetClippingsFile(clippings)
	c.SetMergeEnabled(true)
	c.SetMergeText("# stale pasted document")
	c.SetMergeFile(mergeDoc)

	_, err := testClient(srv.URL).Submit(context.Background(), c.BuildRequest())
	require.NoError(t, err)
}

func TestSubmitSendsNotesText(t *testing.T) {
	book := writeTempFile(t, "book.epub", "epub-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		assert.Equal(t, "- a note", r.FormValue("notes"))

		_, _, err := r.FormFile("clippings")
		assert.Error(t, err, "no clippings part expected")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sampleResult())
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Submit(context.Background(), Request{
		BookPath:  book,
		NotesText: "- a note",
	})
	require.NoError(t, err)
}

func TestSubmitServiceFailureDetail(t *testing.T) {
	book := writeTempFile(t, "book.epub", "epub-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "bad file"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Submit(context.Background(), Request{BookPath: book})
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "bad file", svcErr.Detail)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
}

func TestSubmitFailureWithUnexpectedBody(t *testing.T) {
	book := writeTempFile(t, "book.epub", "epub-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>boom</html>"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Submit(context.Background(), Request{BookPath: book})
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, genericFailureDetail, svcErr.Detail)
}

func TestSubmitEmptySuccessBodyIsFailure(t *testing.T) {
	book := writeTempFile(t, "book.epub", "epub-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Submit(context.Background(), Request{BookPath: book})
	require.Error(t, err, "a result with no document and no chapters is a full failure")
}

func TestSubmitTransportFailure(t *testing.T) {
	book := writeTempFile(t, "book.epub", "epub-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := testClient(srv.URL).Submit(context.Background(), Request{BookPath: book})
	require.Error(t, err)

	var svcErr *ServiceError
	assert.False(t, errors.As(err, &svcErr), "transport failures are not service errors")
}
