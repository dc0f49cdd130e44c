package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/xhsnote/cmd/xhsnote"
	"github.com/fwojciec/xhsnote/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notePage = `<html><body>
<script>window.__INITIAL_STATE__={"note":{"noteDetailMap":{"abc123":{"note":{
	"noteId":"abc123","type":"normal","title":"Saved note","desc":"d","time":1735888888000,
	"xsecToken":"tok","tagList":[{"name":"cats"}],
	"imageList":[{"urlDefault":"http://sns-webpic-qc.xhscdn.com/202501040310/sig/IMG!nd_dft_wlteh_webp_3"}],
	"user":undefined
}}}}}</script>
</body></html>`

func newTestMain(t *testing.T) (*main.Main, *[]string) {
	t.Helper()

	var fetched []string
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	m.Fetcher = &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			fetched = append(fetched, url)
			return notePage, nil
		},
		CloseFn: func() error { return nil },
	}
	m.Resolver = &mock.Resolver{
		ResolveFn: func(_ context.Context, _ string) (string, error) {
			return "https://www.xiaohongshu.com/discovery/item/abc123?xsec_token=tok", nil
		},
	}
	return m, &fetched
}

func TestMain_Run_Get(t *testing.T) {
	t.Parallel()

	m, fetched := newTestMain(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"get", "http://xhslink.com/a/ShOrT"}, stdout, stderr)
	require.NoError(t, err)

	require.Len(t, *fetched, 1)
	assert.Equal(t, "https://www.xiaohongshu.com/explore/abc123?xsec_token=tok&xsec_source=pc_feed", (*fetched)[0])

	out := stdout.String()
	assert.Contains(t, out, `"success": true`)
	assert.Contains(t, out, `"noteId": "abc123"`)
	assert.Contains(t, out, `"title": "Saved note"`)
	assert.Contains(t, out, "sns-na-i3.xhscdn.com")
	assert.Contains(t, out, `"cats"`)
	assert.Nil(t, m.DB, "archive should stay closed without --save")
}

func TestMain_Run_GetSaveThenHistory(t *testing.T) {
	t.Parallel()

	m, _ := newTestMain(t)
	url := "https://www.xiaohongshu.com/explore/abc123?xsec_token=tok"

	err := m.Run(context.Background(), []string{"get", "--save", url}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	// Unchanged content is archived once.
	err = m.Run(context.Background(), []string{"get", "--save", url}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	stdout := &bytes.Buffer{}
	err = m.Run(context.Background(), []string{"history", "abc123"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "abc123")
	assert.Contains(t, lines[0], "Saved note")
	assert.Contains(t, lines[0], "1 images")
}

func TestMain_Run_GetFailureExitsWithError(t *testing.T) {
	t.Parallel()

	m, fetched := newTestMain(t)

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"get", "https://www.xiaohongshu.com/explore/abc123"}, stdout, &bytes.Buffer{})
	require.Error(t, err)

	assert.Empty(t, *fetched)
	assert.Contains(t, stdout.String(), `"msg": "link missing token"`)
}

func TestMain_Run_VerboseLogsPipeline(t *testing.T) {
	t.Parallel()

	m, _ := newTestMain(t)

	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"--verbose", "--log-json", "get", "https://www.xiaohongshu.com/explore/abc123?xsec_token=tok"}, &bytes.Buffer{}, stderr)
	require.NoError(t, err)

	logs := stderr.String()
	assert.Contains(t, logs, `"level":"DEBUG"`)
	assert.Contains(t, logs, `"note_id":"abc123"`)
}
