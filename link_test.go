package xhsnote_test

import (
	"testing"

	"github.com/fwojciec/xhsnote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNoteLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		url       string
		wantID    string
		wantToken string
	}{
		{
			name:      "explore link",
			url:       "https://www.xiaohongshu.com/explore/6776a1b2000000001301c4f2?xsec_token=ABcd-12_x",
			wantID:    "6776a1b2000000001301c4f2",
			wantToken: "ABcd-12_x",
		},
		{
			name:      "item link with params before token",
			url:       "https://www.xiaohongshu.com/discovery/item/6776a1b2?app_platform=ios&share_from_user_hidden=true&xsec_token=CBxyz&xsec_source=app_share",
			wantID:    "6776a1b2",
			wantToken: "CBxyz",
		},
		{
			name:      "token stops at first non word character",
			url:       "https://www.xiaohongshu.com/explore/abc123?xsec_token=tok-en=&type=normal",
			wantID:    "abc123",
			wantToken: "tok-en",
		},
		{
			name:      "first candidate wins",
			url:       "https://www.xiaohongshu.com/explore/first?xsec_token=one&next=/item/second?xsec_token=two",
			wantID:    "first",
			wantToken: "one",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			link, err := xhsnote.ParseNoteLink(tt.url)

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, link.ID)
			assert.Equal(t, tt.wantToken, link.Token)
		})
	}
}

func TestParseNoteLink_MissingToken(t *testing.T) {
	t.Parallel()

	for _, url := range []string{
		"",
		"https://www.xiaohongshu.com/explore/6776a1b2",
		"https://www.xiaohongshu.com/explore/6776a1b2?xsec_source=pc_feed",
		"not a url at all",
	} {
		_, err := xhsnote.ParseNoteLink(url)

		assert.Equal(t, xhsnote.EMISSINGTOKEN, xhsnote.ErrorCode(err), url)
	}
}

func TestParseNoteLink_Malformed(t *testing.T) {
	t.Parallel()

	for _, url := range []string{
		"https://www.xiaohongshu.com/user/profile/123?xsec_token=abc",
		"https://www.xiaohongshu.com/explore/?xsec_token=abc",
		"https://www.xiaohongshu.com/explore/abc?xsec_token=",
	} {
		_, err := xhsnote.ParseNoteLink(url)

		assert.Equal(t, xhsnote.EMALFORMED, xhsnote.ErrorCode(err), url)
	}
}

func TestNormalizeLink(t *testing.T) {
	t.Parallel()

	got, err := xhsnote.NormalizeLink("https://www.xiaohongshu.com/discovery/item/abc123?foo=bar&xsec_token=T0k-en&xsec_source=app_share")

	require.NoError(t, err)
	assert.Equal(t, "https://www.xiaohongshu.com/explore/abc123?xsec_token=T0k-en&xsec_source=pc_feed", got)
}

func TestIsShortLink(t *testing.T) {
	t.Parallel()

	assert.True(t, xhsnote.IsShortLink("http://xhslink.com/a/AbCdEf"))
	assert.False(t, xhsnote.IsShortLink("https://www.xiaohongshu.com/explore/abc?xsec_token=t"))
}
