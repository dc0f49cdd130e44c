package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/xhsnote"
	xhshttp "github.com/fwojciec/xhsnote/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("returns location of temporary redirect without following it", func(t *testing.T) {
		t.Parallel()

		var targetHits atomic.Int32
		target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			targetHits.Add(1)
		}))
		defer target.Close()

		location := target.URL + "/explore/abc?xsec_token=tok"
		uaCh := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uaCh <- r.Header.Get("User-Agent")
			http.Redirect(w, r, location, http.StatusTemporaryRedirect)
		}))
		defer server.Close()

		r := xhshttp.NewResolver()
		got, err := r.Resolve(context.Background(), server.URL+"/a/AbCd")

		require.NoError(t, err)
		assert.Equal(t, location, got)
		assert.Equal(t, xhsnote.UserAgent, <-uaCh)
		assert.Zero(t, targetHits.Load())
	})

	t.Run("rejects other redirect statuses", func(t *testing.T) {
		t.Parallel()

		for _, status := range []int{http.StatusMovedPermanently, http.StatusFound, http.StatusPermanentRedirect} {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "https://www.xiaohongshu.com/explore/abc?xsec_token=t", status)
			}))

			r := xhshttp.NewResolver()
			_, err := r.Resolve(context.Background(), server.URL)
			server.Close()

			assert.Equal(t, xhsnote.EREDIRECT, xhsnote.ErrorCode(err), status)
		}
	})

	t.Run("rejects non-redirect responses", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer server.Close()

		r := xhshttp.NewResolver()
		_, err := r.Resolve(context.Background(), server.URL)

		assert.Equal(t, xhsnote.EREDIRECT, xhsnote.ErrorCode(err))
	})

	t.Run("rejects redirect without location", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTemporaryRedirect)
		}))
		defer server.Close()

		r := xhshttp.NewResolver()
		_, err := r.Resolve(context.Background(), server.URL)

		assert.Equal(t, xhsnote.EREDIRECT, xhsnote.ErrorCode(err))
	})

	t.Run("converts transport failures", func(t *testing.T) {
		t.Parallel()

		r := xhshttp.NewResolver(xhshttp.WithTimeout(100 * time.Millisecond))
		_, err := r.Resolve(context.Background(), "http://non-existent-host.invalid/a/x")

		require.Error(t, err)
		assert.Equal(t, xhsnote.EREDIRECT, xhsnote.ErrorCode(err))
	})

	t.Run("converts invalid URLs", func(t *testing.T) {
		t.Parallel()

		r := xhshttp.NewResolver()
		_, err := r.Resolve(context.Background(), "://bad")

		assert.Equal(t, xhsnote.EREDIRECT, xhsnote.ErrorCode(err))
	})
}

// Compile-time verification that Resolver implements xhsnote.Resolver
var _ xhsnote.Resolver = (*xhshttp.Resolver)(nil)
