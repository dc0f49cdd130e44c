package xhsnote

import "regexp"

// DeliveryHost serves images without the signed, expiring path prefix.
const DeliveryHost = "sns-na-i3.xhscdn.com"

var (
	// sectionImagePattern matches images stored under a named section.
	sectionImagePattern = regexp.MustCompile(`https?://sns-webpic-qc\.xhscdn\.com/.*/(notes_pre_post|spectrum)/([^/!]+)!`)

	// signedImagePattern matches /<timestamp>/<signature>/<image id>!<style>.
	signedImagePattern = regexp.MustCompile(`https?://sns-webpic-qc\.xhscdn\.com/\d+/[^/]+/([^/!]+)!`)
)

// RewriteImageURL converts a signed CDN image URL into its protocol-relative
// delivery form. URLs that match neither known shape are returned unchanged.
func RewriteImageURL(u string) string {
	if m := sectionImagePattern.FindStringSubmatch(u); m != nil {
		return "//" + DeliveryHost + "/" + m[1] + "/" + m[2]
	}
	if m := signedImagePattern.FindStringSubmatch(u); m != nil {
		return "//" + DeliveryHost + "/" + m[1]
	}
	return u
}

// RewriteImageURLs applies RewriteImageURL to each URL, preserving order.
// The input slice is not modified.
func RewriteImageURLs(urls []string) []string {
	out := make([]string, len(urls))
	for i, u := range urls {
		out[i] = RewriteImageURL(u)
	}
	return out
}
