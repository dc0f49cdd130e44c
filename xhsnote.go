// Package xhsnote fetches Xiaohongshu notes and normalizes them into compact
// records. It resolves short links, fetches the note page, extracts the
// embedded client state and projects the matching note out of it.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, gjson/, sqlite/).
package xhsnote

// Host is the site that canonical note URLs point at.
const Host = "www.xiaohongshu.com"

// ShortLinkHost marks URLs that must be resolved through a redirect first.
const ShortLinkHost = "xhslink.com"

// DefaultNoteType is used when a request does not name a note type.
const DefaultNoteType = "normal"

// UserAgent is sent with every outgoing request. The site serves a stripped
// page to clients that do not look like a desktop browser.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
