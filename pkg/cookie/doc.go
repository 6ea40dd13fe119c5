// Package cookie signs cookie values and manages the attributes of the cookies
// the site issues.
//
// Signed values carry an HMAC-SHA256 tag and the "s:" marker, so a parser can
// tell them apart from plain cookies:
//
//	s, err := cookie.NewSigner(secret)
//	raw := s.Sign("session-id")    // "s:c2Vzc2lvbi1pZA.<sig>"
//	value, err := s.Unsign(raw)     // "session-id"
//
// A [Manager] writes and reads signed cookies with fixed attributes:
//
//	m, err := cookie.New(secret, cookie.WithSecure(false))
//	m.SetSigned(w, "sb.sid", id, 86400)
//	id, err := m.GetSigned(r, "sb.sid")
//
// Secrets shorter than 32 bytes are rejected with [ErrBadSecret].
package cookie
