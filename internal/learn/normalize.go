package learn

import "regexp"

// bucketKeyLen is the prefix length of a normalized message used as
// the bucket key.
const bucketKeyLen = 120

var (
	hexAddress  = regexp.MustCompile(`0x[0-9a-fA-F]+`)
	lineMarker  = regexp.MustCompile(`line \d+`)
	longSingleQ = regexp.MustCompile(`'[^']{21,}'`)
	longDoubleQ = regexp.MustCompile(`"[^"]{21,}"`)
)

// NormalizeError strips the volatile parts of an error message so
// superficially different messages for the same fault compare equal:
// hex addresses, line numbers, and long quoted literals become
// placeholders.
func NormalizeError(msg string) string {
	msg = hexAddress.ReplaceAllString(msg, "0xADDR")
	msg = lineMarker.ReplaceAllString(msg, "line N")
	msg = longSingleQ.ReplaceAllString(msg, "'...'")
	msg = longDoubleQ.ReplaceAllString(msg, "\"...\"")
	return msg
}

// BucketKey derives the error-bucket key: the normalized message
// truncated to a fixed prefix.
func BucketKey(msg string) string {
	norm := NormalizeError(msg)
	if len(norm) > bucketKeyLen {
		norm = norm[:bucketKeyLen]
	}
	return norm
}
