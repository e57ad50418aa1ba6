package rules

import "regexp"

var reFakeHashID = regexp.MustCompile(`(?i)\b\w*(id|identifier|token|uuid)\w*\s*[:=]+[^\n]*\b(md5|sha1|sha256|crc32|hashlib)\b[\w.]*\s*\(`)

// FakeHashAsID flags identifiers manufactured by hashing whatever was at
// hand (time, random input), a common way to fake a stable-looking ID.
func FakeHashAsID(data []byte) []Match {
	return matchLines(data, reFakeHashID)
}
