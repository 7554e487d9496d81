package usernames

import (
	"crypto/rand"
	"io"
	"strings"
	"unicode"
)

const (
	suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	reservedChars  = "/?#"
)

// SuffixLength is the number of random characters in a fallback username.
const SuffixLength = 6

// Slugify lowercases s and collapses every run of non-alphanumerics into "-".
func Slugify(s string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// Candidate returns the username to reserve for a résumé holder: their name
// when present, otherwise "user-" plus a random suffix. Names containing URL
// delimiters are slugified so the public path stays routable.
func Candidate(name string) string {
	name = strings.TrimSpace(name)
	if strings.ContainsAny(name, reservedChars) {
		name = Slugify(name)
	}
	if name != "" {
		return name
	}
	return Fallback()
}

// Fallback returns "user-" followed by SuffixLength random [a-z0-9] characters.
func Fallback() string {
	return "user-" + randomSuffix(SuffixLength)
}

func randomSuffix(n int) string {
	suffix, err := suffixFrom(rand.Reader, n)
	if err != nil {
		panic("usernames: crypto/rand unavailable: " + err.Error())
	}
	return suffix
}

// suffixFrom draws n alphabet characters from r. Bytes at or above the largest
// multiple of the alphabet size are discarded so every character is equally
// likely.
func suffixFrom(r io.Reader, n int) (string, error) {
	limit := 256 - 256%len(suffixAlphabet)
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, suffixAlphabet[int(b)%len(suffixAlphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}

func validate(userID, username string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(username) == "" {
		return ErrInvalid
	}
	if strings.ContainsAny(username, reservedChars) {
		return ErrInvalid
	}
	return nil
}
