// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrInvalidCode     = errors.New("invalid access code format")
)

// AccessCodeLength is the number of characters in a generated access code
const AccessCodeLength = 8

// codeAlphabet leaves out characters that are easy to misread on a printed QR card (0/O, 1/I/L)
const codeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// ValidateAdminKey checks the provided key against the configured one in constant time
func ValidateAdminKey(provided, expected string) error {
	if provided == "" || expected == "" {
		return ErrInvalidAdminKey
	}
	if !hmac.Equal([]byte(provided), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateAccessCode creates a random single-use access code
func GenerateAccessCode() (string, error) {
	b := make([]byte, AccessCodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate access code: %w", err)
	}
	// Modulo bias over a 31-char alphabet is negligible for codes that live one event
	code := make([]byte, AccessCodeLength)
	for i, v := range b {
		code[i] = codeAlphabet[int(v)%len(codeAlphabet)]
	}
	return string(code), nil
}

// NormalizeAccessCode trims and upper-cases a code typed or scanned by a voter
func NormalizeAccessCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != AccessCodeLength {
		return "", ErrInvalidCode
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(codeAlphabet, code[i]) < 0 {
			return "", ErrInvalidCode
		}
	}
	return code, nil
}

// GenerateVoteCode creates the confirmation code returned to a voter
// Uses base62 encoding so it is easy to read back at the help desk
func GenerateVoteCode() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate vote code: %w", err)
	}
	return "V-" + base62Encode(b), nil
}

// base62Encode converts bytes to base62 (0-9, a-z, A-Z)
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	// Reverse the string
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
