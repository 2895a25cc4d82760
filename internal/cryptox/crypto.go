// Package cryptox implements the sealed-token scheme used for session
// cookies: a value is serialized to JSON, encrypted with AES-256-GCM under a
// key derived from the server secret, and encoded for cookie transport.
// The holder of a sealed token can neither read nor forge its contents.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
)

var ErrMalformedToken = errors.New("malformed sealed token")

// DeriveKey turns an arbitrary-length secret into a 32-byte AES key.
func DeriveKey(secret string) []byte {
	hash := sha256.Sum256([]byte(secret))
	return hash[:]
}

// Seal serializes v to JSON and encrypts it using AES-GCM. A fresh random
// nonce is generated per call and prepended to the ciphertext; the result is
// base64url-encoded so it is safe to carry in a cookie value.
func Seal(v any, key []byte) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aesgcm.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open decrypts a token produced by Seal and unmarshals the payload into v.
// Any tampering with the token makes the AEAD open fail and is reported as
// ErrMalformedToken, as is a token too short to contain a nonce.
func Open(token string, key []byte, v any) error {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return ErrMalformedToken
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return err
	}

	if len(raw) < aesgcm.NonceSize() {
		return ErrMalformedToken
	}
	nonce, ciphertext := raw[:aesgcm.NonceSize()], raw[aesgcm.NonceSize():]

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return ErrMalformedToken
	}

	return json.Unmarshal(plaintext, v)
}
