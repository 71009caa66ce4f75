// Package keys owns the service signing identity: a secp256k1 keypair
// generated at startup and held in memory for the life of the process.
package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// ErrMalformedInput is returned when caller-supplied hex cannot be decoded.
var ErrMalformedInput = errors.New("malformed hex input")

// Signer holds the process keypair.
type Signer struct {
	priv *secp256k1.PrivateKey
}

// NewSigner generates a fresh secp256k1 keypair.
func NewSigner() (*Signer, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate secret key: %w", err)
	}
	return &Signer{priv: priv}, nil
}

// PublicKey returns the uncompressed public key as 0x-prefixed hex.
func (s *Signer) PublicKey() string {
	return "0x" + hex.EncodeToString(s.priv.PubKey().SerializeUncompressed())
}

// Sign signs the SHA-256 digest of msg and returns the DER signature as
// 0x-prefixed hex.
func (s *Signer) Sign(msg []byte) string {
	digest := sha256.Sum256(msg)
	sig := ecdsa.Sign(s.priv, digest[:])
	return "0x" + hex.EncodeToString(sig.Serialize())
}

// Verify reports whether sigHex is a valid signature over msg by this
// signer's key.
func (s *Signer) Verify(msg []byte, sigHex string) bool {
	raw, err := hex.DecodeString(strings.TrimPrefix(sigHex, "0x"))
	if err != nil {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(raw)
	if err != nil {
		return false
	}
	digest := sha256.Sum256(msg)
	return sig.Verify(digest[:], s.priv.PubKey())
}

// DecodeInput decodes caller-supplied hex (with or without a 0x prefix) and
// returns it re-encoded in canonical lowercase form.
func DecodeInput(input string) (string, error) {
	decoded, err := hex.DecodeString(strings.TrimPrefix(input, "0x"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return hex.EncodeToString(decoded), nil
}
