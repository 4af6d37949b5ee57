package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"go.uber.org/zap"

	"github.com/pmuens/ctk-go/chacha20"
	"github.com/pmuens/ctk-go/curve25519"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	runKeyExchange(logger)
	runEncryption(logger)
}

// runKeyExchange performs an X25519 handshake between two freshly generated
// scalars and prints the resulting shared secret.
func runKeyExchange(logger *zap.Logger) {
	aliceRaw, bobRaw := [32]byte{}, [32]byte{}
	if _, err := rand.Read(aliceRaw[:]); err != nil {
		logger.Fatal("generate alice scalar", zap.Error(err))
	}
	if _, err := rand.Read(bobRaw[:]); err != nil {
		logger.Fatal("generate bob scalar", zap.Error(err))
	}

	alice := curve25519.ClampPrivateKey(aliceRaw)
	bob := curve25519.ClampPrivateKey(bobRaw)

	aliceShare := curve25519.ScalarMult(alice, curve25519.BasePoint)
	bobShare := curve25519.ScalarMult(bob, curve25519.BasePoint)

	aliceSecret := curve25519.ScalarMult(alice, bobShare)
	bobSecret := curve25519.ScalarMult(bob, aliceShare)

	logger.Info("x25519 handshake complete",
		zap.String("alice_secret", hex.EncodeToString(aliceSecret[:])),
		zap.String("bob_secret", hex.EncodeToString(bobSecret[:])),
		zap.Bool("match", aliceSecret == bobSecret),
	)
}

// runEncryption derives a key/nonce pair and encrypts a short message with
// the ChaCha20 keystream, then decrypts it back via a second Cipher to
// demonstrate the stream is its own inverse.
func runEncryption(logger *zap.Logger) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		logger.Fatal("generate key", zap.Error(err))
	}

	var nonce [8]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		logger.Fatal("generate nonce", zap.Error(err))
	}

	plaintext := []byte("the quick brown fox jumps over the lazy dog")

	enc, err := chacha20.New(key, nonce)
	if err != nil {
		logger.Fatal("construct cipher", zap.Error(err))
	}
	ciphertext := enc.Process(plaintext)

	dec, err := chacha20.New(key, nonce)
	if err != nil {
		logger.Fatal("construct cipher", zap.Error(err))
	}
	recovered := dec.Process(ciphertext)

	fmt.Printf("plaintext:  %s\n", plaintext)
	fmt.Printf("ciphertext: %s\n", hex.EncodeToString(ciphertext))
	fmt.Printf("recovered:  %s\n", recovered)

	enc.Zeroize()
	dec.Zeroize()
}
