package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpenDirectMessage_RoundTrip(t *testing.T) {
	alice := mustKeyPair(t, testSeedHex)
	bob := mustKeyPair(t, otherSeedHex)

	aliceBlinded, err := DeriveBlindedKeyPair(testServerPubKey, alice)
	require.NoError(t, err)
	bobBlinded, err := DeriveBlindedKeyPair(testServerPubKey, bob)
	require.NoError(t, err)

	key, err := SharedBlindedEncryptionKey(alice, bobBlinded.PublicKey, aliceBlinded.PublicKey, bobBlinded.PublicKey)
	require.NoError(t, err)

	message := []byte("hello from a blinded inbox")
	sealed, err := SealDirectMessage(message, alice.PublicKey, key)
	require.NoError(t, err)

	// Framing: version byte then ciphertext then 24-byte nonce.
	assert.Equal(t, byte(0x00), sealed[0])

	recvKey, err := SharedBlindedEncryptionKey(bob, aliceBlinded.PublicKey, aliceBlinded.PublicKey, bobBlinded.PublicKey)
	require.NoError(t, err)

	got, senderPub, err := OpenDirectMessage(sealed, recvKey)
	require.NoError(t, err)
	assert.Equal(t, message, got)
	assert.Equal(t, []byte(alice.PublicKey), senderPub)
}

func TestOpenDirectMessage_Failures(t *testing.T) {
	key := make([]byte, 32)

	_, _, err := OpenDirectMessage([]byte{0x00, 0x01}, key)
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	alice := mustKeyPair(t, testSeedHex)
	sealed, err := SealDirectMessage([]byte("x"), alice.PublicKey, key)
	require.NoError(t, err)

	// Wrong version byte.
	bad := append([]byte{0x01}, sealed[1:]...)
	_, _, err = OpenDirectMessage(bad, key)
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	// Wrong key.
	wrongKey := make([]byte, 32)
	wrongKey[0] = 0xff
	_, _, err = OpenDirectMessage(sealed, wrongKey)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestLegacySharedKey_MatchesECDH(t *testing.T) {
	kp := mustKeyPair(t, testSeedHex)

	// An "ephemeral" X25519 key for the fake server side: the standard
	// form of another identity works fine as a test peer.
	peer := mustKeyPair(t, otherSeedHex)
	peerStd, err := peer.StandardID()
	require.NoError(t, err)

	key, err := LegacySharedKey(kp, peerStd.PublicKey)
	require.NoError(t, err)
	assert.Len(t, key, 32)

	again, err := LegacySharedKey(kp, peerStd.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, key, again)
}

func TestLegacyDecrypt_TooShort(t *testing.T) {
	key := make([]byte, 32)
	_, err := LegacyDecrypt([]byte{1, 2, 3}, key)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}
