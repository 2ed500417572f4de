package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionlab/go-sogs/internal/crypto"
	"github.com/sessionlab/go-sogs/models"
)

const (
	testSeedHex      = "c010d89eccbaf5d1c6d19df766c6eedf965d4a28a56f87c9fc819edb59896dd9"
	otherSeedHex     = "d020d89eccbaf5d1c6d19df766c6eedf965d4a28a56f87c9fc819edb59896dd9"
	testServerPubKey = "a03c383cf63c3c4efe67acc52112a6dd734b3a946b9545f488aaa93da7991238"
)

func testResolver(t *testing.T) (*Resolver, crypto.KeyPair) {
	t.Helper()
	keys, err := crypto.KeyPairFromSeedHex(testSeedHex)
	require.NoError(t, err)
	return NewResolver(keys), keys
}

func testServer() models.Server {
	return models.Server{Name: "example.org", PublicKey: testServerPubKey}
}

func TestIsModeratorOrAdmin_DirectMembership(t *testing.T) {
	resolver, _ := testResolver(t)
	server := testServer()

	other, err := crypto.KeyPairFromSeedHex(otherSeedHex)
	require.NoError(t, err)
	otherID := other.UnblindedID().String()

	resolver.UpdateRoom(server.Name, "general", models.RoomDetails{
		Moderators: []string{otherID},
	})

	assert.True(t, resolver.IsModeratorOrAdmin(server, "general", otherID))
	assert.False(t, resolver.IsAdmin(server, "general", otherID))
}

func TestIsModeratorOrAdmin_BlindedListMatchedByStandardQuery(t *testing.T) {
	resolver, keys := testResolver(t)
	server := testServer()

	blinded, err := crypto.DeriveBlindedKeyPair(server.PublicKey, keys)
	require.NoError(t, err)
	standard, err := keys.StandardID()
	require.NoError(t, err)

	// The server publishes its list only in blinded form; querying with
	// the user's standard ID must still resolve.
	resolver.UpdateRoom(server.Name, "general", models.RoomDetails{
		Moderators: []string{blinded.BlindedID().String()},
	})

	assert.True(t, resolver.IsModeratorOrAdmin(server, "general", standard.String()))
	assert.True(t, resolver.IsModeratorOrAdmin(server, "general", keys.UnblindedID().String()))
	assert.True(t, resolver.IsModeratorOrAdmin(server, "general", blinded.BlindedID().String()))
}

func TestIsModeratorOrAdmin_ForeignKeyDoesNotCrossEncodings(t *testing.T) {
	resolver, keys := testResolver(t)
	server := testServer()

	other, err := crypto.KeyPairFromSeedHex(otherSeedHex)
	require.NoError(t, err)
	otherBlinded, err := crypto.DeriveBlindedKeyPair(server.PublicKey, other)
	require.NoError(t, err)
	otherStandard, err := other.StandardID()
	require.NoError(t, err)

	resolver.UpdateRoom(server.Name, "general", models.RoomDetails{
		Moderators: []string{otherBlinded.BlindedID().String()},
	})

	// Equivalence is only derivable for the local user's own keys; a
	// foreign standard ID cannot be linked to its blinded entry here.
	assert.False(t, resolver.IsModeratorOrAdmin(server, "general", otherStandard.String()))

	standard, err := keys.StandardID()
	require.NoError(t, err)
	assert.False(t, resolver.IsModeratorOrAdmin(server, "general", standard.String()))
}

func TestIsAdmin_HiddenAdminsCount(t *testing.T) {
	resolver, keys := testResolver(t)
	server := testServer()

	resolver.UpdateRoom(server.Name, "general", models.RoomDetails{
		HiddenAdmins: []string{keys.UnblindedID().String()},
	})

	standard, err := keys.StandardID()
	require.NoError(t, err)
	assert.True(t, resolver.IsAdmin(server, "general", standard.String()))
}

func TestResolver_UnknownRoomAndMalformedID(t *testing.T) {
	resolver, keys := testResolver(t)
	server := testServer()

	standard, err := keys.StandardID()
	require.NoError(t, err)
	assert.False(t, resolver.IsModeratorOrAdmin(server, "nowhere", standard.String()))

	resolver.UpdateRoom(server.Name, "general", models.RoomDetails{})
	assert.False(t, resolver.IsModeratorOrAdmin(server, "general", "not-a-session-id"))
}

func TestForgetRoom(t *testing.T) {
	resolver, keys := testResolver(t)
	server := testServer()
	id := keys.UnblindedID().String()

	resolver.UpdateRoom(server.Name, "general", models.RoomDetails{Admins: []string{id}})
	require.True(t, resolver.IsAdmin(server, "general", id))

	resolver.ForgetRoom(server.Name, "general")
	assert.False(t, resolver.IsAdmin(server, "general", id))
}
