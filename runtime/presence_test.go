package runtime

import (
	"context"
	"pair-chat/domain/chat"
	"pair-chat/domain/event"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresence_PartnersAreNotifiedInOrder(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c := newCore(staticPartners{"alice": {"bob"}, "bob": {"alice"}, "carol": {}})
	bob, carol := newFakeConn("bob"), newFakeConn("carol")
	c.registry.Register(ctx, bob)
	c.registry.Register(ctx, carol)

	// When alice connects then disconnects
	alice := newFakeConn("alice")
	c.registry.Register(ctx, alice)
	c.registry.Unregister(ctx, alice)

	// Then bob saw online then offline, carol saw nothing
	updates := ofKind[event.PresenceChanged](bob)
	req.Len(updates, 2)
	req.Equal(chat.UserID("alice"), updates[0].User)
	req.True(updates[0].Online)
	req.False(updates[1].Online)
	req.Empty(ofKind[event.PresenceChanged](carol))
}

func TestPresence_SnapshotListsOnlinePartners(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c := newCore(staticPartners{"alice": {"bob", "dave"}, "bob": {"alice"}, "dave": {"alice"}})
	c.registry.Register(ctx, newFakeConn("bob"))
	alice := newFakeConn("alice")
	c.registry.Register(ctx, alice)

	// When the snapshot is taken
	req.NoError(c.presence.Snapshot(ctx, alice))

	// Then only bob is listed as online
	snapshots := ofKind[event.PresenceSnapshot](alice)
	req.Len(snapshots, 1)
	req.Equal([]chat.UserID{"bob"}, snapshots[0].Online)
}

func TestPresence_OfflinePartnerIsANoop(t *testing.T) {
	ctx := context.Background()
	c := newCore(pairOf("alice", "bob"))

	require.NotPanics(t, func() {
		c.registry.Register(ctx, newFakeConn("alice"))
	})
}
