package websocket

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xpanvictor/linguabridge/pkg/Logger"
)

func TestSession_Lifecycle(t *testing.T) {
	req := require.New(t)
	s := NewSession(nil, Logger.New(true))

	req.Equal(StateConnecting, s.State())
	req.NoError(s.Accept())
	req.Equal(StateAwaitingInit, s.State())

	req.NoError(s.Init("alice", "fra_Latn"))
	req.Equal(StateJoined, s.State())
	req.Equal("alice", s.UserID())
	req.EqualValues("fra_Latn", s.TargetLang())

	s.MarkDisconnected()
	req.Equal(StateDisconnected, s.State())
}

func TestSession_InitRequiresAccept(t *testing.T) {
	req := require.New(t)
	s := NewSession(nil, Logger.New(true))
	req.Error(s.Init("alice", "fra_Latn"))
}

func TestSession_DeliverOnlyWhileJoined(t *testing.T) {
	req := require.New(t)
	s := NewSession(nil, Logger.New(true))

	req.Error(s.Deliver("payload"), "connecting sessions must not accept payloads")
	req.NoError(s.Accept())
	req.Error(s.Deliver("payload"), "uninitialized sessions must not accept payloads")
}

func TestSession_DisconnectIsIdempotent(t *testing.T) {
	req := require.New(t)
	s := NewSession(nil, Logger.New(true))

	req.NoError(s.Accept())
	s.MarkDisconnected()
	s.MarkDisconnected()
	req.Equal(StateDisconnected, s.State())
	req.NoError(s.Close())
}
