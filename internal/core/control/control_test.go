package control

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/behave/internal/core/systems/physics"
)

func TestLatest(t *testing.T) {
	l := NewLatest()
	assert.Equal(t, Input{}, l.Snapshot())

	in := Input{Stick: physics.Vec2{X: 1}, Primary: true}
	l.Set(in)
	assert.Equal(t, in, l.Snapshot())

	in.Primary = false
	assert.True(t, l.Snapshot().Primary, "stored snapshot is a copy")
}

func TestSources(t *testing.T) {
	s := Static{Accelerate: true}
	assert.True(t, s.Snapshot().AcceleratePressed())

	n := 0
	f := SourceFunc(func() Input {
		n++
		return Input{Secondary: n%2 == 0}
	})
	assert.False(t, f.Snapshot().SecondaryAttackPressed())
	assert.True(t, f.Snapshot().SecondaryAttackPressed())
}

func TestDecode(t *testing.T) {
	in, err := Decode([]byte(`{"stick":{"x":0.5,"y":-1},"primary":true,"accelerate":true}`))
	require.NoError(t, err)
	assert.Equal(t, physics.Vec2{X: 0.5, Y: -1}, in.Direction())
	assert.True(t, in.PrimaryAttackPressed())
	assert.False(t, in.SecondaryAttackPressed())
	assert.True(t, in.AcceleratePressed())

	_, err = Decode([]byte(`{"stick":`))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHandlerFeedsLatest(t *testing.T) {
	latest := NewLatest()
	srv := httptest.NewServer(NewHandler(latest, nil))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"stick":{"x":0,"y":1},"primary":true}`)))
	var reply ack
	require.NoError(t, conn.ReadJSON(&reply))
	assert.True(t, reply.OK)
	assert.Equal(t, Input{Stick: physics.Vec2{Y: 1}, Primary: true}, latest.Snapshot())

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.False(t, reply.OK)
	assert.NotEmpty(t, reply.Error)
	assert.True(t, latest.Snapshot().Primary, "bad frames keep the previous input")

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool {
		return latest.Snapshot() == Input{}
	}, time.Second, 10*time.Millisecond)
}
