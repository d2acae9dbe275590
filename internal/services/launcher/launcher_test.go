package launcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/haunt/internal/testutil"
)

func TestLoggingRecordsLaunch(t *testing.T) {
	logger, buf := testutil.BufferLogger()
	l := NewLogging(logger)

	err := l.ConnectAndLoad(context.Background(), LaunchParams{
		SessionID:  "3f0c6a52-5b8e-4f0e-9f5d-2a1c7e9b4d10",
		PlayerName: "Shadow",
		PlayerID:   "4821093567",
		Scene:      "Crypt",
	})
	require.NoError(t, err)

	require.Len(t, l.Launches, 1)
	assert.Equal(t, "Crypt", l.Launches[0].Scene)
	assert.Contains(t, buf.String(), `"msg":"starting game"`)
	assert.Contains(t, buf.String(), `"player_name":"Shadow"`)
	assert.Contains(t, buf.String(), `"session_id":"3f0c6a52-5b8e-4f0e-9f5d-2a1c7e9b4d10"`)
}

func TestLoggingDefaultsScene(t *testing.T) {
	l := NewLogging(testutil.NopLogger())

	_ = l.ConnectAndLoad(context.Background(), LaunchParams{PlayerName: "Shadow", PlayerID: "4821093567"})

	require.Len(t, l.Launches, 1)
	assert.Equal(t, DefaultScene, l.Launches[0].Scene)
}
