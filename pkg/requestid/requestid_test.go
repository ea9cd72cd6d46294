package requestid

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	id, ok := FromContext(NewContext(context.Background(), "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
}

func TestLogger_TagsRequestID(t *testing.T) {
	log, hook := test.NewNullLogger()

	Logger(NewContext(context.Background(), "abc"), log).Info("inside")
	Logger(context.Background(), log).Info("outside")

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "abc", entries[0].Data["request_id"])
	assert.NotContains(t, entries[1].Data, "request_id")
	assert.Equal(t, logrus.InfoLevel, entries[1].Level)
}
