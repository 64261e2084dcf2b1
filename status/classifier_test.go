package status

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/elastic/daytimed/shutdown"
)

type memLog struct {
	records []string
}

func (m *memLog) Record(message string) {
	m.records = append(m.records, message)
}

func newTestClassifier(fatal bool) (*Classifier, *memLog, *observer.ObservedLogs, *shutdown.Signal) {
	core, logs := observer.New(zap.DebugLevel)
	log := &memLog{}
	sig := shutdown.New()
	return NewClassifier(log, zap.New(core).Sugar(), sig, fatal), log, logs, sig
}

func TestClassifySuccess(t *testing.T) {
	c, log, logs, sig := newTestClassifier(true)
	assert.True(t, c.Classify(nil, SocketBind))
	assert.True(t, c.Classify(nil, BufferWrite))
	assert.Equal(t, []string{"Socket Bind SUCCESS", "Buffer write SUCCESS"}, log.records)
	assert.Equal(t, 0, logs.Len())
	assert.False(t, sig.Raised())
}

func TestClassifyFailure(t *testing.T) {
	for _, test := range []struct {
		tag    Tag
		fatal  bool
		raised bool
	}{
		{SocketBind, true, true},
		{SocketBind, false, true},
		{Port, false, true},
		{ClientConnection, false, true},
		{BufferRead, true, true},
		{BufferRead, false, false},
		{BufferWrite, false, false},
		{ClientClose, false, false},
	} {
		c, log, logs, sig := newTestClassifier(test.fatal)
		assert.False(t, c.Classify(errors.New("boom"), test.tag))
		assert.Equal(t, []string{test.tag.String() + " FAILED"}, log.records)
		if assert.Equal(t, 1, logs.Len()) {
			entry := logs.All()[0]
			assert.Equal(t, test.tag.String()+" FAILED", entry.Message)
			assert.Equal(t, "boom", entry.ContextMap()["err"])
		}
		assert.Equal(t, test.raised, sig.Raised(), test.tag.String())
	}
}

func TestTagLabels(t *testing.T) {
	assert.Equal(t, "Client Connection", ClientConnection.String())
	assert.Equal(t, "Buffer read", BufferRead.String())
	assert.Equal(t, "Unknown", Tag(42).String())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Unknown, KindOf(nil))
	assert.Equal(t, Unknown, KindOf(errors.New("plain")))
	assert.Equal(t, Resource, KindOf(Wrap(errors.New("in use"), SocketBind)))
	assert.Equal(t, Configuration, KindOf(errors.Wrap(Wrap(errors.New("nope"), Port), "startup")))
	assert.Equal(t, IO, KindOf(Wrap(errors.New("reset"), BufferRead)))
	assert.Nil(t, Wrap(nil, BufferRead))

	err := Wrap(errors.New("in use"), SocketBind)
	assert.Equal(t, "Socket Bind: in use", err.Error())
	assert.Equal(t, "in use", errors.Cause(err).Error())
}
