package erp

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/bcadapter/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	zapobserver "go.uber.org/zap/zaptest/observer"
)

func TestPairUp(t *testing.T) {
	pairs, err := PairUp([]string{"Description", "Material"}, []string{"long text", ""})
	require.NoError(t, err)
	assert.Equal(t, []Pair{{Name: "Description", Value: "long text"}, {Name: "Material", Value: ""}}, pairs)

	_, err = PairUp([]string{"Description"}, []string{"a", "b"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestEnricher_SetAttributes(t *testing.T) {
	core, logs := zapobserver.New(zapcore.WarnLevel)
	remote := new(MockRemote)
	remote.On("SetItemAttribute", mock.Anything, "1000", "Description", "long text").Return(nil)
	remote.On("SetItemAttribute", mock.Anything, "1000", "Material", "").Return(errors.New("attribute blocked"))

	e := NewEnricher(remote, zap.New(core))
	out := e.SetAttributes(context.Background(), "1000", []Pair{
		{Name: "Description", Value: "long text"},
		{Name: "Material", Value: ""},
	})

	require.Len(t, out, 2)
	assert.NoError(t, out.Err())
	assert.Equal(t, []string{"attribute Material: attribute blocked"}, out.Warnings())

	entries := logs.FilterMessage("Item attribute write failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Material", entries[0].ContextMap()["attribute"])
	assert.Equal(t, "1000", entries[0].ContextMap()["item_number"])
	remote.AssertExpectations(t)
}

func TestEnricher_SetLinks(t *testing.T) {
	core, logs := zapobserver.New(zapcore.WarnLevel)
	remote := new(MockRemote)
	remote.On("SetItemLink", mock.Anything, "1000", "Thin Client", "https://bc/thin").Return(errors.New("timeout"))

	e := NewEnricher(remote, zap.New(core))
	out := e.SetLinks(context.Background(), "1000", []Pair{
		{Name: "Thin Client", Value: "https://bc/thin"},
		{Name: "Thick Client", Value: ""},
	})

	require.Len(t, out, 1)
	assert.Equal(t, []string{"link Thin Client: timeout"}, out.Warnings())
	assert.Equal(t, 1, logs.FilterMessage("Item link write failed").Len())
	remote.AssertNotCalled(t, "SetItemLink", mock.Anything, "1000", "Thick Client", mock.Anything)
}
