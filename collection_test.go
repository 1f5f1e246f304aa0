// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockBackend records backend calls. List answers with the rows produced by
// the func passed to Return so that every fetch gets fresh instances.
type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) List(ctx context.Context, newResource func() Resource) ([]Resource, error) {
	args := m.Called(ctx, newResource().ResourcePath())
	var rows []Resource
	if fn, ok := args.Get(0).(func() []Resource); ok {
		rows = fn()
	}
	return rows, args.Error(1)
}

func (m *mockBackend) Add(ctx context.Context, r Resource) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockBackend) Update(ctx context.Context, r Resource) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockBackend) Set(ctx context.Context, r Resource) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockBackend) Delete(ctx context.Context, r Resource) error {
	return m.Called(ctx, r).Error(0)
}

// portRows returns a List result func building one loaded port per interface
func portRows(t *testing.T, interfaces ...string) func() []Resource {
	return func() []Resource {
		rows := make([]Resource, 0, len(interfaces))
		for i, iface := range interfaces {
			rows = append(rows, loadedPort(t, map[string]string{
				".id":       "*" + string(rune('1'+i)),
				"bridge":    "bridge1",
				"interface": iface,
				"pvid":      "1",
				"dynamic":   "false",
			}))
		}
		return rows
	}
}

func withIface(iface string) interface{} {
	return mock.MatchedBy(func(r Resource) bool {
		p, ok := r.(*testPort)
		return ok && p.Interface.Value() == iface
	})
}

func portInterface(p *testPort) *StringField { return &p.Interface }

func TestFetch(t *testing.T) {
	b := &mockBackend{}
	b.On("List", mock.Anything, "interface/bridge/port").Return(portRows(t, "ether1", "ether2"), nil)

	c, err := Fetch[testPort](context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, StateClean, c.State())
	b.AssertExpectations(t)
}

func TestFetchError(t *testing.T) {
	b := &mockBackend{}
	b.On("List", mock.Anything, "interface/bridge/port").Return(nil, errors.New("connection refused"))

	_, err := Fetch[testPort](context.Background(), b)
	assert.EqualError(t, err, "connection refused")
}

// TestCommitOrder checks deletes, then updates, then adds
func TestCommitOrder(t *testing.T) {
	ctx := context.Background()
	b := &mockBackend{}
	b.On("List", mock.Anything, "interface/bridge/port").Return(portRows(t, "ether1", "ether2", "ether3"), nil).Once()

	c, err := Fetch[testPort](ctx, b)
	require.NoError(t, err)

	c.Remove(func(p *testPort) bool { return p.Interface.Value() == "ether1" })
	c.PutAside(func(p *testPort) bool { return p.Interface.Value() == "ether2" })
	p3, ok := c.Find(func(p *testPort) bool { return p.Interface.Value() == "ether3" })
	require.True(t, ok)
	p3.PVID.Set(30)
	added := &testPort{}
	added.Interface.Set("ether4")
	c.Add(added)
	assert.Equal(t, StateStaged, c.State())

	mock.InOrder(
		b.On("Delete", ctx, withIface("ether1")).Return(nil).Once(),
		b.On("Delete", ctx, withIface("ether2")).Return(nil).Once(),
		b.On("Update", ctx, withIface("ether3")).Return(nil).Once(),
		b.On("Add", ctx, withIface("ether4")).Return(nil).Once(),
		b.On("List", mock.Anything, "interface/bridge/port").Return(portRows(t, "ether3", "ether4"), nil).Once(),
	)

	require.NoError(t, c.Commit(ctx, b))
	assert.Equal(t, StateClean, c.State())
	assert.Equal(t, 2, c.Len())
	b.AssertExpectations(t)
}

func TestCommitSkipsUnmodifiedAndDynamic(t *testing.T) {
	ctx := context.Background()
	b := &mockBackend{}
	b.On("List", mock.Anything, "interface/bridge/port").Return(portRows(t, "ether1", "ether2"), nil)

	c, err := Fetch[testPort](ctx, b)
	require.NoError(t, err)

	dyn := c.All()[1]
	require.NoError(t, dyn.Dynamic.SetFromAPI("true"))
	dyn.Comment.Set("learned")
	c.Remove(func(p *testPort) bool { return p.IsDynamic() })
	dynAdd := &testPort{}
	dynAdd.Dynamic.Set(true)
	c.Add(dynAdd)

	require.NoError(t, c.Commit(ctx, b))
	b.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	b.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	b.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	b.AssertNumberOfCalls(t, "List", 2)
}

// TestRemoveSetAside tests that removing a set-aside row turns it into a
// delete that a later lookup cannot bring back
func TestRemoveSetAside(t *testing.T) {
	ctx := context.Background()
	b := &mockBackend{}
	b.On("List", mock.Anything, "interface/bridge/port").Return(portRows(t, "ether1", "ether2"), nil).Once()

	c, err := Fetch[testPort](ctx, b)
	require.NoError(t, err)
	c.PutAllAside()
	c.Remove(func(p *testPort) bool { return p.Interface.Value() == "ether1" })
	assert.Zero(t, c.Len())

	readded := GetOrCreateByValue(c, portInterface, "ether1")
	assert.False(t, readded.ID.HasValue(), "a removed row is not restored")
	readded.Bridge.Set("bridge1")

	mock.InOrder(
		b.On("Delete", ctx, withIface("ether1")).Return(nil).Once(),
		b.On("Delete", ctx, withIface("ether2")).Return(nil).Once(),
		b.On("Add", ctx, withIface("ether1")).Return(nil).Once(),
		b.On("List", mock.Anything, "interface/bridge/port").Return(portRows(t, "ether1"), nil).Once(),
	)

	require.NoError(t, c.Commit(ctx, b))
	b.AssertExpectations(t)
	assert.Equal(t, 1, c.Len())
}

func TestCommitErrorLeavesStaged(t *testing.T) {
	ctx := context.Background()
	b := &mockBackend{}
	b.On("List", mock.Anything, "interface/bridge/port").Return(portRows(t, "ether1", "ether2"), nil)
	b.On("Delete", ctx, withIface("ether1")).Return(errors.New("trap")).Once()

	c, err := Fetch[testPort](ctx, b)
	require.NoError(t, err)
	c.Remove(func(p *testPort) bool { return p.Interface.Value() == "ether1" })
	added := &testPort{}
	added.Interface.Set("ether9")
	c.Add(added)

	assert.EqualError(t, c.Commit(ctx, b), "trap")
	assert.Equal(t, StateStaged, c.State())
	assert.Equal(t, 2, c.Len(), "ether2 and the added port")
	b.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	b.AssertNumberOfCalls(t, "List", 1)
}

func TestCommittingState(t *testing.T) {
	ctx := context.Background()
	b := &mockBackend{}
	b.On("List", mock.Anything, "interface/bridge/port").Return(portRows(t, "ether1"), nil)

	c, err := Fetch[testPort](ctx, b)
	require.NoError(t, err)
	c.Remove(func(*testPort) bool { return true })

	var during CollectionState
	b.On("Delete", ctx, mock.Anything).Return(nil).Run(func(mock.Arguments) {
		during = c.State()
	})

	require.NoError(t, c.Commit(ctx, b))
	assert.Equal(t, StateCommitting, during)
	assert.Equal(t, StateClean, c.State())
}

func TestGetOrCreateByValue(t *testing.T) {
	ctx := context.Background()
	b := &mockBackend{}
	b.On("List", mock.Anything, "interface/bridge/port").Return(portRows(t, "ether1"), nil)

	c, err := Fetch[testPort](ctx, b)
	require.NoError(t, err)

	existing := GetOrCreateByValue(c, portInterface, "ether1")
	assert.Equal(t, "*1", existing.ID.Value())
	assert.False(t, IsModified(existing), "setting an equal value is not a change")

	created := GetOrCreateByValue(c, portInterface, "ether7")
	again := GetOrCreateByValue(c, portInterface, "ether7")
	assert.Same(t, created, again)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, StateStaged, c.State())
}

func TestGetOrCreateByValue2(t *testing.T) {
	c := NewCollection[testPort]([]*testPort{
		loadedPort(t, map[string]string{".id": "*1", "bridge": "bridge1", "interface": "ether1"}),
	})
	bridge := func(p *testPort) *StringField { return &p.Bridge }

	same := GetOrCreateByValue2(c, bridge, "bridge1", portInterface, "ether1")
	assert.Equal(t, "*1", same.ID.Value())

	other := GetOrCreateByValue2(c, bridge, "bridge2", portInterface, "ether1")
	assert.NotSame(t, same, other)
	assert.Equal(t, "bridge2", other.Bridge.Value())
	assert.Equal(t, 2, c.Len())
}

// TestPutAllAside rebuilds a bridge port list declaratively: ports that are
// looked up again survive, the rest are deleted
func TestPutAllAside(t *testing.T) {
	ctx := context.Background()
	b := &mockBackend{}
	b.On("List", mock.Anything, "interface/bridge/port").Return(portRows(t, "ether1", "ether2", "ether3"), nil).Once()

	c, err := Fetch[testPort](ctx, b)
	require.NoError(t, err)

	c.PutAllAsideAndMutate(func(p *testPort) { p.Comment.Set("unused") })
	assert.Zero(t, c.Len())

	kept := GetOrCreateByValue(c, portInterface, "ether2")
	kept.Comment.Clear()
	kept.PVID.Set(20)
	GetOrCreateByValue(c, portInterface, "ether4")

	b.On("Delete", ctx, withIface("ether1")).Return(nil).Once()
	b.On("Delete", ctx, withIface("ether3")).Return(nil).Once()
	b.On("Update", ctx, mock.MatchedBy(func(r Resource) bool {
		return r.(*testPort).Interface.Value() == "ether2" && r.(*testPort).PVID.Value() == 20
	})).Return(nil).Once()
	b.On("Add", ctx, withIface("ether4")).Return(nil).Once()
	b.On("List", mock.Anything, "interface/bridge/port").Return(portRows(t, "ether2", "ether4"), nil).Once()

	require.NoError(t, c.Commit(ctx, b))
	b.AssertExpectations(t)
}

func TestPutAsideAndMutate(t *testing.T) {
	var fetched []*testPort
	for _, r := range portRows(t, "ether1", "ether2", "ether3")() {
		fetched = append(fetched, r.(*testPort))
	}
	c := NewCollection(fetched)

	odd := func(p *testPort) bool { return p.Interface.Value() != "ether2" }
	c.PutAsideAndMutate(odd, func(p *testPort) { p.PVID.Set(99) })
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, uint16(1), fetched[1].PVID.Value(), "only matching ports are mutated")
	assert.Equal(t, uint16(99), fetched[0].PVID.Value())

	restored := c.GetOrDefault(func(p *testPort) bool { return p.Interface.Value() == "ether3" })
	assert.Same(t, fetched[2], restored)
	assert.Equal(t, 2, c.Len())
}

func TestRemoveAdded(t *testing.T) {
	c := NewCollection[testPort, *testPort](nil)
	p := &testPort{}
	p.Interface.Set("ether1")
	c.Add(p)
	c.Remove(func(p *testPort) bool { return p.Interface.Value() == "ether1" })

	assert.Zero(t, c.Len())
	b := &mockBackend{}
	b.On("List", mock.Anything, "interface/bridge/port").Return(nil, nil)
	require.NoError(t, c.Commit(context.Background(), b))
	b.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	b.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCollectionStateString(t *testing.T) {
	tests := map[CollectionState]string{
		StateClean:          "clean",
		StateStaged:         "staged",
		StateCommitting:     "committing",
		CollectionState(42): "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("CollectionState(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
