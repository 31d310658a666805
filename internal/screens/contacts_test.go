package screens

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voisa/voictl/internal/api"
)

func TestFilterContactsMatchesNameCaseInsensitive(t *testing.T) {
	contacts := []api.Contact{
		{ID: "1", Name: "Ann", Number: "123"},
		{ID: "2", Name: "Bob", Number: "456"},
	}

	got := FilterContacts(contacts, "an")
	require.Len(t, got, 1)
	assert.Equal(t, "Ann", got[0].Name)

	got = FilterContacts(contacts, "BOB")
	require.Len(t, got, 1)
	assert.Equal(t, "Bob", got[0].Name)
}

func TestFilterContactsMatchesNumberSubstring(t *testing.T) {
	contacts := []api.Contact{
		{ID: "1", Name: "Ann", Number: "123"},
		{ID: "2", Name: "Bob", Number: "456"},
	}

	got := FilterContacts(contacts, "45")
	require.Len(t, got, 1)
	assert.Equal(t, "Bob", got[0].Name)
}

func TestFilterContactsEmptyQueryReturnsAll(t *testing.T) {
	contacts := []api.Contact{
		{ID: "1", Name: "Ann", Number: "123"},
		{ID: "2", Name: "Bob", Number: "456"},
	}
	assert.Equal(t, contacts, FilterContacts(contacts, ""))
}

func TestDeletePatchesLocalListWithoutRefetch(t *testing.T) {
	fake := &fakeContactsAPI{contacts: []api.Contact{
		{ID: "1", Name: "Ann", Number: "123"},
		{ID: "2", Name: "Bob", Number: "456"},
	}}
	ui, _, _ := testUI()
	screen := NewContactsScreen(fake, ui)

	require.NoError(t, screen.List(context.Background(), ""))
	require.Equal(t, 1, fake.listCalls)

	require.NoError(t, screen.Delete(context.Background(), "1"))
	assert.Equal(t, []string{"1"}, fake.deleteCalls)
	assert.Equal(t, 1, fake.listCalls, "delete should patch locally, not refetch")

	require.Len(t, screen.contacts, 1)
	assert.Equal(t, "Bob", screen.contacts[0].Name)
}

func TestDeleteFailureKeepsList(t *testing.T) {
	fake := &fakeContactsAPI{
		contacts:  []api.Contact{{ID: "1", Name: "Ann", Number: "123"}},
		deleteErr: errors.New("boom"),
	}
	ui, _, _ := testUI()
	screen := NewContactsScreen(fake, ui)

	require.NoError(t, screen.List(context.Background(), ""))
	require.Error(t, screen.Delete(context.Background(), "1"))
	assert.Len(t, screen.contacts, 1)
}

func TestFailedRefreshKeepsPriorContacts(t *testing.T) {
	fake := &fakeContactsAPI{contacts: []api.Contact{
		{ID: "1", Name: "Ann", Number: "123"},
	}}
	ui, _, _ := testUI()
	screen := NewContactsScreen(fake, ui)

	require.NoError(t, screen.List(context.Background(), ""))

	fake.listErr = errors.New("backend down")
	require.Error(t, screen.List(context.Background(), ""))
	assert.Len(t, screen.contacts, 1, "a failed refresh must not clear the last good list")
}
