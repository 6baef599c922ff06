package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/storefront/internal/catalog"
	"github.com/jask/storefront/internal/install"
	"github.com/jask/storefront/internal/navigation"
)

func fixedFetcher(snap catalog.Snapshot, err error) catalog.Fetcher {
	return catalog.FetcherFunc(func(context.Context) (catalog.Snapshot, error) { return snap, err })
}

func sampleApps() []catalog.App {
	return []catalog.App{
		{ID: 1, Name: "A", APKURL: "https://example.com/a.apk", Screenshots: []string{"a0", "a1"}},
		{ID: 2, Name: "B", APKURL: "https://example.com/b.apk"},
		{ID: 3, Name: "C", APKURL: ""},
	}
}

func TestSessionBrowseAndInstall(t *testing.T) {
	rec := &install.Recorder{}
	s := New(fixedFetcher(catalog.Snapshot{Success: true, Apps: sampleApps()}, nil), rec, catalog.StoreOptions{})
	require.NotEmpty(t, s.ID)
	require.True(t, s.Loading())

	st := s.Start(context.Background())
	require.Equal(t, catalog.OutcomeApplied, st.Outcome)
	require.False(t, s.Loading())
	before := s.Catalog()
	require.Len(t, before, 3)

	require.Equal(t, navigation.ViewList, s.View())
	require.ErrorIs(t, s.Install(), ErrNoSelection)

	require.NoError(t, s.SelectID(1))
	require.Equal(t, navigation.ViewDetail, s.View())
	require.Equal(t, 2, s.Carousel().Pages())
	require.True(t, s.Carousel().Next())

	require.NoError(t, s.Install())
	reqs := rec.Requests()
	require.Len(t, reqs, 1)
	require.Equal(t, "https://example.com/a.apk", reqs[0].Data)

	require.True(t, s.Back())
	require.Equal(t, navigation.ViewList, s.View())
	require.Nil(t, s.Carousel())
	require.Equal(t, before, s.Catalog(), "selection does not touch the catalog")
}

func TestSessionSelectReplacesDetail(t *testing.T) {
	s := New(fixedFetcher(catalog.Snapshot{Success: true, Apps: sampleApps()}, nil), &install.Recorder{}, catalog.StoreOptions{})
	s.Start(context.Background())

	require.NoError(t, s.SelectID(1))
	require.NoError(t, s.SelectID(2))
	got, ok := s.Selected()
	require.True(t, ok)
	require.Equal(t, 2, got.ID)
	require.Equal(t, 0, s.Carousel().Pages())

	require.ErrorIs(t, s.SelectID(99), ErrUnknownApp)
	got, _ = s.Selected()
	require.Equal(t, 2, got.ID, "unknown id leaves the detail view alone")
}

func TestSessionInstallRejectsMissingURL(t *testing.T) {
	rec := &install.Recorder{}
	s := New(fixedFetcher(catalog.Snapshot{Success: true, Apps: sampleApps()}, nil), rec, catalog.StoreOptions{})
	s.Start(context.Background())

	require.NoError(t, s.SelectID(3))
	require.ErrorIs(t, s.Install(), install.ErrMissingPackageURL)
	require.Empty(t, rec.Requests())
}

func TestSessionFetchFailureLeavesEmptyCatalog(t *testing.T) {
	s := New(fixedFetcher(catalog.Snapshot{}, errors.New("timeout")), nil, catalog.StoreOptions{})
	st := s.Start(context.Background())
	require.Equal(t, catalog.OutcomeFailed, st.Outcome)
	require.False(t, s.Loading())
	require.Empty(t, s.Catalog())
	require.ErrorIs(t, s.SelectID(1), ErrUnknownApp)
}
