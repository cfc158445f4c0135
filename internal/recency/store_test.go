package recency_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"ulascansenturk/weather-dashboard/internal/db/kvstore"
	"ulascansenturk/weather-dashboard/internal/recency"

	"github.com/stretchr/testify/suite"
)

type failingBackend struct {
	getErr error
	setErr error
	sets   int
}

func (f *failingBackend) Get(context.Context, string) (string, bool, error) {
	return "", false, f.getErr
}

func (f *failingBackend) Set(context.Context, string, string) error {
	f.sets++
	return f.setErr
}

type RecencyStoreTestSuite struct {
	suite.Suite
	backend *kvstore.MemoryStore
	ctx     context.Context
}

func (s *RecencyStoreTestSuite) SetupTest() {
	s.backend = kvstore.NewMemoryStore()
	s.ctx = context.Background()
}

func (s *RecencyStoreTestSuite) names(locs []recency.Location) []string {
	out := make([]string, 0, len(locs))
	for _, l := range locs {
		out = append(out, l.Name)
	}
	return out
}

func (s *RecencyStoreTestSuite) TestEmptyBackendStartsEmpty() {
	store := recency.NewStore(s.ctx, s.backend, "")
	s.Empty(store.List())
}

func (s *RecencyStoreTestSuite) TestRecordSameNameTwiceKeepsOneEntry() {
	store := recency.NewStore(s.ctx, s.backend, recency.DefaultKey)

	store.Record(s.ctx, "Paris", 48.85, 2.35)
	store.Record(s.ctx, "Paris", 48.86, 2.34)

	list := store.List()
	s.Len(list, 1)
	s.Equal(recency.Location{Name: "Paris", Lat: 48.86, Lon: 2.34}, list[0])
}

func (s *RecencyStoreTestSuite) TestRecordMovesExistingToFront() {
	store := recency.NewStore(s.ctx, s.backend, recency.DefaultKey)

	store.Record(s.ctx, "Paris", 1, 1)
	store.Record(s.ctx, "London", 2, 2)
	store.Record(s.ctx, "Rome", 3, 3)
	store.Record(s.ctx, "Paris", 1, 1)

	s.Equal([]string{"Paris", "Rome", "London"}, s.names(store.List()))
}

func (s *RecencyStoreTestSuite) TestNamesAreCaseSensitive() {
	store := recency.NewStore(s.ctx, s.backend, recency.DefaultKey)

	store.Record(s.ctx, "paris", 1, 1)
	store.Record(s.ctx, "Paris", 1, 1)

	s.Equal([]string{"Paris", "paris"}, s.names(store.List()))
}

func (s *RecencyStoreTestSuite) TestSevenDistinctNamesKeepsSixMostRecent() {
	store := recency.NewStore(s.ctx, s.backend, recency.DefaultKey)

	for i := 1; i <= 7; i++ {
		store.Record(s.ctx, fmt.Sprintf("City%d", i), float64(i), float64(i))
	}

	s.Equal([]string{"City7", "City6", "City5", "City4", "City3", "City2"}, s.names(store.List()))
}

func (s *RecencyStoreTestSuite) TestPersistsAndReloads() {
	store := recency.NewStore(s.ctx, s.backend, recency.DefaultKey)
	store.Record(s.ctx, "Oslo", 59.91, 10.75)
	store.Record(s.ctx, "Tokyo", 35.68, 139.69)

	raw, found, err := s.backend.Get(s.ctx, recency.DefaultKey)
	s.Require().NoError(err)
	s.Require().True(found)

	var persisted []recency.Location
	s.Require().NoError(json.Unmarshal([]byte(raw), &persisted))
	s.Equal([]string{"Tokyo", "Oslo"}, s.names(persisted))

	reloaded := recency.NewStore(s.ctx, s.backend, recency.DefaultKey)
	s.Equal(store.List(), reloaded.List())
}

func (s *RecencyStoreTestSuite) TestMalformedDataStartsEmpty() {
	s.Require().NoError(s.backend.Set(s.ctx, recency.DefaultKey, "{not json"))

	store := recency.NewStore(s.ctx, s.backend, recency.DefaultKey)
	s.Empty(store.List())

	store.Record(s.ctx, "Lima", -12.04, -77.04)
	s.Equal([]string{"Lima"}, s.names(store.List()))
}

func (s *RecencyStoreTestSuite) TestOversizedPersistedListIsTrimmed() {
	raw := `[{"name":"A"},{"name":"B"},{"name":"A"},{"name":"C"},{"name":"D"},{"name":"E"},{"name":"F"},{"name":"G"}]`
	s.Require().NoError(s.backend.Set(s.ctx, recency.DefaultKey, raw))

	store := recency.NewStore(s.ctx, s.backend, recency.DefaultKey)

	s.Equal([]string{"A", "B", "C", "D", "E", "F"}, s.names(store.List()))
}

func (s *RecencyStoreTestSuite) TestBackendFailuresAreNotFatal() {
	backend := &failingBackend{getErr: errors.New("unavailable"), setErr: errors.New("quota exceeded")}

	store := recency.NewStore(s.ctx, backend, recency.DefaultKey)
	s.Empty(store.List())

	store.Record(s.ctx, "Cairo", 30.04, 31.24)

	s.Equal(1, backend.sets)
	s.Equal([]string{"Cairo"}, s.names(store.List()))
}

func (s *RecencyStoreTestSuite) TestListReturnsCopy() {
	store := recency.NewStore(s.ctx, s.backend, recency.DefaultKey)
	store.Record(s.ctx, "Lima", 0, 0)

	list := store.List()
	list[0].Name = "changed"

	s.Equal("Lima", store.List()[0].Name)
}

func TestRecencyStoreTestSuite(t *testing.T) {
	suite.Run(t, new(RecencyStoreTestSuite))
}
