package domain

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/cordon/internal/sim/population"
	"github.com/louisbranch/cordon/internal/sim/population/storage"
)

// fakeStore serves storage.Store reads from fixed data.
type fakeStore struct {
	populations map[string]storage.Population
	snapshots   map[string]population.Snapshot
	err         error
}

func (f *fakeStore) SavePopulation(_ context.Context, _ storage.Population, _ population.Snapshot) error {
	return errors.New("read-only fake")
}

func (f *fakeStore) GetPopulation(_ context.Context, id string) (storage.Population, error) {
	if f.err != nil {
		return storage.Population{}, f.err
	}
	pop, ok := f.populations[id]
	if !ok {
		return storage.Population{}, storage.ErrNotFound
	}
	return pop, nil
}

func (f *fakeStore) ListPopulations(_ context.Context, pageSize int, pageToken string) (storage.PopulationPage, error) {
	if f.err != nil {
		return storage.PopulationPage{}, f.err
	}

	ids := make([]string, 0, len(f.populations))
	for id := range f.populations {
		if id > pageToken {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	page := storage.PopulationPage{}
	for _, id := range ids {
		if len(page.Populations) == pageSize {
			page.NextPageToken = page.Populations[pageSize-1].ID
			break
		}
		page.Populations = append(page.Populations, f.populations[id])
	}
	return page, nil
}

func (f *fakeStore) LoadRegistry(_ context.Context, id string) (*population.Registry, error) {
	if f.err != nil {
		return nil, f.err
	}
	snapshot, ok := f.snapshots[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return snapshot.Registry()
}

var _ storage.Store = (*fakeStore)(nil)

func testStore() *fakeStore {
	snapshot := population.Snapshot{
		People: []population.Person{
			{ID: 0, Age: 34},
			{ID: 1, Age: 8},
			{ID: 2, Age: 61},
		},
		Communities: []population.Community{
			{ID: 0, TypeName: "school", PeopleIDs: []int{1}},
			{ID: 1, TypeName: "workplace", PeopleIDs: []int{0, 2}},
		},
	}
	return &fakeStore{
		populations: map[string]storage.Population{
			"pop-1": {
				ID:             "pop-1",
				Name:           "Cedar Hollow",
				Seed:           42,
				NumPeople:      3,
				NumCommunities: 2,
				CreatedAt:      time.Unix(1_700_000_000, 0).UTC(),
			},
		},
		snapshots: map[string]population.Snapshot{"pop-1": snapshot},
	}
}

// vectorRecord builds one wire record from a prefix, zero-padding the rest.
func vectorRecord(prefix ...int) []int {
	rec := make([]int, 30)
	copy(rec, prefix)
	return rec
}

func TestDecodeVectorHandler(t *testing.T) {
	simTime := int64(1_000)

	t.Run("decodes against stored population", func(t *testing.T) {
		handler := DecodeVectorHandler(testStore())

		_, result, err := handler(context.Background(), nil, DecodeVectorInput{
			Vector:       vectorRecord(14, 0, 30, 0, 0, 0, 0, 0, 0, 1),
			PopulationID: "pop-1",
			SimTime:      &simTime,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Commands != 1 {
			t.Fatalf("commands = %d, want 1", result.Commands)
		}

		var doc []map[string]any
		if err := json.Unmarshal([]byte(result.Document), &doc); err != nil {
			t.Fatalf("document is not valid JSON: %v", err)
		}
		if doc[0]["kind"] != "quarantine_single_person" {
			t.Errorf("kind = %v, want quarantine_single_person", doc[0]["kind"])
		}
		cond, ok := doc[0]["condition"].(map[string]any)
		if !ok {
			t.Fatal("expected condition object in document")
		}
		// A 30 minute deadline against a fixed clock at t=1000.
		if cond["value"] != float64(1_000+30*60) {
			t.Errorf("deadline = %v, want %d", cond["value"], 1_000+30*60)
		}
	})

	t.Run("drops no-op records from the count", func(t *testing.T) {
		handler := DecodeVectorHandler(testStore())

		var vec []int
		vec = append(vec, vectorRecord(14, 1, 30, 0, 0, 0, 0, 0, 0, 1)...)
		vec = append(vec, vectorRecord(99)...)

		_, result, err := handler(context.Background(), nil, DecodeVectorInput{
			Vector:       vec,
			PopulationID: "pop-1",
			SimTime:      &simTime,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Commands != 1 {
			t.Fatalf("commands = %d, want 1", result.Commands)
		}
	})

	t.Run("requires population id", func(t *testing.T) {
		handler := DecodeVectorHandler(testStore())

		_, _, err := handler(context.Background(), nil, DecodeVectorInput{
			Vector: vectorRecord(99),
		})
		if err == nil || !strings.Contains(err.Error(), "population_id") {
			t.Fatalf("expected population_id error, got %v", err)
		}
	})

	t.Run("missing population", func(t *testing.T) {
		handler := DecodeVectorHandler(testStore())

		_, _, err := handler(context.Background(), nil, DecodeVectorInput{
			Vector:       vectorRecord(99),
			PopulationID: "nope",
		})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("decode failure surfaces typed error", func(t *testing.T) {
		handler := DecodeVectorHandler(testStore())

		_, _, err := handler(context.Background(), nil, DecodeVectorInput{
			Vector:       vectorRecord(50, 1, 30),
			PopulationID: "pop-1",
			SimTime:      &simTime,
		})
		if err == nil || !strings.Contains(err.Error(), "unknown upcode 50") {
			t.Fatalf("expected unknown upcode error, got %v", err)
		}
	})

	t.Run("store error propagates", func(t *testing.T) {
		broken := testStore()
		broken.err = errors.New("disk gone")
		handler := DecodeVectorHandler(broken)

		_, _, err := handler(context.Background(), nil, DecodeVectorInput{
			Vector:       vectorRecord(99),
			PopulationID: "pop-1",
		})
		if err == nil || !strings.Contains(err.Error(), "disk gone") {
			t.Fatalf("expected store error, got %v", err)
		}
	})

	t.Run("nil store", func(t *testing.T) {
		handler := DecodeVectorHandler(nil)

		_, _, err := handler(context.Background(), nil, DecodeVectorInput{
			Vector:       vectorRecord(99),
			PopulationID: "pop-1",
		})
		if !errors.Is(err, errNoStore) {
			t.Fatalf("expected errNoStore, got %v", err)
		}
	})
}

func TestInspectVectorHandler(t *testing.T) {
	handler := InspectVectorHandler()

	t.Run("reports record claims", func(t *testing.T) {
		var vec []int
		vec = append(vec, vectorRecord(14, 1, 30, 0, 0, 0, 0, 0, 0, 5)...)
		vec = append(vec, vectorRecord(99)...)
		vec = append(vec, vectorRecord(18, 1, 30)...)

		_, result, err := handler(context.Background(), nil, InspectVectorInput{Vector: vec})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(result.Records))
		}

		first := result.Records[0]
		if first.CommandKind != "quarantine_single_person" || !first.Supported {
			t.Errorf("first record = %+v, want supported quarantine_single_person", first)
		}
		if !slices.Equal(first.Targets, []int{5}) {
			t.Errorf("targets = %v, want [5]", first.Targets)
		}
		if !result.Records[1].Nope {
			t.Errorf("second record = %+v, want nope", result.Records[1])
		}
		if result.Records[2].Supported {
			t.Errorf("third record = %+v, want unsupported", result.Records[2])
		}
	})

	t.Run("works without storage", func(t *testing.T) {
		_, result, err := handler(context.Background(), nil, InspectVectorInput{
			Vector: vectorRecord(99),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(result.Records))
		}
	})

	t.Run("malformed length", func(t *testing.T) {
		_, _, err := handler(context.Background(), nil, InspectVectorInput{
			Vector: []int{99, 0, 0},
		})
		if err == nil || !strings.Contains(err.Error(), "not a multiple of record width") {
			t.Fatalf("expected length error, got %v", err)
		}
	})
}

func TestPopulationSummaryHandler(t *testing.T) {
	t.Run("describes stored population", func(t *testing.T) {
		handler := PopulationSummaryHandler(testStore())

		_, result, err := handler(context.Background(), nil, PopulationSummaryInput{PopulationID: "pop-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Name != "Cedar Hollow" || result.Seed != 42 {
			t.Errorf("summary = %+v, want Cedar Hollow seed 42", result)
		}
		if result.People != 3 || result.Communities != 2 {
			t.Errorf("counts = %d people %d communities, want 3 and 2", result.People, result.Communities)
		}
		if result.CreatedAt != 1_700_000_000 {
			t.Errorf("created_at = %d, want 1700000000", result.CreatedAt)
		}
		if result.PersonIDs == nil || result.PersonIDs.Min != 0 || result.PersonIDs.Max != 2 {
			t.Errorf("person id range = %+v, want 0..2", result.PersonIDs)
		}
		if result.CommunityIDs == nil || result.CommunityIDs.Min != 0 || result.CommunityIDs.Max != 1 {
			t.Errorf("community id range = %+v, want 0..1", result.CommunityIDs)
		}
		if result.FamilyIDs != nil {
			t.Errorf("family id range = %+v, want nil for a familyless snapshot", result.FamilyIDs)
		}
	})

	t.Run("missing population", func(t *testing.T) {
		handler := PopulationSummaryHandler(testStore())

		_, _, err := handler(context.Background(), nil, PopulationSummaryInput{PopulationID: "nope"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("nil store", func(t *testing.T) {
		handler := PopulationSummaryHandler(nil)

		_, _, err := handler(context.Background(), nil, PopulationSummaryInput{PopulationID: "pop-1"})
		if !errors.Is(err, errNoStore) {
			t.Fatalf("expected errNoStore, got %v", err)
		}
	})
}

func TestListPopulationsHandler(t *testing.T) {
	manyStore := func() *fakeStore {
		store := testStore()
		for _, id := range []string{"pop-2", "pop-3"} {
			store.populations[id] = storage.Population{ID: id, Name: "Town " + id}
		}
		return store
	}

	t.Run("lists in id order", func(t *testing.T) {
		handler := ListPopulationsHandler(manyStore())

		_, result, err := handler(context.Background(), nil, ListPopulationsInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Populations) != 3 {
			t.Fatalf("expected 3 populations, got %d", len(result.Populations))
		}
		if result.Populations[0].ID != "pop-1" || result.Populations[2].ID != "pop-3" {
			t.Errorf("unexpected order: %+v", result.Populations)
		}
		if result.NextPageToken != "" {
			t.Errorf("next page token = %q, want empty", result.NextPageToken)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		handler := ListPopulationsHandler(manyStore())

		_, first, err := handler(context.Background(), nil, ListPopulationsInput{PageSize: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(first.Populations) != 2 || first.NextPageToken == "" {
			t.Fatalf("first page = %+v, want 2 populations and a token", first)
		}

		_, second, err := handler(context.Background(), nil, ListPopulationsInput{
			PageSize:  2,
			PageToken: first.NextPageToken,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(second.Populations) != 1 || second.Populations[0].ID != "pop-3" {
			t.Fatalf("second page = %+v, want pop-3 only", second)
		}
	})

	t.Run("store error propagates", func(t *testing.T) {
		broken := testStore()
		broken.err = errors.New("disk gone")
		handler := ListPopulationsHandler(broken)

		_, _, err := handler(context.Background(), nil, ListPopulationsInput{})
		if err == nil || !strings.Contains(err.Error(), "disk gone") {
			t.Fatalf("expected store error, got %v", err)
		}
	})

	t.Run("nil store", func(t *testing.T) {
		handler := ListPopulationsHandler(nil)

		_, _, err := handler(context.Background(), nil, ListPopulationsInput{})
		if !errors.Is(err, errNoStore) {
			t.Fatalf("expected errNoStore, got %v", err)
		}
	})
}
