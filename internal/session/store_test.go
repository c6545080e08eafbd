package session

import (
	"errors"
	"testing"
	"time"

	"github.com/Erenthos/excel-ui/internal/core"
)

func sampleAnalysis(fileName string) *Analysis {
	return &Analysis{
		FileName: fileName,
		Columns:  []string{"amount", "day"},
		Schema: []core.ColumnSchema{
			{Name: "amount", Type: core.TypeNumber},
			{Name: "day", Type: core.TypeDate},
		},
		Summary: core.Summary{
			TotalRows: 2,
			CountByType: map[core.SemanticType]int{
				core.TypeNumber: 1,
				core.TypeDate:   1,
			},
		},
		Chart: &core.ChartSeries{
			XLabel: "day",
			YLabel: "amount",
			Data: []core.ChartPoint{
				{X: "1/5/2024", Y: 1200},
				{X: "1/6/2024", Y: 980},
			},
		},
		Rows: []map[string]any{
			{"amount": "1,200", "day": "2024-01-05"},
			{"amount": "980", "day": "2024-01-06"},
		},
	}
}

func TestStorePutAndSnapshot(t *testing.T) {
	store := NewStore(time.Minute, 10)

	id := store.Put(sampleAnalysis("report.csv"))
	if id == "" {
		t.Fatal("Put returned an empty ID")
	}

	got, err := store.Snapshot(id)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if got.ID != id {
		t.Errorf("ID = %q, want %q", got.ID, id)
	}
	if got.FileName != "report.csv" {
		t.Errorf("FileName = %q, want report.csv", got.FileName)
	}
	if len(got.Rows) != 2 || got.Chart == nil || len(got.Chart.Data) != 2 {
		t.Errorf("snapshot incomplete: rows=%d chart=%v", len(got.Rows), got.Chart)
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	store := NewStore(time.Minute, 10)
	id := store.Put(sampleAnalysis("report.csv"))

	first, err := store.Snapshot(id)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	// Vandalize the copy; the stored original must be unaffected.
	first.Rows[0]["amount"] = "corrupted"
	first.Chart.Data[0].Y = -1
	first.Schema[0].Type = core.TypeText

	second, err := store.Snapshot(id)
	if err != nil {
		t.Fatalf("second Snapshot: %v", err)
	}
	if got := second.Rows[0]["amount"]; got != "1,200" {
		t.Errorf("rows leaked through snapshot: %v", got)
	}
	if got := second.Chart.Data[0].Y; got != 1200 {
		t.Errorf("chart leaked through snapshot: %v", got)
	}
	if got := second.Schema[0].Type; got != core.TypeNumber {
		t.Errorf("schema leaked through snapshot: %v", got)
	}
}

func TestStoreSnapshotUnknownID(t *testing.T) {
	store := NewStore(time.Minute, 10)
	if _, err := store.Snapshot("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(time.Minute, 10)
	id := store.Put(sampleAnalysis("report.csv"))

	if !store.Delete(id) {
		t.Error("Delete = false, want true for existing ID")
	}
	if store.Delete(id) {
		t.Error("second Delete = true, want false")
	}
	if _, err := store.Snapshot(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("err after delete = %v, want ErrNotFound", err)
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	store := NewStore(time.Minute, 10)

	a := sampleAnalysis("first.csv")
	a.CreatedAt = time.Now().Add(-2 * time.Hour)
	store.Put(a)

	b := sampleAnalysis("second.csv")
	b.CreatedAt = time.Now().Add(-1 * time.Hour)
	store.Put(b)

	infos := store.List()
	if len(infos) != 2 {
		t.Fatalf("len(List) = %d, want 2", len(infos))
	}
	if infos[0].FileName != "second.csv" || infos[1].FileName != "first.csv" {
		t.Errorf("order = [%s, %s], want newest first", infos[0].FileName, infos[1].FileName)
	}
	if infos[0].TotalRows != 2 || infos[0].Columns != 2 {
		t.Errorf("info = %+v, want 2 rows and 2 columns", infos[0])
	}
}

func TestStoreCapacityEvictsStalest(t *testing.T) {
	store := NewStore(time.Minute, 2)

	first := store.Put(sampleAnalysis("a.csv"))
	second := store.Put(sampleAnalysis("b.csv"))

	// Read the first entry so the second becomes the stalest.
	if _, err := store.Snapshot(first); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	third := store.Put(sampleAnalysis("c.csv"))

	if store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", store.Len())
	}
	if _, err := store.Snapshot(second); !errors.Is(err, ErrNotFound) {
		t.Errorf("stalest entry survived eviction: err = %v", err)
	}
	for _, id := range []string{first, third} {
		if _, err := store.Snapshot(id); err != nil {
			t.Errorf("entry %s missing after eviction: %v", id, err)
		}
	}
}

func TestStorePruneExpired(t *testing.T) {
	store := NewStore(10*time.Millisecond, 10)
	store.Put(sampleAnalysis("a.csv"))
	store.Put(sampleAnalysis("b.csv"))

	if n := store.PruneExpired(time.Now()); n != 0 {
		t.Errorf("fresh prune removed %d, want 0", n)
	}

	if n := store.PruneExpired(time.Now().Add(time.Second)); n != 2 {
		t.Errorf("stale prune removed %d, want 2", n)
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0 after prune", store.Len())
	}
}

func TestStoreSnapshotRefreshesTTL(t *testing.T) {
	store := NewStore(50*time.Millisecond, 10)
	id := store.Put(sampleAnalysis("a.csv"))

	time.Sleep(30 * time.Millisecond)
	if _, err := store.Snapshot(id); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	// 60ms since Put but only 30ms since the read; still alive.
	if n := store.PruneExpired(time.Now()); n != 0 {
		t.Errorf("prune removed %d, want 0 (read should refresh TTL)", n)
	}
}
