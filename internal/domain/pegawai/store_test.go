package pegawai

import (
	"errors"
	"reflect"
	"testing"

	"simpeg/internal/tabular"
)

func buildRow(values map[string]string) []string {
	row := make([]string, len(Columns()))
	for i, name := range Columns() {
		row[i] = values[name]
	}
	return row
}

func validTable(rows ...map[string]string) tabular.Table {
	table := tabular.Table{Headers: Columns()}
	for _, values := range rows {
		table.Rows = append(table.Rows, buildRow(values))
	}
	return table
}

func TestReplaceAll(t *testing.T) {
	store := NewStore()

	imported, err := store.ReplaceAll(validTable(
		map[string]string{"NAMA": "Budi Santoso", "NIP": "1001"},
		map[string]string{"NAMA": "Siti Aminah", "NIP": "1002"},
	))
	if err != nil {
		t.Fatalf("replace error: %v", err)
	}
	if imported != 2 || store.Len() != 2 {
		t.Fatalf("expected 2 rows, imported=%d len=%d", imported, store.Len())
	}
}

func TestReplaceAllToleratesExtraColumns(t *testing.T) {
	store := NewStore()

	table := validTable(map[string]string{"NAMA": "Budi", "NIP": "1001"})
	table.Headers = append(table.Headers, "KOLOM TAMBAHAN")
	table.Rows[0] = append(table.Rows[0], "diabaikan")

	if _, err := store.ReplaceAll(table); err != nil {
		t.Fatalf("extra columns should be tolerated: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", store.Len())
	}
}

func TestReplaceAllSchemaMismatchLeavesStoreUnchanged(t *testing.T) {
	store := NewStore()
	if err := store.Append(Record{Nama: "Budi", NIP: "1001"}); err != nil {
		t.Fatalf("append error: %v", err)
	}

	table := validTable(map[string]string{"NAMA": "Siti", "NIP": "1002"})
	table.Headers = table.Headers[:len(table.Headers)-2]

	_, err := store.ReplaceAll(table)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(schemaErr.Missing) != 2 {
		t.Fatalf("expected 2 missing columns, got %v", schemaErr.Missing)
	}
	if store.Len() != 1 || store.Snapshot()[0].Nama != "Budi" {
		t.Fatal("store must be unchanged after a rejected import")
	}
}

func TestAppendAndFindByNIP(t *testing.T) {
	store := NewStore()
	rec := Record{Nama: "Budi Santoso", NIP: "1001", NamaJabatan: "Analis", UnorInduk: "Dinas A"}
	if err := store.Append(rec); err != nil {
		t.Fatalf("append error: %v", err)
	}

	matches := store.FindByNIP("1001")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if !reflect.DeepEqual(matches[0], rec) {
		t.Fatalf("record mismatch: %+v", matches[0])
	}
}

func TestAppendRequiresNamaAndNIP(t *testing.T) {
	store := NewStore()
	if err := store.Append(Record{Nama: "Budi"}); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if err := store.Append(Record{NIP: "1001"}); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatal("incomplete records must not be stored")
	}
}

func TestUpdateFieldsFirstMatchOnly(t *testing.T) {
	store := NewStore()
	_ = store.Append(Record{Nama: "Budi", NIP: "1001"})
	_ = store.Append(Record{Nama: "Budi Kedua", NIP: "1001"})

	index, found := store.IndexByNIP("1001")
	if !found || index != 0 {
		t.Fatalf("expected first match at 0, got %d found=%v", index, found)
	}

	if err := store.UpdateFields(index, map[string]string{"NAMA JABATAN": "Kepala Seksi", "nama unor": "Sekretariat"}); err != nil {
		t.Fatalf("update error: %v", err)
	}

	rows := store.Snapshot()
	if rows[0].NamaJabatan != "Kepala Seksi" || rows[0].NamaUnor != "Sekretariat" {
		t.Fatalf("first row not updated: %+v", rows[0])
	}
	if rows[1].NamaJabatan != "" {
		t.Fatal("second match must be left alone")
	}
}

func TestUpdateFieldsOutOfRange(t *testing.T) {
	store := NewStore()
	if err := store.UpdateFields(3, map[string]string{"NAMA": "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteByNIPIsIdempotent(t *testing.T) {
	store := NewStore()
	_ = store.Append(Record{Nama: "Budi", NIP: "1001"})
	_ = store.Append(Record{Nama: "Budi Kedua", NIP: "1001"})
	_ = store.Append(Record{Nama: "Siti", NIP: "1002"})

	if removed := store.DeleteByNIP("1001"); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if removed := store.DeleteByNIP("1001"); removed != 0 {
		t.Fatalf("second delete must remove nothing, got %d", removed)
	}
	if store.Len() != 1 || store.Snapshot()[0].NIP != "1002" {
		t.Fatalf("unexpected rows after delete: %+v", store.Snapshot())
	}
}

func TestClear(t *testing.T) {
	store := NewStore()
	_ = store.Append(Record{Nama: "Budi", NIP: "1001"})
	store.Clear()
	if store.Len() != 0 {
		t.Fatal("expected empty store")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	store := NewStore()
	_ = store.Append(Record{Nama: "Budi", NIP: "1001"})

	snapshot := store.Snapshot()
	snapshot[0].Nama = "Diubah"

	if store.Snapshot()[0].Nama != "Budi" {
		t.Fatal("mutating a snapshot must not touch the store")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	store := NewStore()
	_ = store.Append(Record{Nama: "Budi Santoso", NIP: "1001", JenisKelamin: "L", TMTJabatan: "2021-03-01", UnorInduk: "Dinas A"})
	_ = store.Append(Record{Nama: "Siti Aminah", NIP: "1002", JenisKelamin: "P", TMTJabatan: "2022-07-15", UnorInduk: "Dinas B"})

	rows := store.Snapshot()
	table := make([][]string, len(rows))
	for i := range rows {
		table[i] = rows[i].Row()
	}
	data, err := tabular.WriteCSV(Columns(), table)
	if err != nil {
		t.Fatalf("export error: %v", err)
	}

	parsed, err := tabular.Parse(data, tabular.FormatCSV)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	restored := NewStore()
	if _, err := restored.ReplaceAll(parsed); err != nil {
		t.Fatalf("re-import error: %v", err)
	}
	if !reflect.DeepEqual(store.Snapshot(), restored.Snapshot()) {
		t.Fatal("round-tripped rows differ from the originals")
	}
}

func TestRecordValueAndSetValue(t *testing.T) {
	var rec Record
	if !rec.SetValue("TINGKAT PENDIDIKAN", "S1") {
		t.Fatal("expected known column to be settable")
	}
	if rec.SetValue("KOLOM ASING", "x") {
		t.Fatal("unknown column must be rejected")
	}
	value, ok := rec.Value("TINGKAT PENDIDIKAN")
	if !ok || value != "S1" {
		t.Fatalf("unexpected value %q ok=%v", value, ok)
	}
	if len(rec.Row()) != len(Columns()) {
		t.Fatal("row projection must cover every column")
	}
}
