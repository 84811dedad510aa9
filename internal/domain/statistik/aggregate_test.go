package statistik

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"simpeg/internal/domain/pegawai"
)

func TestGenderDistribution(t *testing.T) {
	rows := []pegawai.Record{
		{JenisKelamin: "M"},
		{JenisKelamin: "F"},
		{JenisKelamin: "Pria"},
		{JenisKelamin: "Wanita"},
		{JenisKelamin: "X"},
	}

	got := GenderDistribution(rows)
	counts := map[string]int{}
	for _, entry := range got {
		counts[entry.Label] = entry.Count
	}

	want := map[string]int{"LAKI-LAKI": 2, "PEREMPUAN": 2, "X": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("unexpected distribution: %v", counts)
	}
	if got[len(got)-1].Label != "X" {
		t.Fatalf("singleton bucket must sort last, got %v", got)
	}
}

func TestAgeBuckets(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	rows := []pegawai.Record{
		{TanggalLahir: fmt.Sprintf("%d-06-15", now.Year()-25)},
		{TanggalLahir: fmt.Sprintf("%d-01-01", now.Year()-61)},
		{TanggalLahir: "bukan tanggal"},
	}

	got := AgeBuckets(rows, now)
	if len(got) != len(AgeBucketLabels) {
		t.Fatalf("expected %d buckets, got %d", len(AgeBucketLabels), len(got))
	}

	total := 0
	byLabel := map[string]int{}
	for _, bucket := range got {
		byLabel[bucket.Label] = bucket.Count
		total += bucket.Count
	}
	if byLabel["20–29"] != 1 {
		t.Fatalf("expected one row in 20–29, got %d", byLabel["20–29"])
	}
	if byLabel["60+"] != 1 {
		t.Fatalf("expected one row in 60+, got %d", byLabel["60+"])
	}
	if total != 2 {
		t.Fatalf("unparsable birth dates must be excluded, total=%d", total)
	}
	if got[0].Label != "<20" || got[0].Count != 0 {
		t.Fatalf("empty buckets must still appear in order, got %+v", got[0])
	}
}

func TestEducationDistribution(t *testing.T) {
	rows := []pegawai.Record{
		{TingkatPendidikan: "Sarjana"},
		{TingkatPendidikan: "S1"},
		{TingkatPendidikan: "magister"},
		{TingkatPendidikan: "SMK"},
		{TingkatPendidikan: "Paket C"},
	}

	got := EducationDistribution(rows)
	want := []LabelCount{
		{Label: "PAKET C", Count: 1},
		{Label: "S1", Count: 2},
		{Label: "S2", Count: 1},
		{Label: "SMA", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected distribution: %v", got)
	}
}

func trendRows() []pegawai.Record {
	return []pegawai.Record{
		{Nama: "Budi Santoso", NIP: "1001", NamaJabatan: "Analis", UnorInduk: "Dinas A", TMTJabatan: "2021-02-01"},
		{Nama: "Siti Aminah", NIP: "1002", NamaJabatan: "Analis", UnorInduk: "Dinas A", TMTJabatan: "2021-09-10"},
		{Nama: "Joko Susilo", NIP: "1003", NamaJabatan: "Kepala Seksi", UnorInduk: "Dinas B", TMTJabatan: "2022-05-20"},
		{Nama: "Rina Wati", NIP: "1004", NamaJabatan: "Arsiparis", UnorInduk: "Dinas B", TMTJabatan: "tidak valid"},
	}
}

func TestHeadcountByUnorInduk(t *testing.T) {
	got := HeadcountByUnorInduk(trendRows(), "")
	want := []LabelCount{{Label: "Dinas A", Count: 2}, {Label: "Dinas B", Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected headcount: %v", got)
	}

	filtered := HeadcountByUnorInduk(trendRows(), "Dinas A")
	if len(filtered) != 1 || filtered[0].Count != 2 {
		t.Fatalf("unexpected filtered headcount: %v", filtered)
	}
}

func TestHeadcountByNamaJabatanOrdersByCount(t *testing.T) {
	got := HeadcountByNamaJabatan(trendRows(), "")
	if got[0].Label != "Analis" || got[0].Count != 2 {
		t.Fatalf("expected Analis first, got %v", got)
	}
	// ties keep first-seen order
	if got[1].Label != "Kepala Seksi" || got[2].Label != "Arsiparis" {
		t.Fatalf("unexpected tie order: %v", got)
	}
}

func TestYearlyTrend(t *testing.T) {
	got := YearlyTrend(trendRows(), "")
	want := []YearCount{{Year: 2021, Count: 2}, {Year: 2022, Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected yearly trend: %v", got)
	}
}

func TestYearlyTrendWithUnitFilter(t *testing.T) {
	got := YearlyTrend(trendRows(), "Dinas B")
	want := []YearCount{{Year: 2022, Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected filtered trend: %v", got)
	}
}

func TestMonthlyTrendOmitsEmptyMonths(t *testing.T) {
	got := MonthlyTrend(trendRows(), "", 2021)
	want := []MonthCount{{Month: 2, Count: 1}, {Month: 9, Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected monthly trend: %v", got)
	}
	if len(MonthlyTrend(trendRows(), "", 2019)) != 0 {
		t.Fatal("year without rows must yield an empty series")
	}
}

func TestTrendYears(t *testing.T) {
	got := TrendYears(trendRows(), "")
	if !reflect.DeepEqual(got, []int{2021, 2022}) {
		t.Fatalf("unexpected years: %v", got)
	}
}

func TestNominativeReport(t *testing.T) {
	entries := NominativeReport(trendRows(), "Dinas A", "")
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Nama != "Budi Santoso" || entries[0].UnorInduk != "Dinas A" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if len(entries[0].Row()) != len(NominativeColumns) {
		t.Fatal("row projection must match the nominative column set")
	}
}

func TestNominativeReportSearch(t *testing.T) {
	tests := []struct {
		name string
		term string
		want int
	}{
		{name: "match by name fragment", term: "siti", want: 1},
		{name: "match by nip fragment", term: "100", want: 2},
		{name: "no match", term: "zzz", want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NominativeReport(trendRows(), "Dinas A", tc.term)
			if len(got) != tc.want {
				t.Fatalf("expected %d entries, got %d", tc.want, len(got))
			}
		})
	}
}

func TestUnits(t *testing.T) {
	got := Units(trendRows())
	if !reflect.DeepEqual(got, []string{"Dinas A", "Dinas B"}) {
		t.Fatalf("unexpected units: %v", got)
	}
}

func TestSummary(t *testing.T) {
	rows := []pegawai.Record{
		{JenisKelamin: "L"},
		{JenisKelamin: "perempuan"},
		{JenisKelamin: "X"},
	}
	got := Summary(rows, 4)
	if got.TotalPegawai != 3 || got.TotalAkun != 4 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if got.LakiLaki != 1 || got.Perempuan != 1 {
		t.Fatalf("unexpected gender cards: %+v", got)
	}
}

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"1999-04-12", true},
		{"12/04/1999", true},
		{"1999-04-12 08:30:00", true},
		{"", false},
		{"12 April 1999", false},
	}

	for _, tc := range tests {
		if _, ok := ParseDate(tc.value); ok != tc.ok {
			t.Fatalf("ParseDate(%q) ok=%v, want %v", tc.value, ok, tc.ok)
		}
	}
}
