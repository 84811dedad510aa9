// Package statistik computes the derived views of the employee table:
// distributions, per-unit recaps and hiring trends. Every function is a pure
// projection over a store snapshot; none mutate state or cache results.
package statistik

import (
	"sort"
	"strings"
	"time"

	"simpeg/internal/domain/pegawai"
)

type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type MonthCount struct {
	Month int `json:"month"`
	Count int `json:"count"`
}

type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

const (
	GenderMale   = "LAKI-LAKI"
	GenderFemale = "PEREMPUAN"
)

var genderSynonyms = map[string]string{
	"M": GenderMale, "L": GenderMale, "PRIA": GenderMale, "LAKI-LAKI": GenderMale,
	"F": GenderFemale, "P": GenderFemale, "WANITA": GenderFemale, "PEREMPUAN": GenderFemale,
}

var educationSynonyms = map[string]string{
	"SD": "SD", "SEKOLAH DASAR": "SD", "ELEMENTARY SCHOOL": "SD",
	"SMP": "SMP", "SEKOLAH MENENGAH PERTAMA": "SMP", "JUNIOR HIGH": "SMP",
	"SMA": "SMA", "SMU": "SMA", "SMK": "SMA", "MA": "SMA", "SEKOLAH MENENGAH ATAS": "SMA", "HIGH SCHOOL": "SMA",
	"D1": "D1", "DIPLOMA I": "D1",
	"D2": "D2", "DIPLOMA II": "D2",
	"D3": "D3", "DIPLOMA III": "D3", "AHLI MADYA": "D3",
	"D4": "D4", "DIPLOMA IV": "D4", "SARJANA TERAPAN": "D4",
	"S1": "S1", "SARJANA": "S1", "SARJANA STRATA 1": "S1", "UNDERGRADUATE": "S1", "BACHELOR": "S1",
	"S2": "S2", "MAGISTER": "S2", "MASTER": "S2", "MAGISTER MANAJEMEN": "S2", "POSTGRADUATE": "S2",
	"S3": "S3", "DOKTOR": "S3", "PHD": "S3", "DOKTOR ILMU HUKUM": "S3", "DOCTORATE": "S3",
}

// NormalizeGender folds the synonyms for each gender onto one label.
// Anything outside the map passes through verbatim as its own bucket.
func NormalizeGender(value string) string {
	key := strings.ToUpper(strings.TrimSpace(value))
	if canonical, ok := genderSynonyms[key]; ok {
		return canonical
	}
	return key
}

// NormalizeEducation folds education level spellings onto SD..S3.
func NormalizeEducation(value string) string {
	key := strings.ToUpper(strings.TrimSpace(value))
	if canonical, ok := educationSynonyms[key]; ok {
		return canonical
	}
	return key
}

// countBy groups rows by key and orders the result by descending count,
// ties kept in first-seen order.
func countBy(rows []pegawai.Record, key func(pegawai.Record) string) []LabelCount {
	counts := map[string]int{}
	var order []string
	for _, rec := range rows {
		label := key(rec)
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}
	out := make([]LabelCount, 0, len(order))
	for _, label := range order {
		out = append(out, LabelCount{Label: label, Count: counts[label]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// GenderDistribution counts rows per normalized gender label.
func GenderDistribution(rows []pegawai.Record) []LabelCount {
	return countBy(rows, func(rec pegawai.Record) string {
		return NormalizeGender(rec.JenisKelamin)
	})
}

// AgeBucketLabels is the fixed display order of the age distribution.
var AgeBucketLabels = []string{"<20", "20–29", "30–39", "40–49", "50–59", "60+"}

// AgeBuckets distributes rows over fixed age ranges. Age is the bare year
// difference; rows whose TANGGAL LAHIR does not parse are left out entirely,
// while empty buckets still appear with a zero count.
func AgeBuckets(rows []pegawai.Record, now time.Time) []LabelCount {
	counts := make([]int, len(AgeBucketLabels))
	for _, rec := range rows {
		born, ok := ParseDate(strings.TrimSpace(rec.TanggalLahir))
		if !ok {
			continue
		}
		age := now.Year() - born.Year()
		switch {
		case age < 20:
			counts[0]++
		case age < 30:
			counts[1]++
		case age < 40:
			counts[2]++
		case age < 50:
			counts[3]++
		case age < 60:
			counts[4]++
		default:
			counts[5]++
		}
	}
	out := make([]LabelCount, len(AgeBucketLabels))
	for i, label := range AgeBucketLabels {
		out[i] = LabelCount{Label: label, Count: counts[i]}
	}
	return out
}

// EducationDistribution counts rows per normalized education level, sorted
// by label.
func EducationDistribution(rows []pegawai.Record) []LabelCount {
	out := countBy(rows, func(rec pegawai.Record) string {
		return NormalizeEducation(rec.TingkatPendidikan)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// FilterByUnit keeps rows whose trimmed UNOR INDUK equals the filter. An
// empty filter means every unit.
func FilterByUnit(rows []pegawai.Record, unit string) []pegawai.Record {
	if unit == "" {
		return rows
	}
	var out []pegawai.Record
	for _, rec := range rows {
		if strings.TrimSpace(rec.UnorInduk) == unit {
			out = append(out, rec)
		}
	}
	return out
}

// HeadcountByUnorInduk counts rows per parent organizational unit.
func HeadcountByUnorInduk(rows []pegawai.Record, unit string) []LabelCount {
	return countBy(FilterByUnit(rows, unit), func(rec pegawai.Record) string {
		return strings.TrimSpace(rec.UnorInduk)
	})
}

// HeadcountByNamaJabatan counts rows per job title.
func HeadcountByNamaJabatan(rows []pegawai.Record, unit string) []LabelCount {
	return countBy(FilterByUnit(rows, unit), func(rec pegawai.Record) string {
		return strings.TrimSpace(rec.NamaJabatan)
	})
}

// HeadcountByJenisJabatan counts rows per job type.
func HeadcountByJenisJabatan(rows []pegawai.Record, unit string) []LabelCount {
	return countBy(FilterByUnit(rows, unit), func(rec pegawai.Record) string {
		return strings.TrimSpace(rec.JenisJabatan)
	})
}

// Units lists the distinct trimmed UNOR INDUK values, sorted, for the report
// filter picker.
func Units(rows []pegawai.Record) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, rec := range rows {
		unit := strings.TrimSpace(rec.UnorInduk)
		if unit == "" {
			continue
		}
		if _, ok := seen[unit]; ok {
			continue
		}
		seen[unit] = struct{}{}
		out = append(out, unit)
	}
	sort.Strings(out)
	return out
}

// TrendYears lists the distinct years with at least one parseable
// TMT JABATAN, ascending, optionally restricted to one unit.
func TrendYears(rows []pegawai.Record, unit string) []int {
	seen := map[int]struct{}{}
	var out []int
	for _, rec := range FilterByUnit(rows, unit) {
		effective, ok := ParseDate(strings.TrimSpace(rec.TMTJabatan))
		if !ok {
			continue
		}
		if _, dup := seen[effective.Year()]; dup {
			continue
		}
		seen[effective.Year()] = struct{}{}
		out = append(out, effective.Year())
	}
	sort.Ints(out)
	return out
}

// MonthlyTrend counts job-title effective dates per calendar month for one
// year. Months without occurrences are omitted; unparsable dates are dropped.
func MonthlyTrend(rows []pegawai.Record, unit string, year int) []MonthCount {
	counts := map[int]int{}
	for _, rec := range FilterByUnit(rows, unit) {
		effective, ok := ParseDate(strings.TrimSpace(rec.TMTJabatan))
		if !ok || effective.Year() != year {
			continue
		}
		counts[int(effective.Month())]++
	}
	var out []MonthCount
	for month := 1; month <= 12; month++ {
		if counts[month] > 0 {
			out = append(out, MonthCount{Month: month, Count: counts[month]})
		}
	}
	return out
}

// YearlyTrend counts job-title effective dates per calendar year, ascending.
func YearlyTrend(rows []pegawai.Record, unit string) []YearCount {
	counts := map[int]int{}
	for _, rec := range FilterByUnit(rows, unit) {
		effective, ok := ParseDate(strings.TrimSpace(rec.TMTJabatan))
		if !ok {
			continue
		}
		counts[effective.Year()]++
	}
	years := make([]int, 0, len(counts))
	for year := range counts {
		years = append(years, year)
	}
	sort.Ints(years)
	out := make([]YearCount, 0, len(years))
	for _, year := range years {
		out = append(out, YearCount{Year: year, Count: counts[year]})
	}
	return out
}

// NominativeColumns is the reduced column set of the per-unit roster export.
var NominativeColumns = []string{"NAMA", "NIP", "NAMA JABATAN", "JENIS JABATAN", "UNOR INDUK", "NAMA UNOR", "TMT JABATAN"}

// NominativeEntry is one roster line of the per-unit nominative report.
type NominativeEntry struct {
	Nama         string `json:"nama"`
	NIP          string `json:"nip"`
	NamaJabatan  string `json:"namaJabatan"`
	JenisJabatan string `json:"jenisJabatan"`
	UnorInduk    string `json:"unorInduk"`
	NamaUnor     string `json:"namaUnor"`
	TMTJabatan   string `json:"tmtJabatan"`
}

// Row projects the entry in NominativeColumns order.
func (e NominativeEntry) Row() []string {
	return []string{e.Nama, e.NIP, e.NamaJabatan, e.JenisJabatan, e.UnorInduk, e.NamaUnor, e.TMTJabatan}
}

// NominativeReport filters rows to one unit, then applies an optional
// case-insensitive substring search against NIP and NAMA.
func NominativeReport(rows []pegawai.Record, unit, term string) []NominativeEntry {
	needle := strings.ToLower(strings.TrimSpace(term))
	var out []NominativeEntry
	for _, rec := range FilterByUnit(rows, unit) {
		if needle != "" &&
			!strings.Contains(strings.ToLower(rec.NIP), needle) &&
			!strings.Contains(strings.ToLower(rec.Nama), needle) {
			continue
		}
		out = append(out, NominativeEntry{
			Nama:         rec.Nama,
			NIP:          rec.NIP,
			NamaJabatan:  rec.NamaJabatan,
			JenisJabatan: rec.JenisJabatan,
			UnorInduk:    rec.UnorInduk,
			NamaUnor:     rec.NamaUnor,
			TMTJabatan:   rec.TMTJabatan,
		})
	}
	return out
}

// DashboardSummary backs the landing page cards: headcount, account count and
// the two gender cards. Only values the synonym map recognizes land on a
// gender card; anything else counts toward the total alone.
type DashboardSummary struct {
	TotalPegawai int `json:"totalPegawai"`
	TotalAkun    int `json:"totalAkun"`
	LakiLaki     int `json:"lakiLaki"`
	Perempuan    int `json:"perempuan"`
}

func Summary(rows []pegawai.Record, accountCount int) DashboardSummary {
	summary := DashboardSummary{TotalPegawai: len(rows), TotalAkun: accountCount}
	for _, rec := range rows {
		switch NormalizeGender(rec.JenisKelamin) {
		case GenderMale:
			summary.LakiLaki++
		case GenderFemale:
			summary.Perempuan++
		}
	}
	return summary
}
