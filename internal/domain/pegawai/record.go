package pegawai

// Record is one employee row. Every attribute is kept as the string the
// upload carried; dates are parsed only where a report needs them.
type Record struct {
	Nama              string `json:"nama"`
	NIP               string `json:"nip"`
	GelarDepan        string `json:"gelarDepan"`
	GelarBelakang     string `json:"gelarBelakang"`
	TempatLahir       string `json:"tempatLahir"`
	TanggalLahir      string `json:"tanggalLahir"`
	JenisKelamin      string `json:"jenisKelamin"`
	Agama             string `json:"agama"`
	JenisKawin        string `json:"jenisKawin"`
	NIK               string `json:"nik"`
	NomorHP           string `json:"nomorHp"`
	Email             string `json:"email"`
	Alamat            string `json:"alamat"`
	NPWP              string `json:"npwp"`
	BPJS              string `json:"bpjs"`
	JenisPegawai      string `json:"jenisPegawai"`
	KedudukanHukum    string `json:"kedudukanHukum"`
	StatusCPNSPNS     string `json:"statusCpnsPns"`
	KartuASNVirtual   string `json:"kartuAsnVirtual"`
	TMTCPNS           string `json:"tmtCpns"`
	TMTPNS            string `json:"tmtPns"`
	GolAwal           string `json:"golAwal"`
	GolAkhir          string `json:"golAkhir"`
	TMTGolongan       string `json:"tmtGolongan"`
	MKTahun           string `json:"mkTahun"`
	MKBulan           string `json:"mkBulan"`
	JenisJabatan      string `json:"jenisJabatan"`
	NamaJabatan       string `json:"namaJabatan"`
	TMTJabatan        string `json:"tmtJabatan"`
	TingkatPendidikan string `json:"tingkatPendidikan"`
	NamaPendidikan    string `json:"namaPendidikan"`
	NamaUnor          string `json:"namaUnor"`
	UnorInduk         string `json:"unorInduk"`
}

type column struct {
	name string
	get  func(*Record) string
	set  func(*Record, string)
}

// columns is the authoritative schema: uploads must carry every name here
// (after trim+uppercase normalization) and exports emit them in this order.
var columns = []column{
	{"NAMA", func(r *Record) string { return r.Nama }, func(r *Record, v string) { r.Nama = v }},
	{"NIP", func(r *Record) string { return r.NIP }, func(r *Record, v string) { r.NIP = v }},
	{"GELAR DEPAN", func(r *Record) string { return r.GelarDepan }, func(r *Record, v string) { r.GelarDepan = v }},
	{"GELAR BELAKANG", func(r *Record) string { return r.GelarBelakang }, func(r *Record, v string) { r.GelarBelakang = v }},
	{"TEMPAT LAHIR", func(r *Record) string { return r.TempatLahir }, func(r *Record, v string) { r.TempatLahir = v }},
	{"TANGGAL LAHIR", func(r *Record) string { return r.TanggalLahir }, func(r *Record, v string) { r.TanggalLahir = v }},
	{"JENIS KELAMIN", func(r *Record) string { return r.JenisKelamin }, func(r *Record, v string) { r.JenisKelamin = v }},
	{"AGAMA", func(r *Record) string { return r.Agama }, func(r *Record, v string) { r.Agama = v }},
	{"JENIS KAWIN", func(r *Record) string { return r.JenisKawin }, func(r *Record, v string) { r.JenisKawin = v }},
	{"NIK", func(r *Record) string { return r.NIK }, func(r *Record, v string) { r.NIK = v }},
	{"NOMOR HP", func(r *Record) string { return r.NomorHP }, func(r *Record, v string) { r.NomorHP = v }},
	{"EMAIL", func(r *Record) string { return r.Email }, func(r *Record, v string) { r.Email = v }},
	{"ALAMAT", func(r *Record) string { return r.Alamat }, func(r *Record, v string) { r.Alamat = v }},
	{"NPWP", func(r *Record) string { return r.NPWP }, func(r *Record, v string) { r.NPWP = v }},
	{"BPJS", func(r *Record) string { return r.BPJS }, func(r *Record, v string) { r.BPJS = v }},
	{"JENIS PEGAWAI", func(r *Record) string { return r.JenisPegawai }, func(r *Record, v string) { r.JenisPegawai = v }},
	{"KEDUDUKAN HUKUM", func(r *Record) string { return r.KedudukanHukum }, func(r *Record, v string) { r.KedudukanHukum = v }},
	{"STATUS CPNS PNS", func(r *Record) string { return r.StatusCPNSPNS }, func(r *Record, v string) { r.StatusCPNSPNS = v }},
	{"KARTU ASN VIRTUAL", func(r *Record) string { return r.KartuASNVirtual }, func(r *Record, v string) { r.KartuASNVirtual = v }},
	{"TMT CPNS", func(r *Record) string { return r.TMTCPNS }, func(r *Record, v string) { r.TMTCPNS = v }},
	{"TMT PNS", func(r *Record) string { return r.TMTPNS }, func(r *Record, v string) { r.TMTPNS = v }},
	{"GOL AWAL", func(r *Record) string { return r.GolAwal }, func(r *Record, v string) { r.GolAwal = v }},
	{"GOL AKHIR", func(r *Record) string { return r.GolAkhir }, func(r *Record, v string) { r.GolAkhir = v }},
	{"TMT GOLONGAN", func(r *Record) string { return r.TMTGolongan }, func(r *Record, v string) { r.TMTGolongan = v }},
	{"MK TAHUN", func(r *Record) string { return r.MKTahun }, func(r *Record, v string) { r.MKTahun = v }},
	{"MK BULAN", func(r *Record) string { return r.MKBulan }, func(r *Record, v string) { r.MKBulan = v }},
	{"JENIS JABATAN", func(r *Record) string { return r.JenisJabatan }, func(r *Record, v string) { r.JenisJabatan = v }},
	{"NAMA JABATAN", func(r *Record) string { return r.NamaJabatan }, func(r *Record, v string) { r.NamaJabatan = v }},
	{"TMT JABATAN", func(r *Record) string { return r.TMTJabatan }, func(r *Record, v string) { r.TMTJabatan = v }},
	{"TINGKAT PENDIDIKAN", func(r *Record) string { return r.TingkatPendidikan }, func(r *Record, v string) { r.TingkatPendidikan = v }},
	{"NAMA PENDIDIKAN", func(r *Record) string { return r.NamaPendidikan }, func(r *Record, v string) { r.NamaPendidikan = v }},
	{"NAMA UNOR", func(r *Record) string { return r.NamaUnor }, func(r *Record, v string) { r.NamaUnor = v }},
	{"UNOR INDUK", func(r *Record) string { return r.UnorInduk }, func(r *Record, v string) { r.UnorInduk = v }},
}

// Columns returns the expected column names in schema order.
func Columns() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.name
	}
	return out
}

// Value returns the field stored under a normalized column name.
func (r *Record) Value(name string) (string, bool) {
	for _, c := range columns {
		if c.name == name {
			return c.get(r), true
		}
	}
	return "", false
}

// SetValue writes the field stored under a normalized column name. Unknown
// names are ignored and reported as false.
func (r *Record) SetValue(name, value string) bool {
	for _, c := range columns {
		if c.name == name {
			c.set(r, value)
			return true
		}
	}
	return false
}

// Row projects the record to a string slice in schema order.
func (r *Record) Row() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.get(r)
	}
	return out
}
