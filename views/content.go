package views

// Fixed copy for the informational pages.

type Milestone struct {
	Year  string
	Title string
	Text  string
}

type Official struct {
	Name     string
	Role     string
	ImageURL string
}

type FAQ struct {
	Question string
	Answer   string
}

var Milestones = []Milestone{
	{"1955", "Berdirinya PBVSI", "Persatuan Bola Voli Seluruh Indonesia berdiri secara nasional dan pembentukan pengurus di Sulawesi Utara segera menyusul."},
	{"1970-an", "Era Emas Voli Tarkam", "Bola voli menjadi olahraga rakyat di Minahasa dan Manado, melahirkan klub-klub legendaris kompetisi antar kampung."},
	{"1990-an", "Prestasi Nasional", "Tim Sulawesi Utara menembus empat besar PON dan mengirim pemain ke tim nasional."},
	{"2010", "Modernisasi Organisasi", "Manajemen organisasi diperbarui dengan database atlet digital dan standarisasi pelatihan wasit."},
	{"2024", "Visi Menuju PON", "Pengurus menargetkan tim putra dan putri lolos ke PON serta fasilitas latihan berstandar internasional."},
}

var Board = []Official{
	{"Ir. John Doe, M.Si", "Ketua Umum", "https://picsum.photos/200/200?random=10"},
	{"Bpk. Michael Smith", "Wakil Ketua I", "https://picsum.photos/200/200?random=11"},
	{"Ibu Sarah Johnson", "Sekretaris Umum", "https://picsum.photos/200/200?random=12"},
	{"Bpk. Andi Pratama", "Bendahara", "https://picsum.photos/200/200?random=13"},
}

var Divisions = []Official{
	{"Coach Budi", "Bidang Prestasi", "https://picsum.photos/150/150?random=14"},
	{"Siti Aminah", "Humas & Media", "https://picsum.photos/150/150?random=15"},
	{"Robert W", "Bidang Perwasitan", "https://picsum.photos/150/150?random=16"},
	{"Dr. Ratna", "Bidang Kesehatan", "https://picsum.photos/150/150?random=17"},
	{"Ferry K.", "Bidang Kompetisi", "https://picsum.photos/150/150?random=18"},
	{"Lina M.", "Bidang Usaha Dana", "https://picsum.photos/150/150?random=19"},
}

var Missions = []string{
	"Melaksanakan pembinaan atlet usia dini secara berjenjang dan berkelanjutan.",
	"Meningkatkan kualitas pelatih dan wasit melalui sertifikasi nasional.",
	"Memperbanyak kompetisi lokal yang berkualitas di seluruh Kabupaten/Kota.",
}

var FAQs = []FAQ{
	{"Bagaimana cara mendaftarkan klub baru?", "Kunjungi sekretariat PBVSI Sulut dengan membawa dokumen legalitas klub, daftar pemain, dan surat rekomendasi dari pengurus cabang kabupaten/kota."},
	{"Apakah ada biaya untuk seleksi atlet daerah?", "Seleksi atlet daerah yang diselenggarakan resmi oleh PBVSI Sulut tidak dipungut biaya. Waspadai penipuan yang mengatasnamakan pengurus."},
	{"Bolehkah masyarakat umum menyewa lapangan latihan?", "GOR Hall B terbuka untuk umum di luar jadwal Pelatda. Hubungi sekretariat untuk jadwal dan biaya sewa."},
}
