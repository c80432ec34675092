package filetype

// knownExtensions lists every extension a type query may name directly.
// Duplicates are removed when the package initializes.
var knownExtensions = []string{
	// office documents
	"pdf", "doc", "docx", "docm", "dotx", "dotm",
	"xls", "xlsx", "xlsm", "xlsb", "xltx", "xltm",
	"ppt", "pptx", "pptm", "potx", "potm",
	"txt", "rtf", "odt", "ods", "odp", "md", "mdx",

	// tabular data
	"csv", "tsv", "json", "xml", "parquet", "feather",

	// bitmap and vector images
	"jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff", "webp", "svg", "ico", "apng", "jfif", "avif",
	// camera raw
	"cr2", "cr3", "nef", "arw", "dng", "rw2", "raf", "orf", "srw", "pef", "heic", "heif",
	// design
	"psd", "ai", "eps", "indd", "xd", "fig", "sketch",

	// video
	"mp4", "avi", "mkv", "mov", "wmv", "flv", "webm", "3gp", "3g2", "m4v", "ts", "m2ts", "mts", "ogv", "mpeg", "mpg",

	// audio
	"mp3", "wav", "flac", "aac", "ogg", "oga", "m4a", "wma", "opus", "aiff", "aif", "aifc", "amr", "mid", "midi", "caf",

	// source code and scripts
	"c", "cpp", "h", "hpp", "cs", "java", "py", "js", "jsx", "ts", "tsx", "php", "rb", "go", "rs",
	"swift", "kt", "m", "html", "css", "scss", "less", "json", "xml", "yml", "yaml", "sh", "bash", "zsh",
	"bat", "ps1", "pl", "lua", "asm", "vhd", "vhdl", "sv", "svh", "vue", "svelte", "ipynb",
	// dot-less names treated as their own extension
	"dockerfile", "makefile", "procfile", "cmakelists.txt", "gitignore",

	// systems and networking
	"pkt", "dll", "so", "dylib", "exe", "bin", "hex", "iso", "img", "dmg", "apk", "aab", "xapk", "ipa", "jar", "war", "ear", "msi",
	"deb", "rpm", "pkg", "appimage",

	// archives
	"zip", "rar", "7z", "tar", "gz", "bz2", "xz", "zst",
	"tar.gz", "tar.bz2", "tar.xz", "tar.zst", "tgz", "tbz2", "txz", "tzst",

	// databases, dumps, mail, calendars
	"db", "sqlite", "sqlite3", "db3", "accdb", "mdb", "sql", "dump", "psql",
	"eml", "msg", "ics",

	// e-books
	"epub", "mobi", "azw3",

	// CAD and 3D
	"dwg", "dxf", "step", "stp", "iges", "igs", "obj", "fbx", "glb", "gltf", "blend", "stl",

	// GIS
	"shp", "geojson", "kml", "kmz", "gpx", "mbtiles",

	// fonts
	"ttf", "otf", "woff", "woff2", "eot",

	// certificates and keys
	"pem", "cer", "crt", "p12", "pfx", "key",

	// misc
	"log", "cfg", "conf", "ini", "toml", "properties", "env", "dotenv",
	"db", "sqlite", "bak", "tmp", "lock", "license",
}

var (
	images       = []string{"jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff", "webp", "svg", "ico", "apng", "jfif", "avif", "heic", "heif"}
	videos       = []string{"mp4", "avi", "mkv", "mov", "wmv", "flv", "webm", "3gp", "3g2", "m4v", "ts", "m2ts", "mts", "ogv", "mpeg", "mpg"}
	sounds       = []string{"mp3", "wav", "flac", "aac", "ogg", "oga", "m4a", "wma", "opus", "aiff", "aif", "aifc", "amr", "mid", "midi", "caf"}
	words        = []string{"doc", "docx", "docm", "dotx", "dotm"}
	sheets       = []string{"xls", "xlsx", "xlsm", "xlsb", "xltx", "xltm", "csv", "tsv", "ods"}
	slides       = []string{"ppt", "pptx", "pptm", "potx", "potm", "odp"}
	configs      = []string{"ini", "cfg", "conf", "yaml", "yml", "toml", "properties", "env", "dotenv"}
	libraries    = []string{"dll", "so", "dylib"}
	programs     = []string{"exe", "apk", "aab", "xapk", "ipa", "msi", "deb", "rpm", "pkg", "appimage", "jar", "war", "ear"}
	archives     = []string{"zip", "rar", "7z", "tar", "gz", "bz2", "xz", "zst", "tar.gz", "tar.bz2", "tar.xz", "tar.zst", "tgz", "tbz2", "txz", "tzst"}
	databases    = []string{"db", "sqlite", "sqlite3", "db3", "accdb", "mdb", "sql", "dump", "psql"}
	certificates = []string{"pem", "cer", "crt", "p12", "pfx", "key"}
)

func concat(sets ...[]string) []string {
	var out []string
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

// aliasEntries maps category words to extension sets. Keys are stored
// diacritic-folded and lower case. Order matters: fuzzy lookups break ties
// in favour of the earlier entry.
var aliasEntries = []struct {
	key  string
	exts []string
}{
	// Vietnamese categories
	{"tai lieu", []string{"pdf", "doc", "docx", "docm", "rtf", "txt", "odt", "md", "mdx"}},
	{"van ban", []string{"txt", "md", "mdx", "rtf"}},
	{"word", words},
	{"excel", sheets},
	{"bang tinh", sheets},
	{"powerpoint", slides},
	{"trinh chieu", slides},

	{"anh", images},
	{"hinh", images},
	{"hinh anh", images},
	{"anh raw", []string{"cr2", "cr3", "nef", "arw", "dng", "rw2", "raf", "orf", "srw", "pef"}},
	{"vector", []string{"svg", "ai", "eps"}},
	{"thiet ke", []string{"psd", "ai", "indd", "xd", "fig", "sketch"}},

	{"video", videos},
	{"am thanh", sounds},

	{"ma nguon", []string{"c", "cpp", "h", "hpp", "cs", "java", "py", "js", "jsx", "ts", "tsx", "php", "rb", "go", "rs", "swift", "kt", "m", "html", "css", "scss", "less", "vue", "svelte", "ipynb"}},
	{"script", []string{"sh", "bash", "zsh", "bat", "ps1", "py", "pl", "rb", "php", "js", "ts"}},
	{"json", []string{"json"}},
	{"html", []string{"html"}},
	{"css", []string{"css", "scss", "less"}},

	{"cau hinh", configs},
	{"config", configs},

	{"packet tracer", []string{"pkt"}},
	{"thu vien", libraries},
	{"chuong trinh", programs},
	{"disk image", []string{"iso", "img", "dmg"}},

	{"nen", archives},

	{"co so du lieu", databases},
	{"email", []string{"eml", "msg"}},
	{"lich", []string{"ics"}},
	{"ebook", []string{"epub", "mobi", "azw3", "pdf"}},

	{"cad", []string{"dwg", "dxf", "step", "stp", "iges", "igs"}},
	{"3d", []string{"obj", "fbx", "glb", "gltf", "blend", "stl"}},
	{"gis", []string{"shp", "geojson", "kml", "kmz", "gpx", "mbtiles"}},
	{"font", []string{"ttf", "otf", "woff", "woff2", "eot"}},

	{"chung chi", certificates},

	{"pdf", []string{"pdf"}},
	{"excel spreadsheet", []string{"xls", "xlsx", "xlsm", "xlsb"}},
	{"powerpoint presentation", []string{"ppt", "pptx", "pptm"}},

	// English synonyms
	{"photo", images},
	{"photos", images},
	{"picture", images},
	{"pictures", images},
	{"image", images},
	{"images", images},

	{"videos", videos},
	{"clip", videos},
	{"movie", videos},
	{"movies", videos},

	{"audio", sounds},
	{"sound", sounds},
	{"music", sounds},
	{"song", sounds},

	{"document", concat(words, []string{"pdf"})},
	{"documents", concat(words, []string{"pdf"})},
	{"spreadsheet", sheets},
	{"presentation", slides},

	{"compress", archives},
	{"archive", archives},
	{"lib", libraries},
	{"library", libraries},
	{"program", programs},
	{"app", programs},
	{"certificate", certificates},
	{"database", databases},
}
