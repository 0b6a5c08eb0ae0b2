package config

const (
	defaultLibraryDir       = "~/pinball"
	defaultDatabaseDir      = "Databases"
	defaultBackupDir        = "~/.local/share/pintidy/backup"
	defaultLogDir           = "~/.local/share/pintidy/logs"
	defaultLogFormat        = "auto"
	defaultLogLevel         = "info"
	defaultFuzzyThreshold   = 100
	defaultFeedURL          = "https://raw.githubusercontent.com/Fraesh/vps-db/master/vpsdb.json"
	defaultFeedTimeout      = 60
	defaultFeedMaxBytes     = 10 * 1024 * 1024
	defaultFeedCacheTTL     = 3600
	defaultKindredAudio     = ""
	defaultKindredVideo     = "*.srt, *.txt"
	defaultTrainerWheels    = true
	contentTypeTableAudio   = "Table Audio"
	contentTypeLaunchAudio  = "Launch Audio"
	contentTypeTableVideo   = "Table Videos"
	contentTypeBackglass    = "Backglass Videos"
	contentTypeWheelImages  = "Wheel Images"
	contentTypeInstructions = "Instruction Cards"
)

// defaultAuthorTokens are author credits commonly prefixed to shared table
// names in the online feed; matched as whole words, case-insensitive.
var defaultAuthorTokens = []string{"JP's", "JPs", "Siggi's", "VPW", "TBA"}

// defaultDecorationTokens are trailing edition/format markers stripped from
// file names before comparison.
var defaultDecorationTokens = []string{"FS", "DT", "FS-DT", "B2S", "VP8", "VP9", "VP10", "VPX", "Mod"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir:  defaultLibraryDir,
			DatabaseDir: defaultDatabaseDir,
			BackupDir:   defaultBackupDir,
			LogDir:      defaultLogDir,
		},
		ContentTypes: []ContentType{
			{Name: contentTypeTableAudio, Folder: "Media/Table Audio", Extensions: "*.mp3, *.wav"},
			{Name: contentTypeLaunchAudio, Folder: "Media/Launch Audio", Extensions: "*.mp3, *.wav"},
			{Name: contentTypeTableVideo, Folder: "Media/Table Videos", Extensions: "*.f4v, *.mp4", Kindred: defaultKindredVideo},
			{Name: contentTypeBackglass, Folder: "Media/Backglass Videos", Extensions: "*.f4v, *.mp4", Kindred: defaultKindredVideo},
			{Name: contentTypeWheelImages, Folder: "Media/Wheel Images", Extensions: "*.png, *.jpg"},
			{Name: contentTypeInstructions, Folder: "Media/Instruction Cards", Extensions: "*.png, *.jpg"},
		},
		Matching: Matching{
			FuzzyThreshold:   defaultFuzzyThreshold,
			AuthorTokens:     append([]string(nil), defaultAuthorTokens...),
			DecorationTokens: append([]string(nil), defaultDecorationTokens...),
		},
		Fix: Fix{
			TrainerWheels: defaultTrainerWheels,
			HitTypes:      []string{"WrongCase", "TableName", "DuplicateExtension"},
		},
		Feed: Feed{
			URL:              defaultFeedURL,
			TimeoutSeconds:   defaultFeedTimeout,
			MaxResponseBytes: defaultFeedMaxBytes,
			CacheTTLSeconds:  defaultFeedCacheTTL,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
